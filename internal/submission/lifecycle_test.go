package submission

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestActionsPerStatus(t *testing.T) {
	tests := []struct {
		status Status
		want   []Action
	}{
		{StatusPending, []Action{ActionAccept, ActionCancel}},
		{StatusAccepted, []Action{ActionPaid}},
		{StatusCanceled, nil},
		{StatusPaid, nil},
		{Status("archived"), nil},
	}
	for _, tt := range tests {
		got := Actions(tt.status)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Actions(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestTransition(t *testing.T) {
	ctx := context.Background()

	next, err := Transition(ctx, StatusPending, ActionAccept)
	if err != nil || next != StatusAccepted {
		t.Fatalf("accept pending: got %s, %v", next, err)
	}
	next, err = Transition(ctx, StatusAccepted, ActionPaid)
	if err != nil || next != StatusPaid {
		t.Fatalf("pay accepted: got %s, %v", next, err)
	}
	next, err = Transition(ctx, StatusPending, ActionCancel)
	if err != nil || next != StatusCanceled {
		t.Fatalf("cancel pending: got %s, %v", next, err)
	}

	for _, bad := range []struct {
		from Status
		a    Action
	}{
		{StatusPending, ActionPaid},
		{StatusAccepted, ActionAccept},
		{StatusCanceled, ActionAccept},
		{StatusPaid, ActionCancel},
	} {
		got, err := Transition(ctx, bad.from, bad.a)
		if !errors.Is(err, ErrTransitionNotAllowed) {
			t.Errorf("%s from %s: expected ErrTransitionNotAllowed, got %v", bad.a, bad.from, err)
		}
		if got != bad.from {
			t.Errorf("%s from %s: status changed to %s", bad.a, bad.from, got)
		}
	}
}

func TestActionMapping(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		notice string
	}{
		{"accept", StatusAccepted, "✅ Your submission has been ACCEPTED"},
		{"cancel", StatusCanceled, "❌ Your submission has been CANCELED"},
		{"paid", StatusPaid, "💸 Your payment has been MARKED AS PAID"},
	}
	for _, tt := range tests {
		a, ok := ParseAction(tt.name)
		if !ok {
			t.Fatalf("ParseAction(%q) failed", tt.name)
		}
		if a.Status() != tt.status || a.Notice() != tt.notice {
			t.Errorf("%s: got %s / %q", tt.name, a.Status(), a.Notice())
		}
	}
	if _, ok := ParseAction("view_date"); ok {
		t.Error("view_date must not parse as a status action")
	}
}

func TestDateKey(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("X", 3*3600))
	key := NewDateKey(ts)
	if key != "20240101090000" {
		t.Fatalf("NewDateKey = %s", key)
	}
	r := Record{DateKey: key}
	if r.Day() != "20240101" {
		t.Errorf("Day = %s", r.Day())
	}
	if FormatDay(r.Day()) != "2024-01-01" {
		t.Errorf("FormatDay = %s", FormatDay(r.Day()))
	}
	if NewDateKey(ts) >= NewDateKey(ts.Add(time.Second)) {
		t.Error("date keys must sort chronologically")
	}
}
