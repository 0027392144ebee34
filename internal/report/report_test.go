package report

import (
	"reflect"
	"testing"

	"github.com/suspectuso/send-approval-bot/internal/submission"
)

func rec(key, user string, amount int64, status submission.Status) submission.Record {
	return submission.Record{DateKey: key, Reporter: user, Amount: amount, Status: status, Sender: "@someone_1"}
}

var snapshot = []submission.Record{
	rec("20240101090000", "alice", 100, submission.StatusAccepted),
	rec("20240103090000", "alice", 30, submission.StatusPaid),
	rec("20240101100000", "bob", 70, submission.StatusPending),
	rec("20240101120000", "alice", 50, submission.StatusPending),
	rec("20240102090000", "alice", 20, submission.StatusCanceled),
	rec("20240102100000", "bob", 10, submission.StatusAccepted),
	rec("20240103100000", "bob", 5, submission.StatusPaid),
}

func days(g UserGroup) []string {
	var out []string
	for _, d := range g.Days {
		out = append(out, d.Day)
	}
	return out
}

func TestGroupByUserThenDateInsertionOrder(t *testing.T) {
	groups := GroupByUserThenDate(snapshot, InsertionOrder)
	if len(groups) != 2 || groups[0].Reporter != "alice" || groups[1].Reporter != "bob" {
		t.Fatalf("unexpected user order: %+v", groups)
	}
	if got := days(groups[0]); !reflect.DeepEqual(got, []string{"20240101", "20240103", "20240102"}) {
		t.Errorf("alice days = %v", got)
	}
	first := groups[0].Days[0].Records
	if len(first) != 2 || first[0].Amount != 100 || first[1].Amount != 50 {
		t.Errorf("alice 20240101 records = %+v", first)
	}
}

func TestGroupByUserThenDateDescending(t *testing.T) {
	groups := GroupByUserThenDate(snapshot, Descending)
	if got := days(groups[0]); !reflect.DeepEqual(got, []string{"20240103", "20240102", "20240101"}) {
		t.Errorf("alice days = %v", got)
	}
	if got := days(groups[1]); !reflect.DeepEqual(got, []string{"20240103", "20240102", "20240101"}) {
		t.Errorf("bob days = %v", got)
	}
}

func TestReporterDays(t *testing.T) {
	got := ReporterDays(snapshot, "bob")
	if !reflect.DeepEqual(got, []string{"20240103", "20240102", "20240101"}) {
		t.Errorf("ReporterDays = %v", got)
	}
	if got := ReporterDays(snapshot, "nobody"); len(got) != 0 {
		t.Errorf("expected no days, got %v", got)
	}
}

func TestApprovedTotalCountsOnlyAcceptedOfReporter(t *testing.T) {
	if got := ApprovedTotal(snapshot, "alice"); got != 100 {
		t.Errorf("alice total = %d, want 100", got)
	}
	if got := ApprovedTotal(snapshot, "bob"); got != 10 {
		t.Errorf("bob total = %d, want 10", got)
	}
	if got := ApprovedTotal(nil, "bob"); got != 0 {
		t.Errorf("empty total = %d", got)
	}
}

func TestDayTotal(t *testing.T) {
	recs, total := Day(snapshot, "alice", "20240101")
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if total != 100 {
		t.Errorf("day total = %d, want 100", total)
	}
}

func TestTotalsByUser(t *testing.T) {
	tot := TotalsByUser(append(snapshot, rec("20240104090000", "", 1, submission.StatusCanceled)))
	want := []UserCounts{
		{"alice", Counts{Accepted: 1, Canceled: 1, Paid: 1}},
		{"bob", Counts{Accepted: 1, Paid: 1}},
		{"unknown", Counts{Canceled: 1}},
	}
	if !reflect.DeepEqual(tot.Users, want) {
		t.Errorf("users = %+v", tot.Users)
	}
	if tot.Grand != (Counts{Accepted: 2, Canceled: 2, Paid: 2}) {
		t.Errorf("grand = %+v", tot.Grand)
	}
}

func TestPaidSummary(t *testing.T) {
	recs := append(snapshot, rec("20240105090000", "alice", 12, submission.StatusPaid), rec("20240105100000", "alice", 8, submission.StatusPaid))
	users, grand := PaidSummary(recs)
	if grand != 55 {
		t.Errorf("grand = %d, want 55", grand)
	}
	if len(users) != 2 || users[0].Reporter != "alice" {
		t.Fatalf("users = %+v", users)
	}
	want := []PaidDay{{Day: "20240105", Count: 2, Amount: 20}, {Day: "20240103", Count: 1, Amount: 30}}
	if !reflect.DeepEqual(users[0].Days, want) {
		t.Errorf("alice days = %+v", users[0].Days)
	}
	if users[0].Amount != 50 || users[1].Amount != 5 {
		t.Errorf("user amounts = %d, %d", users[0].Amount, users[1].Amount)
	}
}
