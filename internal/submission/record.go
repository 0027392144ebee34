package submission

import (
	"context"
	"errors"
	"time"
)

// Status is the review state of a submission
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusCanceled Status = "canceled"
	StatusPaid     Status = "paid"
)

// ErrNotFound is returned when no record carries the requested date key
var ErrNotFound = errors.New("submission not found")

const dateKeyLayout = "20060102150405"

// Record is one reported transfer as kept in the record store
type Record struct {
	DateKey   string // YYYYMMDDHHMMSS, unique lookup key
	Reporter  string // chat handle of the person who filed it
	ChatID    int64
	Moderator string
	Sender    string // normalized @handle of the counterparty
	Amount    int64
	Status    Status
}

// Day returns the calendar day part (YYYYMMDD) of the date key
func (r Record) Day() string {
	if len(r.DateKey) < 8 {
		return r.DateKey
	}
	return r.DateKey[:8]
}

// NewDateKey builds the record key for the given instant in UTC
func NewDateKey(t time.Time) string {
	return t.UTC().Format(dateKeyLayout)
}

// FormatDay renders YYYYMMDD as YYYY-MM-DD
func FormatDay(day string) string {
	if len(day) < 8 {
		return day
	}
	return day[0:4] + "-" + day[4:6] + "-" + day[6:8]
}

// Store is the external row store holding submissions.
// It offers no transactions: every call is an independent round trip.
type Store interface {
	List(ctx context.Context) ([]Record, error)
	Insert(ctx context.Context, rec Record) error
	UpdateStatus(ctx context.Context, dateKey string, status Status) error
}
