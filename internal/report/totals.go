package report

import "github.com/suspectuso/send-approval-bot/internal/submission"

// Counts tallies records per reviewed status
type Counts struct {
	Accepted int
	Canceled int
	Paid     int
}

func (c *Counts) add(s submission.Status) bool {
	switch s {
	case submission.StatusAccepted:
		c.Accepted++
	case submission.StatusCanceled:
		c.Canceled++
	case submission.StatusPaid:
		c.Paid++
	default:
		return false
	}
	return true
}

// UserCounts is the tally of one reporter
type UserCounts struct {
	Reporter string
	Counts
}

// Totals is the per-reporter and grand tally of reviewed records
type Totals struct {
	Users []UserCounts
	Grand Counts
}

// TotalsByUser counts accepted, canceled and paid records per reporter.
// Pending records and unknown statuses do not contribute, but a reporter
// with only such records still gets a zero row.
func TotalsByUser(records []submission.Record) Totals {
	var t Totals
	idx := make(map[string]int)
	for _, r := range records {
		reporter := r.Reporter
		if reporter == "" {
			reporter = "unknown"
		}
		i, ok := idx[reporter]
		if !ok {
			i = len(t.Users)
			idx[reporter] = i
			t.Users = append(t.Users, UserCounts{Reporter: reporter})
		}
		if t.Users[i].add(r.Status) {
			t.Grand.add(r.Status)
		}
	}
	return t
}

// PaidDay is the paid amount of one reporter on one day
type PaidDay struct {
	Day    string
	Count  int
	Amount int64
}

// PaidUser is a reporter's paid history, most recent day first
type PaidUser struct {
	Reporter string
	Days     []PaidDay
	Amount   int64
}

// PaidSummary lists paid amounts per reporter and day, with the grand sum
func PaidSummary(records []submission.Record) ([]PaidUser, int64) {
	var paid []submission.Record
	for _, r := range records {
		if r.Status == submission.StatusPaid {
			paid = append(paid, r)
		}
	}

	var out []PaidUser
	var grand int64
	for _, g := range GroupByUserThenDate(paid, Descending) {
		u := PaidUser{Reporter: g.Reporter}
		for _, d := range g.Days {
			pd := PaidDay{Day: d.Day, Count: len(d.Records)}
			for _, r := range d.Records {
				pd.Amount += r.Amount
			}
			u.Days = append(u.Days, pd)
			u.Amount += pd.Amount
		}
		grand += u.Amount
		out = append(out, u)
	}
	return out, grand
}
