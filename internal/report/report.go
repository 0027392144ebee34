// Package report builds grouped views and totals from a snapshot of
// submission records. Every function is pure; callers fetch the snapshot.
package report

import (
	"sort"
	"strings"

	"github.com/suspectuso/send-approval-bot/internal/submission"
)

// DayOrder controls how days are ordered inside a reporter group
type DayOrder int

const (
	// InsertionOrder keeps days in the order they first appear in the snapshot
	InsertionOrder DayOrder = iota
	// Descending puts the most recent day first
	Descending
)

// DayGroup holds the records of one reporter filed on one calendar day
type DayGroup struct {
	Day     string // YYYYMMDD
	Records []submission.Record
}

// UserGroup holds one reporter's records split by day
type UserGroup struct {
	Reporter string
	Days     []DayGroup
}

// GroupByUserThenDate groups records by reporter (first-appearance order)
// and then by day. Records keep snapshot order within a day.
func GroupByUserThenDate(records []submission.Record, order DayOrder) []UserGroup {
	var groups []UserGroup
	userIdx := make(map[string]int)
	dayIdx := make(map[string]map[string]int)

	for _, r := range records {
		ui, ok := userIdx[r.Reporter]
		if !ok {
			ui = len(groups)
			userIdx[r.Reporter] = ui
			dayIdx[r.Reporter] = make(map[string]int)
			groups = append(groups, UserGroup{Reporter: r.Reporter})
		}

		day := r.Day()
		di, ok := dayIdx[r.Reporter][day]
		if !ok {
			di = len(groups[ui].Days)
			dayIdx[r.Reporter][day] = di
			groups[ui].Days = append(groups[ui].Days, DayGroup{Day: day})
		}
		groups[ui].Days[di].Records = append(groups[ui].Days[di].Records, r)
	}

	if order == Descending {
		for i := range groups {
			days := groups[i].Days
			sort.SliceStable(days, func(a, b int) bool { return days[a].Day > days[b].Day })
		}
	}
	return groups
}

// ForReporter returns the records filed by reporter, in snapshot order
func ForReporter(records []submission.Record, reporter string) []submission.Record {
	var out []submission.Record
	for _, r := range records {
		if r.Reporter == reporter {
			out = append(out, r)
		}
	}
	return out
}

// ReporterDays lists the distinct days a reporter filed on, most recent first
func ReporterDays(records []submission.Record, reporter string) []string {
	seen := make(map[string]bool)
	var days []string
	for _, r := range ForReporter(records, reporter) {
		d := r.Day()
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days
}

// ApprovedTotal sums the amounts of the reporter's accepted records
func ApprovedTotal(records []submission.Record, reporter string) int64 {
	var total int64
	for _, r := range records {
		if r.Reporter == reporter && r.Status == submission.StatusAccepted {
			total += r.Amount
		}
	}
	return total
}

// Day returns the reporter's records whose date key starts with day, and the
// sum of the accepted ones among them.
func Day(records []submission.Record, reporter, day string) ([]submission.Record, int64) {
	var out []submission.Record
	var total int64
	for _, r := range records {
		if r.Reporter != reporter || !strings.HasPrefix(r.DateKey, day) {
			continue
		}
		out = append(out, r)
		if r.Status == submission.StatusAccepted {
			total += r.Amount
		}
	}
	return out, total
}
