package workflow

import (
	"fmt"
	"html"
	"strings"

	"github.com/suspectuso/send-approval-bot/internal/report"
	"github.com/suspectuso/send-approval-bot/internal/submission"
)

const (
	textWelcome       = "Welcome! Please select an action:"
	textRefreshed     = "✅ Data refreshed."
	textPickModerator = "Select a moderator:"
	textAskUsername   = "Enter Sender Username or click 'self':"
	textSubmitted     = "✅ Submitted! Wait for admin approval."
	textNoSubmissions = "📋 No submissions found."
	textPickDate      = "📅 Select a date:"
	textNoDateData    = "❌ No data found for this date."
	textNotFound      = "❌ Submission not found."
	separator         = "━━━━━━━━━━━━━━"
)

func upper(s submission.Status) string {
	return strings.ToUpper(string(s))
}

func statusIcon(s submission.Status) string {
	switch s {
	case submission.StatusAccepted:
		return "✅"
	case submission.StatusPending:
		return "⏳"
	case submission.StatusPaid:
		return "💸"
	}
	return "❌"
}

func newSubmissionText(rec submission.Record) string {
	var b strings.Builder
	b.WriteString("📩 <b>New Submission</b>\n\n")
	fmt.Fprintf(&b, "👤 <b>From:</b> @%s\n", html.EscapeString(rec.Reporter))
	if rec.Moderator != "" {
		fmt.Fprintf(&b, "🛡 <b>Moderator:</b> %s\n", html.EscapeString(rec.Moderator))
	}
	fmt.Fprintf(&b, "🔁 <b>Sender:</b> %s\n", html.EscapeString(rec.Sender))
	fmt.Fprintf(&b, "💰 <b>Amount:</b> %d\n\n", rec.Amount)
	fmt.Fprintf(&b, "<code>@%s | %d</code>", html.EscapeString(rec.Reporter), rec.Amount)
	return b.String()
}

func moderatorChosenText(name string) string {
	return fmt.Sprintf("🛡 Moderator: <b>%s</b>", html.EscapeString(name))
}

func recordCard(rec submission.Record) string {
	return fmt.Sprintf("🔁 <b>Sender:</b> %s\n💰 <b>Amount:</b> %d\n📌 <b>Status:</b> %s",
		html.EscapeString(rec.Sender), rec.Amount, upper(rec.Status))
}

func statusUpdatedText(rec submission.Record) string {
	return fmt.Sprintf("Status updated: <b>%s</b>\n\n%s", upper(rec.Status), recordCard(rec))
}

func statusUnchangedText(rec submission.Record) string {
	return fmt.Sprintf("Status unchanged: <b>%s</b>\n\n%s", upper(rec.Status), recordCard(rec))
}

func dayText(day string, recs []submission.Record, total int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>Submissions for %s</b>\n\n", submission.FormatDay(day))
	for _, r := range recs {
		fmt.Fprintf(&b, "%s %d | %s\n", statusIcon(r.Status), r.Amount, html.EscapeString(r.Sender))
	}
	fmt.Fprintf(&b, "\n%s\n💰 <b>Daily Total:</b> %d", separator, total)
	return b.String()
}

func userHeader(reporter string) string {
	return "👤 USER: @" + reporter
}

func dateHeader(day string) string {
	return "📅 Date: " + submission.FormatDay(day)
}

func countsText(title string, c report.Counts) string {
	return fmt.Sprintf("%s\n✅ Accepted: %d\n❌ Canceled: %d\n💸 Paid: %d", title, c.Accepted, c.Canceled, c.Paid)
}

func paidUserText(u report.PaidUser) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👤 @%s\n", u.Reporter)
	for _, d := range u.Days {
		fmt.Fprintf(&b, "📅 %s: %d × 💸 %d\n", submission.FormatDay(d.Day), d.Count, d.Amount)
	}
	fmt.Fprintf(&b, "%s\n💰 Paid total: %d", separator, u.Amount)
	return b.String()
}
