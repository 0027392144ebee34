package workflow

import (
	"fmt"

	"github.com/suspectuso/send-approval-bot/internal/submission"
)

// Commands that reset the conversation
const (
	CmdStart  = "/start"
	CmdCancel = "/cancel"
)

// Admin menu labels
const (
	LabelAllSubmissions = "📋 All Submissions"
	LabelTotalInfo      = "📊 Total Info"
	LabelPaidSummary    = "💸 Paid Summary"
	LabelRefresh        = "🔄 Refresh Data"
)

// Reporter menu labels
const (
	LabelNewSend       = "🆕 New Send"
	LabelTotalAmount   = "💰 Total Amount"
	LabelMySubmissions = "📋 All Submit"
)

// Callback actions besides the submission.Action names
const (
	actionSetModerator = "set_mod"
	actionViewDate     = "view_date"
)

func adminMenu() *ReplyKeyboard {
	return &ReplyKeyboard{Rows: [][]string{
		{LabelAllSubmissions, LabelTotalInfo},
		{LabelPaidSummary, LabelRefresh},
	}}
}

func reporterMenu() *ReplyKeyboard {
	return &ReplyKeyboard{Rows: [][]string{
		{LabelNewSend, LabelTotalAmount},
		{LabelMySubmissions},
	}}
}

func selfKeyboard() *ReplyKeyboard {
	return &ReplyKeyboard{Rows: [][]string{{selfInput}}, OneTime: true}
}

// moderatorKeyboard refers to moderators by list index so the payload stays
// within Telegram's 64-byte callback_data limit whatever the name length.
func moderatorKeyboard(names []string) *InlineKeyboard {
	buttons := make([]Button, 0, len(names))
	for i, n := range names {
		buttons = append(buttons, Button{Label: n, Payload: fmt.Sprintf("%s:%d", actionSetModerator, i)})
	}
	return pairs(buttons)
}

func dateKeyboard(days []string) *InlineKeyboard {
	buttons := make([]Button, 0, len(days))
	for _, d := range days {
		buttons = append(buttons, Button{Label: submission.FormatDay(d), Payload: actionViewDate + ":" + d})
	}
	return pairs(buttons)
}

// statusPayload encodes action:dateKey:reporterChatID
func statusPayload(a submission.Action, rec submission.Record) string {
	return fmt.Sprintf("%s:%s:%d", a, rec.DateKey, rec.ChatID)
}

// StatusKeyboard offers exactly the actions the record's status allows;
// nil when the status is terminal.
func StatusKeyboard(rec submission.Record) *InlineKeyboard {
	acts := submission.Actions(rec.Status)
	if len(acts) == 0 {
		return nil
	}
	row := make([]Button, 0, len(acts))
	for _, a := range acts {
		row = append(row, Button{Label: a.Label(), Payload: statusPayload(a, rec)})
	}
	return &InlineKeyboard{Rows: [][]Button{row}}
}
