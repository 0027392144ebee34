package sheetdb

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/suspectuso/send-approval-bot/internal/submission"
)

// keyColumn is the sheet column addressed by PATCH requests
const keyColumn = "date"

// Row is one sheet row as exchanged with the API
type Row struct {
	Date      string  `json:"date"`
	User      string  `json:"telegram_user"`
	ChatID    flexInt `json:"chat_id"`
	Moderator string  `json:"moderator,omitempty"`
	Sender    string  `json:"sender_username"`
	Amount    flexInt `json:"amount"`
	Status    string  `json:"status"`
}

type insertRequest struct {
	Data []Row `json:"data"`
}

type statusPatch struct {
	Status string `json:"status"`
}

type patchRequest struct {
	Data []statusPatch `json:"data"`
}

type patchResponse struct {
	Updated *int `json:"updated"`
}

// flexInt decodes numbers that the sheet may return either as JSON numbers
// or as strings. Blank or malformed cells decode as zero.
type flexInt int64

func (n *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	*n = flexInt(parseCell(string(bytes.TrimSpace(b))))
	return nil
}

// parseCell reads an integer cell exactly; float-looking cells such as
// "500.0" are truncated, and anything outside the int64 range is zero.
func parseCell(s string) int64 {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

func (r Row) record() submission.Record {
	return submission.Record{
		DateKey:   r.Date,
		Reporter:  r.User,
		ChatID:    int64(r.ChatID),
		Moderator: r.Moderator,
		Sender:    r.Sender,
		Amount:    int64(r.Amount),
		Status:    submission.Status(r.Status),
	}
}

func rowFrom(rec submission.Record) Row {
	return Row{
		Date:      rec.DateKey,
		User:      rec.Reporter,
		ChatID:    flexInt(rec.ChatID),
		Moderator: rec.Moderator,
		Sender:    rec.Sender,
		Amount:    flexInt(rec.Amount),
		Status:    string(rec.Status),
	}
}
