package storage

import "github.com/suspectuso/send-approval-bot/internal/submission"

// submissionRow mirrors the submissions table
type submissionRow struct {
	Seq       int64  `db:"seq"`
	DateKey   string `db:"date_key"`
	User      string `db:"telegram_user"`
	ChatID    int64  `db:"chat_id"`
	Moderator string `db:"moderator"`
	Sender    string `db:"sender_username"`
	Amount    int64  `db:"amount"`
	Status    string `db:"status"`
}

func (r submissionRow) record() submission.Record {
	return submission.Record{
		DateKey:   r.DateKey,
		Reporter:  r.User,
		ChatID:    r.ChatID,
		Moderator: r.Moderator,
		Sender:    r.Sender,
		Amount:    r.Amount,
		Status:    submission.Status(r.Status),
	}
}
