package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/suspectuso/send-approval-bot/internal/submission"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverLibSQL   = "libsql"
	DriverPostgres = "postgres"
)

// Storage keeps submissions in a SQL table
type Storage struct {
	db     *sqlx.DB
	driver string
}

var _ submission.Store = (*Storage)(nil)

// New opens the database and makes sure the submissions table exists
func New(driver, dsn string) (*Storage, error) {
	switch driver {
	case DriverSQLite:
		if !strings.Contains(dsn, "?") {
			dsn += "?_journal_mode=WAL&_busy_timeout=5000"
		}
	case DriverLibSQL, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	s := &Storage{db: db, driver: driver}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) init() error {
	seq := "seq INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.driver == DriverPostgres {
		seq = "seq BIGSERIAL PRIMARY KEY"
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			` + seq + `,
			date_key TEXT NOT NULL UNIQUE,
			telegram_user TEXT NOT NULL,
			chat_id BIGINT NOT NULL,
			moderator TEXT NOT NULL DEFAULT '',
			sender_username TEXT NOT NULL,
			amount BIGINT NOT NULL,
			status TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_user ON submissions(telegram_user)`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// List returns every submission in insertion order
func (s *Storage) List(ctx context.Context) ([]submission.Record, error) {
	var rows []submissionRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT seq, date_key, telegram_user, chat_id, moderator, sender_username, amount, status
		 FROM submissions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("select submissions: %w", err)
	}

	records := make([]submission.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return records, nil
}

// Insert stores a new submission
func (s *Storage) Insert(ctx context.Context, rec submission.Record) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO submissions (date_key, telegram_user, chat_id, moderator, sender_username, amount, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		rec.DateKey, rec.Reporter, rec.ChatID, rec.Moderator, rec.Sender, rec.Amount, string(rec.Status),
	)
	if err != nil {
		return fmt.Errorf("insert %s: %w", rec.DateKey, err)
	}
	return nil
}

// UpdateStatus sets the status of the submission keyed by dateKey
func (s *Storage) UpdateStatus(ctx context.Context, dateKey string, status submission.Status) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE submissions SET status = ? WHERE date_key = ?`),
		string(status), dateKey,
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", dateKey, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", dateKey, err)
	}
	if n == 0 {
		return fmt.Errorf("update %s: %w", dateKey, submission.ErrNotFound)
	}
	return nil
}
