package sentlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jonathan/hr-outreach/internal/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sent_emails (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	sent_at  TEXT NOT NULL,
	email    TEXT NOT NULL,
	company  TEXT NOT NULL DEFAULT '',
	hr_name  TEXT NOT NULL DEFAULT '',
	subject  TEXT NOT NULL DEFAULT '',
	run_id   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_sent_emails_email ON sent_emails (lower(email));
`

// SQLiteStore keeps the log in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Entries returns all entries in insertion order.
func (s *SQLiteStore) Entries(ctx context.Context) ([]types.SentEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sent_at, email, company, hr_name, subject, run_id FROM sent_emails ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sent log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []types.SentEntry
	for rows.Next() {
		var e types.SentEntry
		var sentAt string
		if err := rows.Scan(&sentAt, &e.Email, &e.Company, &e.HRName, &e.Subject, &e.RunID); err != nil {
			return nil, fmt.Errorf("failed to scan sent log row: %w", err)
		}
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, sentAt); err != nil {
			return nil, fmt.Errorf("bad sent_at %q: %w", sentAt, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Append inserts one entry.
func (s *SQLiteStore) Append(ctx context.Context, e types.SentEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sent_emails (sent_at, email, company, hr_name, subject, run_id) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Timestamp.Format(time.RFC3339Nano), e.Email, e.Company, e.HRName, e.Subject, e.RunID,
	)
	if err != nil {
		return fmt.Errorf("failed to append sent log: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
