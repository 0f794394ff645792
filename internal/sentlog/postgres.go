package sentlog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/hr-outreach/internal/types"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS sent_emails (
	id       BIGSERIAL PRIMARY KEY,
	sent_at  TIMESTAMPTZ NOT NULL,
	email    TEXT NOT NULL,
	company  TEXT NOT NULL DEFAULT '',
	hr_name  TEXT NOT NULL DEFAULT '',
	subject  TEXT NOT NULL DEFAULT '',
	run_id   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_sent_emails_email ON sent_emails (lower(email));
`

// PostgresStore keeps the log in a PostgreSQL table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to databaseURL and ensures the table exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Entries returns all entries in insertion order.
func (s *PostgresStore) Entries(ctx context.Context) ([]types.SentEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT sent_at, email, company, hr_name, subject, run_id FROM sent_emails ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sent log: %w", err)
	}
	defer rows.Close()

	var out []types.SentEntry
	for rows.Next() {
		var e types.SentEntry
		if err := rows.Scan(&e.Timestamp, &e.Email, &e.Company, &e.HRName, &e.Subject, &e.RunID); err != nil {
			return nil, fmt.Errorf("failed to scan sent log row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Append inserts one entry.
func (s *PostgresStore) Append(ctx context.Context, e types.SentEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sent_emails (sent_at, email, company, hr_name, subject, run_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.Timestamp, e.Email, e.Company, e.HRName, e.Subject, e.RunID,
	)
	if err != nil {
		return fmt.Errorf("failed to append sent log: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
