// Package store persists generated reports so past runs can be listed and
// re-downloaded. Backed by PostgreSQL via pgx.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kbenson/cecredit/internal/report"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("run not found")

// Run is one archived report run.
type Run struct {
	ID           uuid.UUID `json:"id"`
	MeetingTitle string    `json:"meetingTitle"`
	GeneratedAt  time.Time `json:"generatedAt,omitzero"`
	CreatedAt    time.Time `json:"createdAt"`
	RowCount     int       `json:"rowCount"`
	SkipCount    int       `json:"skipCount"`

	// Report is the full JSON document; CSV the rendered file. Both are
	// stored verbatim so a re-download is byte-identical to the original.
	Report json.RawMessage `json:"report,omitempty"`
	CSV    []byte          `json:"-"`
}

// RunSummary is the listing view of a run, without the stored bodies.
type RunSummary struct {
	ID           uuid.UUID `json:"id"`
	MeetingTitle string    `json:"meetingTitle"`
	GeneratedAt  time.Time `json:"generatedAt,omitzero"`
	CreatedAt    time.Time `json:"createdAt"`
	RowCount     int       `json:"rowCount"`
	SkipCount    int       `json:"skipCount"`
}

// RunStore archives report runs in PostgreSQL.
type RunStore struct {
	pool *pgxpool.Pool
}

// New creates a RunStore on the given pool.
func New(pool *pgxpool.Pool) *RunStore {
	return &RunStore{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS report_runs (
    id            UUID PRIMARY KEY,
    meeting_title TEXT NOT NULL,
    generated_at  TIMESTAMPTZ,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    row_count     INTEGER NOT NULL,
    skip_count    INTEGER NOT NULL,
    report_json   JSONB NOT NULL,
    csv_body      BYTEA NOT NULL
);
CREATE INDEX IF NOT EXISTS report_runs_created_at_idx ON report_runs (created_at DESC);
`

// EnsureSchema creates the archive table if it does not exist.
func (s *RunStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveRun archives a generated report together with its rendered CSV and
// returns the new run id.
func (s *RunStore) SaveRun(ctx context.Context, rep *report.Report, csvBody []byte) (uuid.UUID, error) {
	id := uuid.New()

	reportJSON, err := json.Marshal(rep)
	if err != nil {
		return uuid.Nil, fmt.Errorf("save run: encode report: %w", err)
	}

	var generatedAt *time.Time
	if !rep.GeneratedAt.IsZero() {
		generatedAt = &rep.GeneratedAt
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO report_runs (id, meeting_title, generated_at, row_count, skip_count, report_json, csv_body)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, rep.MeetingTitle, generatedAt, len(rep.Rows), len(rep.Skips), reportJSON, csvBody,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("save run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, meeting_title, COALESCE(generated_at, 'epoch'::timestamptz), created_at, row_count, skip_count
		FROM report_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.MeetingTitle, &r.GeneratedAt, &r.CreatedAt, &r.RowCount, &r.SkipCount); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		if r.GeneratedAt.Unix() == 0 {
			r.GeneratedAt = time.Time{}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}

// GetRun fetches one archived run with its stored bodies.
func (s *RunStore) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	var (
		r           Run
		generatedAt *time.Time
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, meeting_title, generated_at, created_at, row_count, skip_count, report_json, csv_body
		FROM report_runs
		WHERE id = $1`, id,
	).Scan(&r.ID, &r.MeetingTitle, &generatedAt, &r.CreatedAt, &r.RowCount, &r.SkipCount, &r.Report, &r.CSV)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	if generatedAt != nil {
		r.GeneratedAt = *generatedAt
	}
	return &r, nil
}
