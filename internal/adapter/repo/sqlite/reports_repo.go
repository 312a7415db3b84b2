// Package sqlite stores analysis reports in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
  id          TEXT PRIMARY KEY,
  title       TEXT NOT NULL,
  score       INTEGER NOT NULL,
  report_json TEXT NOT NULL,
  raw_text    TEXT NOT NULL,
  created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS reports_created_at_idx ON reports (created_at);
`

// Open opens (creating if needed) the database at path and ensures the schema.
// ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := "file::memory:?cache=shared"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("op=sqlite.Open: %w", err)
			}
		}
		dsn = "file:" + path + "?mode=rwc&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("op=sqlite.Open: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("op=sqlite.Open: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("op=sqlite.Open: %w", err)
	}
	return db, nil
}

// ReportRepo persists reports with database/sql.
type ReportRepo struct{ DB *sql.DB }

// NewReportRepo constructs a ReportRepo over db.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

// Save stores rep and returns its id, generating one when empty.
func (r *ReportRepo) Save(ctx domain.Context, rep domain.StoredReport) (string, error) {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	body, err := json.Marshal(rep.Report)
	if err != nil {
		return "", fmt.Errorf("op=report.save: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, `INSERT INTO reports (id, title, score, report_json, raw_text, created_at)
	VALUES (?,?,?,?,?,?)
	ON CONFLICT (id) DO UPDATE SET title=excluded.title, score=excluded.score, report_json=excluded.report_json, raw_text=excluded.raw_text`,
		rep.ID, rep.Report.Metadata.Title, rep.Report.Score, string(body), rep.RawText, rep.CreatedAt.UnixMilli())
	if err != nil {
		return "", fmt.Errorf("op=report.save: %w", err)
	}
	return rep.ID, nil
}

// Get loads a report by id.
func (r *ReportRepo) Get(ctx domain.Context, id string) (domain.StoredReport, error) {
	var (
		out     domain.StoredReport
		body    string
		created int64
	)
	err := r.DB.QueryRowContext(ctx, `SELECT id, report_json, raw_text, created_at FROM reports WHERE id=?`, id).
		Scan(&out.ID, &body, &out.RawText, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StoredReport{}, fmt.Errorf("op=report.get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.StoredReport{}, fmt.Errorf("op=report.get: %w", err)
	}
	if err := json.Unmarshal([]byte(body), &out.Report); err != nil {
		return domain.StoredReport{}, fmt.Errorf("op=report.get: %w", err)
	}
	out.CreatedAt = time.UnixMilli(created).UTC()
	return out, nil
}

// DeleteOlderThan removes reports created before cutoff.
func (r *ReportRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reports WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("op=report.cleanup: %w", err)
	}
	return res.RowsAffected()
}

// Ping reports whether the database answers.
func (r *ReportRepo) Ping(ctx context.Context) error { return r.DB.PingContext(ctx) }
