package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// ReportRepo persists and loads analysis reports from PostgreSQL.
type ReportRepo struct{ Pool PgxPool }

// NewReportRepo constructs a ReportRepo with the given pool.
func NewReportRepo(p PgxPool) *ReportRepo { return &ReportRepo{Pool: p} }

// Save stores r and returns its id, generating one when empty.
func (r *ReportRepo) Save(ctx domain.Context, rep domain.StoredReport) (string, error) {
	tracer := otel.Tracer("repo.reports")
	ctx, span := tracer.Start(ctx, "reports.Save")
	defer span.End()
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("report.id", rep.ID),
		attribute.Int("report.score", rep.Report.Score),
	)
	body, err := json.Marshal(rep.Report)
	if err != nil {
		return "", fmt.Errorf("op=report.save: %w", err)
	}
	q := `INSERT INTO reports (id, title, score, report_json, raw_text, created_at)
	VALUES ($1,$2,$3,$4,$5,$6)
	ON CONFLICT (id)
	DO UPDATE SET title=EXCLUDED.title, score=EXCLUDED.score, report_json=EXCLUDED.report_json, raw_text=EXCLUDED.raw_text`
	if _, err := r.Pool.Exec(ctx, q, rep.ID, rep.Report.Metadata.Title, rep.Report.Score, body, rep.RawText, rep.CreatedAt); err != nil {
		return "", fmt.Errorf("op=report.save: %w", err)
	}
	return rep.ID, nil
}

// Get loads a report by id.
func (r *ReportRepo) Get(ctx domain.Context, id string) (domain.StoredReport, error) {
	tracer := otel.Tracer("repo.reports")
	ctx, span := tracer.Start(ctx, "reports.Get")
	defer span.End()
	span.SetAttributes(attribute.String("report.id", id))

	q := `SELECT id, report_json, raw_text, created_at FROM reports WHERE id=$1`
	var (
		out  domain.StoredReport
		body []byte
	)
	if err := r.Pool.QueryRow(ctx, q, id).Scan(&out.ID, &body, &out.RawText, &out.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StoredReport{}, fmt.Errorf("op=report.get: %w", domain.ErrNotFound)
		}
		return domain.StoredReport{}, fmt.Errorf("op=report.get: %w", err)
	}
	if err := json.Unmarshal(body, &out.Report); err != nil {
		return domain.StoredReport{}, fmt.Errorf("op=report.get: %w", err)
	}
	return out, nil
}
