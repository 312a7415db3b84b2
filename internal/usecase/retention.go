package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// RetentionService deletes reports older than a retention window.
type RetentionService struct {
	Purger    domain.ReportPurger
	Retention time.Duration
	Now       func() time.Time
}

// NewRetentionService constructs a RetentionService keeping reports for days.
func NewRetentionService(p domain.ReportPurger, days int) RetentionService {
	return RetentionService{Purger: p, Retention: time.Duration(days) * 24 * time.Hour, Now: time.Now}
}

// PurgeOnce deletes expired reports and returns how many were removed.
func (s RetentionService) PurgeOnce(ctx context.Context) (int64, error) {
	if s.Purger == nil || s.Retention <= 0 {
		return 0, nil
	}
	cutoff := s.Now().UTC().Add(-s.Retention)
	n, err := s.Purger.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired reports deleted", slog.Int64("count", n), slog.Time("cutoff", cutoff))
	}
	return n, nil
}

// Run purges on every tick of interval until ctx is done.
func (s RetentionService) Run(ctx context.Context, interval time.Duration) {
	if s.Purger == nil || s.Retention <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := s.PurgeOnce(ctx); err != nil {
			slog.WarnContext(ctx, "report cleanup failed", slog.Any("error", err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
