package postgres

import (
	"context"
	"fmt"
	"time"
)

// DeleteOlderThan removes reports created before cutoff and returns how many were removed.
func (r *ReportRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM reports WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("op=report.cleanup: %w", err)
	}
	return tag.RowsAffected(), nil
}
