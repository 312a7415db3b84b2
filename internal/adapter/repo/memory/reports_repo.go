// Package memory keeps analysis reports in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// ReportRepo is a map-backed report store safe for concurrent use.
type ReportRepo struct {
	mu      sync.RWMutex
	reports map[string]domain.StoredReport
}

// NewReportRepo constructs an empty store.
func NewReportRepo() *ReportRepo {
	return &ReportRepo{reports: map[string]domain.StoredReport{}}
}

// Save stores rep and returns its id, generating one when empty.
func (r *ReportRepo) Save(_ domain.Context, rep domain.StoredReport) (string, error) {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	r.reports[rep.ID] = rep
	r.mu.Unlock()
	return rep.ID, nil
}

// Get loads a report by id.
func (r *ReportRepo) Get(_ domain.Context, id string) (domain.StoredReport, error) {
	r.mu.RLock()
	rep, ok := r.reports[id]
	r.mu.RUnlock()
	if !ok {
		return domain.StoredReport{}, fmt.Errorf("op=report.get: %w", domain.ErrNotFound)
	}
	return rep, nil
}

// DeleteOlderThan removes reports created before cutoff.
func (r *ReportRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, rep := range r.reports {
		if rep.CreatedAt.Before(cutoff) {
			delete(r.reports, id)
			n++
		}
	}
	return n, nil
}
