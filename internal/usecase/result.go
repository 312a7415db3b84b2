package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fairyhunter13/writing-compass/internal/domain"
)

// ResultService provides read access to stored reports with ETag support.
type ResultService struct {
	Reports domain.ReportRepository
}

// NewResultService constructs a ResultService.
func NewResultService(r domain.ReportRepository) ResultService {
	return ResultService{Reports: r}
}

// Fetch returns the HTTP status, the stored result and its ETag. A matching
// ifNoneMatch yields 304 with no body.
func (s ResultService) Fetch(ctx domain.Context, id, ifNoneMatch string) (int, *AnalyzeResult, string, error) {
	rep, err := s.Reports.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return http.StatusNotFound, nil, "", fmt.Errorf("%w: report not found", domain.ErrNotFound)
		}
		slog.ErrorContext(ctx, "failed to get report", slog.String("report_id", id), slog.Any("error", err))
		return http.StatusInternalServerError, nil, "", err
	}
	res := &AnalyzeResult{ID: rep.ID, Report: rep.Report}
	etag := makeETag(res)
	if etag == ifNoneMatch {
		return http.StatusNotModified, nil, etag, nil
	}
	return http.StatusOK, res, etag, nil
}

func makeETag(v any) string {
	b, _ := json.Marshal(v)
	s := sha256.Sum256(b)
	return `"` + hex.EncodeToString(s[:]) + `"`
}
