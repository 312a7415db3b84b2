package observability

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/writing-compass/internal/config"
	"github.com/fairyhunter13/writing-compass/internal/domain"
)

func TestSetupLogger_DevAndProd(t *testing.T) {
	t.Parallel()

	dev := SetupLogger(config.Config{AppEnv: "dev", OTELServiceName: "svc"})
	require.NotNil(t, dev)
	assert.True(t, dev.Enabled(context.Background(), slog.LevelDebug))

	prod := SetupLogger(config.Config{AppEnv: "prod", OTELServiceName: "svc"})
	require.NotNil(t, prod)
	assert.False(t, prod.Enabled(context.Background(), slog.LevelDebug))
}

func TestLoggerContext(t *testing.T) {
	t.Parallel()

	lg := slog.Default().With(slog.String("k", "v"))
	base := context.Background()

	ctx := ContextWithLogger(base, lg)
	assert.Same(t, lg, LoggerFromContext(ctx))
	assert.Equal(t, base, ContextWithLogger(base, nil))
	assert.NotNil(t, LoggerFromContext(base))
	assert.NotNil(t, LoggerFromContext(nil)) //nolint:staticcheck // nil context tolerated
}

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	ctx := ContextWithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
	assert.Equal(t, "", RequestIDFromContext(context.Background()))

	base := context.Background()
	assert.Equal(t, base, ContextWithRequestID(base, ""))
}

func TestSetupTracing_Disabled(t *testing.T) {
	t.Parallel()

	shutdown, err := SetupTracing(config.Config{})
	require.NoError(t, err)
	assert.Nil(t, shutdown)
}

func TestHTTPMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	InitMetrics()

	r := chi.NewRouter()
	r.Use(HTTPMetricsMiddleware)
	r.Get("/v1/analyses/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/v1/analyses/{id}", http.MethodGet, http.StatusText(http.StatusNoContent)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/analyses/abc", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/v1/analyses/{id}", http.MethodGet, http.StatusText(http.StatusNoContent)))
	assert.InDelta(t, 1, after-before, 1e-9)
}

func TestObserveReportAndAIRequest(t *testing.T) {
	InitMetrics()
	InitMetrics()

	before := testutil.ToFloat64(AnalysisCategoryGradeTotal.WithLabelValues("논리성", "B"))
	reports := testutil.ToFloat64(AnalysisReportsTotal.WithLabelValues("parsed"))
	ObserveReport("parsed", domain.AnalysisReport{
		Score:      68,
		Categories: map[domain.CategoryName]domain.CategoryAssessment{"논리성": {Grade: domain.GradeB}},
	})
	assert.InDelta(t, 1, testutil.ToFloat64(AnalysisCategoryGradeTotal.WithLabelValues("논리성", "B"))-before, 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(AnalysisReportsTotal.WithLabelValues("parsed"))-reports, 1e-9)

	calls := testutil.ToFloat64(AIRequestsTotal.WithLabelValues("openai", "report", "ok"))
	ObserveAIRequest("openai", "report", "ok", 1500*time.Millisecond)
	assert.InDelta(t, 1, testutil.ToFloat64(AIRequestsTotal.WithLabelValues("openai", "report", "ok"))-calls, 1e-9)
}
