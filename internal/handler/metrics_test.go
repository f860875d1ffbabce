package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devportal/devportal/internal/metrics"
)

func TestMetricsHandler_Exporter(t *testing.T) {
	recorder := metrics.NewPrometheus()
	recorder.IncPublicAppCache(metrics.CacheHit)
	recorder.IncOIDCValidation(metrics.OIDCValid)

	h := NewMetricsHandler(recorder.Handler())
	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"devportal_public_app_cache_lookups_total",
		`devportal_oidc_validations_total{result="valid"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in output:\n%s", want, body)
		}
	}
}

func TestMetricsHandler_Unconfigured(t *testing.T) {
	h := NewMetricsHandler(nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
}
