package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

type stubRunner struct {
	opps []domain.Opportunity
	err  error
}

func (r *stubRunner) Scan(ctx context.Context) ([]domain.Opportunity, error) {
	return r.opps, r.err
}

func TestScanTrigger(t *testing.T) {
	tests := []struct {
		name       string
		runner     *stubRunner
		wantStatus int
	}{
		{"success", &stubRunner{opps: sampleOpps()}, http.StatusOK},
		{"scan in flight", &stubRunner{err: domain.ErrLockHeld}, http.StatusConflict},
		{"upstream failure", &stubRunner{err: errors.New("all sources down")}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewScanHandler(tt.runner, testLogger())
			rec := httptest.NewRecorder()
			h.Trigger(rec, httptest.NewRequest(http.MethodPost, "/api/scan/trigger", nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	h := NewHealthHandler(map[string]Pinger{
		"redis":    func(ctx context.Context) error { return nil },
		"postgres": func(ctx context.Context) error { return errors.New("connection refused") },
	})

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when degraded", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`"status":"degraded"`, `"redis":"ok"`, `"connection refused"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body %s missing %s", body, want)
		}
	}
}

func TestHealthCheckNoDeps(t *testing.T) {
	h := NewHealthHandler(nil)

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("response = %d %s", rec.Code, rec.Body.String())
	}
}
