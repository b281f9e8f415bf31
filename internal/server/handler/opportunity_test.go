package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

type stubCache struct {
	opps []domain.Opportunity
	err  error
}

func (c *stubCache) SetLatest(ctx context.Context, opps []domain.Opportunity) error {
	c.opps = opps
	return nil
}

func (c *stubCache) GetLatest(ctx context.Context) ([]domain.Opportunity, error) {
	return c.opps, c.err
}

type stubStore struct {
	opps []domain.Opportunity
	err  error
}

func (s *stubStore) Insert(ctx context.Context, opp domain.Opportunity) error { return nil }

func (s *stubStore) ListRecent(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.opps) {
		return s.opps[:limit], nil
	}
	return s.opps, nil
}

type latestResponse struct {
	Opportunities []domain.Opportunity `json:"opportunities"`
	Count         int                  `json:"count"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func getLatest(t *testing.T, h *OpportunityHandler, target string) (*httptest.ResponseRecorder, latestResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.GetLatest(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body latestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec, body
}

func sampleOpps() []domain.Opportunity {
	return []domain.Opportunity{
		{ID: "a", Spread: 1.5, ROI: 2.0, Confidence: domain.ConfidenceLow, TotalVolume: 100},
		{ID: "b", Spread: 6.0, ROI: 9.0, Confidence: domain.ConfidenceHigh, TotalVolume: 400},
		{ID: "c", Spread: 3.0, ROI: 4.0, Confidence: domain.ConfidenceHigh, TotalVolume: 900},
	}
}

func TestGetLatest(t *testing.T) {
	h := NewOpportunityHandler(&stubCache{opps: sampleOpps()}, nil, testLogger())

	rec, body := getLatest(t, h, "/api/opportunities")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body.Count != 3 {
		t.Errorf("count = %d, want 3", body.Count)
	}
}

func TestGetLatestBeforeFirstScan(t *testing.T) {
	h := NewOpportunityHandler(&stubCache{err: domain.ErrNotFound}, nil, testLogger())

	rec, body := getLatest(t, h, "/api/opportunities")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with an empty set", rec.Code)
	}
	if body.Count != 0 || len(body.Opportunities) != 0 {
		t.Errorf("body = %+v, want empty", body)
	}
}

func TestGetLatestCacheUnavailable(t *testing.T) {
	h := NewOpportunityHandler(&stubCache{err: errors.New("connection refused")}, nil, testLogger())

	rec := httptest.NewRecorder()
	h.GetLatest(rec, httptest.NewRequest(http.MethodGet, "/api/opportunities", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestGetLatestFilters(t *testing.T) {
	h := NewOpportunityHandler(&stubCache{opps: sampleOpps()}, nil, testLogger())

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"min spread", "/api/opportunities?min_spread=2", []string{"b", "c"}},
		{"confidence", "/api/opportunities?confidence=high", []string{"b", "c"}},
		{"sort by roi", "/api/opportunities?sort=roi", []string{"b", "c", "a"}},
		{"sort by volume", "/api/opportunities?sort=volume", []string{"c", "b", "a"}},
		{"limit", "/api/opportunities?sort=spread&limit=1", []string{"b"}},
		{"combined", "/api/opportunities?min_spread=2&sort=roi&limit=1", []string{"b"}},
		{"malformed params fall back", "/api/opportunities?min_spread=abc&limit=xyz", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, body := getLatest(t, h, tt.target)
			ids := make([]string, len(body.Opportunities))
			for i, o := range body.Opportunities {
				ids[i] = o.ID
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("ids = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Fatalf("ids = %v, want %v", ids, tt.want)
				}
			}
		})
	}
}

func TestGetHistory(t *testing.T) {
	h := NewOpportunityHandler(&stubCache{}, &stubStore{opps: sampleOpps()}, testLogger())

	rec := httptest.NewRecorder()
	h.GetHistory(rec, httptest.NewRequest(http.MethodGet, "/api/opportunities/history?limit=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body latestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Count != 2 {
		t.Errorf("count = %d, want limit applied", body.Count)
	}
}

func TestGetHistoryWithoutStore(t *testing.T) {
	h := NewOpportunityHandler(&stubCache{}, nil, testLogger())

	rec := httptest.NewRecorder()
	h.GetHistory(rec, httptest.NewRequest(http.MethodGet, "/api/opportunities/history", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when no database is configured", rec.Code)
	}
}
