package kalshi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

func TestSlugToEventTicker(t *testing.T) {
	s := NewSource(SourceConfig{})

	tests := []struct {
		name    string
		slug    string
		want    string
		wantErr bool
	}{
		{"nfl game", "nfl-bal-gb-2025-09-25", "KXNFLGAME-25SEP25BALGB", false},
		{"nba game", "nba-min-lal-2025-12-01", "KXNBAGAME-25DEC01MINLAL", false},
		{"mlb game", "mlb-nyy-bos-2025-07-04", "KXMLBGAME-25JUL04NYYBOS", false},
		{"missing date segments", "nfl-bal-gb", "", true},
		{"unknown sport", "mls-lafc-sea-2025-09-25", "", true},
		{"unparsable date", "nfl-bal-gb-next-thu-night", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.slugToEventTicker(tt.slug)
			if (err != nil) != tt.wantErr {
				t.Fatalf("slugToEventTicker(%q) error = %v, wantErr %v", tt.slug, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("slugToEventTicker(%q) = %q, want %q", tt.slug, got, tt.want)
			}
		})
	}
}

func TestSlugToEventTickerSeriesOverride(t *testing.T) {
	s := NewSource(SourceConfig{Series: map[string]string{"nfl": "KXNFLPRESEASON"}})
	got, err := s.slugToEventTicker("nfl-bal-gb-2025-09-25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "KXNFLPRESEASON-25SEP25BALGB" {
		t.Errorf("ticker = %q", got)
	}
}

func marketsResponse(markets ...KalshiMarket) []byte {
	b, _ := json.Marshal(map[string]any{"markets": markets, "cursor": ""})
	return b
}

func TestFetchSportMarkets(t *testing.T) {
	var gotSeries string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSeries = r.URL.Query().Get("series_ticker")
		w.Write(marketsResponse(
			KalshiMarket{Ticker: "A", Title: "Baltimore at Green Bay Winner?", Status: "open", YesAsk: 45, NoAsk: 55},
			KalshiMarket{Ticker: "B", Title: "Settled game", Status: "settled", YesAsk: 45, NoAsk: 55},
		))
	}))
	defer srv.Close()

	s := NewSource(SourceConfig{BaseURL: srv.URL})
	recs, err := s.FetchSportMarkets(context.Background(), "nfl")
	if err != nil {
		t.Fatalf("FetchSportMarkets: %v", err)
	}
	if gotSeries != "KXNFLGAME" {
		t.Errorf("series_ticker = %q, want KXNFLGAME", gotSeries)
	}
	if len(recs) != 1 || recs[0].ID != "kalshi:A" {
		t.Errorf("records = %+v, want only the open market", recs)
	}
}

func TestFetchSportMarketsUnknownSport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for a sport with no series")
	}))
	defer srv.Close()

	s := NewSource(SourceConfig{BaseURL: srv.URL})
	recs, err := s.FetchSportMarkets(context.Background(), "cricket")
	if err != nil || recs != nil {
		t.Errorf("got (%v, %v), want empty set without error", recs, err)
	}
}

func TestFetchErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, domain.ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, domain.ErrRateLimited},
		{"server error", http.StatusBadGateway, domain.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"code":"err","message":"nope"}`))
			}))
			defer srv.Close()

			s := NewSource(SourceConfig{BaseURL: srv.URL})
			_, err := s.FetchMarkets(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFetchEventBySlugEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(marketsResponse())
	}))
	defer srv.Close()

	s := NewSource(SourceConfig{BaseURL: srv.URL})
	_, err := s.FetchEventBySlug(context.Background(), "nfl-bal-gb-2025-09-25")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
