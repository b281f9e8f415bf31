// Package kalshi adapts the Kalshi exchange REST API into domain market
// records. Only public market-data endpoints are used, so no request
// signing is involved.
package kalshi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// pageSize is the Kalshi markets pagination window.
const pageSize = 200

// maxPages bounds cursor pagination.
const maxPages = 50

// defaultSeries maps a sport to the Kalshi game-winner series ticker. Config
// can extend or override via SourceConfig.Series.
var defaultSeries = map[string]string{
	"nfl": "KXNFLGAME",
	"nba": "KXNBAGAME",
	"nhl": "KXNHLGAME",
	"mlb": "KXMLBGAME",
}

// SourceConfig holds the Kalshi source settings.
type SourceConfig struct {
	// BaseURL is the API root, e.g. "https://api.elections.kalshi.com/trade-api/v2".
	BaseURL string
	// Series overrides or extends the sport -> series ticker mapping.
	Series map[string]string
}

// Source is the Kalshi market source. It implements domain.MarketSource.
type Source struct {
	cfg        SourceConfig
	series     map[string]string
	httpClient *http.Client
}

// NewSource creates a Kalshi source.
func NewSource(cfg SourceConfig) *Source {
	series := make(map[string]string, len(defaultSeries)+len(cfg.Series))
	for k, v := range defaultSeries {
		series[k] = v
	}
	for k, v := range cfg.Series {
		series[strings.ToLower(k)] = v
	}
	return &Source{
		cfg:    cfg,
		series: series,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Platform identifies this source.
func (s *Source) Platform() domain.Platform {
	return domain.PlatformKalshi
}

// FetchMarkets returns all open Kalshi listings, following the cursor until
// exhaustion.
func (s *Source) FetchMarkets(ctx context.Context) ([]domain.MarketRecord, error) {
	params := url.Values{}
	params.Set("status", "open")
	return s.fetchPaged(ctx, params)
}

// FetchSportMarkets returns open listings from the sport's game-winner
// series. Unknown sports yield an empty set rather than an error; the
// scanner treats a sport with no series as simply absent from Kalshi.
func (s *Source) FetchSportMarkets(ctx context.Context, sport string) ([]domain.MarketRecord, error) {
	series, ok := s.series[strings.ToLower(sport)]
	if !ok {
		return nil, nil
	}
	params := url.Values{}
	params.Set("status", "open")
	params.Set("series_ticker", series)
	return s.fetchPaged(ctx, params)
}

// FetchEventBySlug converts a deterministic slug ("nfl-bal-gb-2025-09-25")
// into a Kalshi event ticker and fetches that event's markets. Returns
// domain.ErrNotFound when nothing matches.
func (s *Source) FetchEventBySlug(ctx context.Context, slug string) ([]domain.MarketRecord, error) {
	eventTicker, err := s.slugToEventTicker(slug)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("event_ticker", eventTicker)
	recs, err := s.fetchPaged(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("kalshi: %w: event=%s", domain.ErrNotFound, eventTicker)
	}
	return recs, nil
}

// slugToEventTicker rebuilds Kalshi's "SERIES-YYMMMDDAWAYHOME" event ticker
// from a slug's sport, abbreviations, and ISO date.
func (s *Source) slugToEventTicker(slug string) (string, error) {
	parts := strings.Split(slug, "-")
	if len(parts) < 6 {
		return "", fmt.Errorf("kalshi: malformed slug %q", slug)
	}

	sport := parts[0]
	series, ok := s.series[sport]
	if !ok {
		return "", fmt.Errorf("kalshi: %w: no series for sport %s", domain.ErrNotFound, sport)
	}

	// The trailing three segments are the ISO date.
	dateStr := strings.Join(parts[len(parts)-3:], "-")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "", fmt.Errorf("kalshi: slug date %q: %w", dateStr, err)
	}

	abbrevs := strings.Join(parts[1:len(parts)-3], "")
	ticker := fmt.Sprintf("%s-%s%s", series,
		strings.ToUpper(date.Format("06Jan02")),
		strings.ToUpper(abbrevs))
	return ticker, nil
}

func (s *Source) fetchPaged(ctx context.Context, params url.Values) ([]domain.MarketRecord, error) {
	var out []domain.MarketRecord
	cursor := ""
	for page := 0; page < maxPages; page++ {
		p := url.Values{}
		for k, v := range params {
			p[k] = v
		}
		p.Set("limit", fmt.Sprint(pageSize))
		if cursor != "" {
			p.Set("cursor", cursor)
		}

		body, err := s.doGet(ctx, "/markets?"+p.Encode())
		if err != nil {
			return nil, fmt.Errorf("kalshi: get markets: %w", err)
		}

		var resp struct {
			Markets []KalshiMarket `json:"markets"`
			Cursor  string         `json:"cursor"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("kalshi: decode markets: %w", err)
		}

		for i := range resp.Markets {
			if rec, ok := resp.Markets[i].ToMarketRecord(); ok {
				out = append(out, rec)
			}
		}

		cursor = resp.Cursor
		if cursor == "" || len(resp.Markets) < pageSize {
			break
		}
	}
	return out, nil
}

func (s *Source) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if err := s.checkStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return body, nil
}

func (s *Source) checkStatus(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	var apiErr KalshiErrorResponse
	_ = json.Unmarshal(body, &apiErr)

	switch {
	case statusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, apiErr.Message)
	case statusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, apiErr.Message)
	case statusCode >= 500:
		return fmt.Errorf("%w: HTTP %d: %s", domain.ErrUnavailable, statusCode, apiErr.Message)
	default:
		return fmt.Errorf("kalshi: HTTP %d: %s (%s)", statusCode, apiErr.Message, apiErr.Code)
	}
}

// Compile-time interface check.
var _ domain.MarketSource = (*Source)(nil)
