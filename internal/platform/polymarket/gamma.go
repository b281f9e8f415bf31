// Package polymarket adapts the Polymarket Gamma API into domain market
// records. Market discovery is unauthenticated; the adapter never touches
// the trading CLOB.
package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// pageSize is the Gamma pagination window.
const pageSize = 100

// maxPages bounds a bulk fetch so a runaway cursor cannot spin forever.
const maxPages = 50

// Source is the Polymarket market source. It implements domain.MarketSource
// over the Gamma REST API.
type Source struct {
	baseURL    string
	httpClient *http.Client
}

// NewSource creates a Polymarket source.
//
// baseURL is the Gamma API root, e.g. "https://gamma-api.polymarket.com".
func NewSource(baseURL string) *Source {
	return &Source{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Platform identifies this source.
func (s *Source) Platform() domain.Platform {
	return domain.PlatformPolymarket
}

// FetchMarkets returns all active, open Polymarket listings.
func (s *Source) FetchMarkets(ctx context.Context) ([]domain.MarketRecord, error) {
	var out []domain.MarketRecord
	for page := 0; page < maxPages; page++ {
		params := url.Values{}
		params.Set("active", "true")
		params.Set("closed", "false")
		params.Set("limit", strconv.Itoa(pageSize))
		params.Set("offset", strconv.Itoa(page*pageSize))

		body, err := s.doGet(ctx, "/markets?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("polymarket: get markets: %w", err)
		}

		var apiMarkets []APIMarket
		if err := json.Unmarshal(body, &apiMarkets); err != nil {
			return nil, fmt.Errorf("polymarket: decode markets: %w", err)
		}

		for i := range apiMarkets {
			if rec, ok := apiMarkets[i].ToMarketRecord(); ok {
				out = append(out, rec)
			}
		}
		if len(apiMarkets) < pageSize {
			break
		}
	}
	return out, nil
}

// FetchSportMarkets returns open listings tagged with the given sport,
// flattened from the sport's event groups.
func (s *Source) FetchSportMarkets(ctx context.Context, sport string) ([]domain.MarketRecord, error) {
	var out []domain.MarketRecord
	for page := 0; page < maxPages; page++ {
		params := url.Values{}
		params.Set("tag_slug", sport)
		params.Set("active", "true")
		params.Set("closed", "false")
		params.Set("limit", strconv.Itoa(pageSize))
		params.Set("offset", strconv.Itoa(page*pageSize))

		body, err := s.doGet(ctx, "/events?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("polymarket: get %s events: %w", sport, err)
		}

		var events []APIEvent
		if err := json.Unmarshal(body, &events); err != nil {
			return nil, fmt.Errorf("polymarket: decode %s events: %w", sport, err)
		}

		for i := range events {
			out = append(out, flattenEvent(&events[i])...)
		}
		if len(events) < pageSize {
			break
		}
	}
	return out, nil
}

// FetchEventBySlug retrieves one event's markets by its URL slug. Returns
// domain.ErrNotFound when the slug resolves to nothing.
func (s *Source) FetchEventBySlug(ctx context.Context, slug string) ([]domain.MarketRecord, error) {
	params := url.Values{}
	params.Set("slug", slug)

	body, err := s.doGet(ctx, "/events?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("polymarket: get event by slug %s: %w", slug, err)
	}

	var events []APIEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("polymarket: decode event: %w", err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("polymarket: %w: slug=%s", domain.ErrNotFound, slug)
	}

	return flattenEvent(&events[0]), nil
}

func flattenEvent(e *APIEvent) []domain.MarketRecord {
	if e.Closed || !bool(e.Active) {
		return nil
	}
	var out []domain.MarketRecord
	for i := range e.Markets {
		if rec, ok := e.Markets[i].ToMarketRecord(); ok {
			out = append(out, rec)
		}
	}
	return out
}

// doGet sends an unauthenticated GET request to the Gamma API.
func (s *Source) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
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

	if err := checkHTTPStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	return body, nil
}

func checkHTTPStatus(statusCode int) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case statusCode == http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case statusCode >= 500:
		return fmt.Errorf("%w: HTTP %d", domain.ErrUnavailable, statusCode)
	default:
		return fmt.Errorf("HTTP %d", statusCode)
	}
}

// Compile-time interface check.
var _ domain.MarketSource = (*Source)(nil)
