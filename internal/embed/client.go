// Package embed provides an HTTP client for OpenAI-compatible embedding
// endpoints. Vectors feed the semantic matcher; callers are expected to put
// a cache in front of this client since embedding calls are the slowest and
// priciest step of a scan.
package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// RetryPolicy controls retry behavior for transient embedding failures.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// DefaultRetryPolicy retries three times with exponential backoff, 500ms
// doubling per attempt.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff: func(attempt int) time.Duration {
			return 500 * time.Millisecond << (attempt - 1)
		},
	}
}

// permanentError marks a failure retrying cannot fix, such as a rejected
// request or bad credentials.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Config holds embedding client settings.
type Config struct {
	BaseURL   string // API root, e.g. "https://api.openai.com/v1"
	APIKey    string
	Model     string // e.g. "text-embedding-3-small"
	BatchSize int    // max texts per request
	RPS       float64
	Retry     RetryPolicy
}

// Client calls a /embeddings endpoint. It implements domain.Embedder.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an embedding client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 64
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 3
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryPolicy()
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), 1),
		logger:  logger.With(slog.String("component", "embed")),
	}
}

// Embed returns one vector per input text, in input order. Inputs beyond the
// configured batch size are split into multiple requests.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += c.cfg.BatchSize {
		end := start + c.cfg.BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		vecs, err := c.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, vecs...)
	}
	return out, nil
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (c *Client) embedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.Retry.MaxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("embed: rate wait: %w", err)
		}

		vecs, err := c.doRequest(ctx, texts)
		if err == nil {
			return vecs, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, fmt.Errorf("embed: %w", domain.ErrContextDone)
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return nil, err
		}
		c.logger.Warn("embedding request failed",
			slog.Int("attempt", attempt),
			slog.Int("batch", len(texts)),
			slog.String("error", err.Error()),
		)
		if attempt < c.cfg.Retry.MaxAttempts && c.cfg.Retry.Backoff != nil {
			select {
			case <-time.After(c.cfg.Retry.Backoff(attempt)):
			case <-ctx.Done():
				return nil, fmt.Errorf("embed: %w", domain.ErrContextDone)
			}
		}
	}
	return nil, fmt.Errorf("embed: %d attempts exhausted: %w", c.cfg.Retry.MaxAttempts, lastErr)
}

func (c *Client) doRequest(ctx context.Context, texts []string) ([][]float64, error) {
	body, err := json.Marshal(embeddingRequest{Model: c.cfg.Model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if err := checkStatus(resp.StatusCode, respBody); err != nil {
		return nil, err
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d inputs", domain.ErrBadEmbedding, len(parsed.Data), len(texts))
	}

	// The API is allowed to reorder; index restores input order.
	out := make([][]float64, len(texts))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(out) || len(d.Embedding) == 0 {
			return nil, fmt.Errorf("%w: bad entry index %d", domain.ErrBadEmbedding, d.Index)
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}

func checkStatus(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &apiErr)

	// 429 and 5xx are worth another attempt; any other 4xx will fail the
	// same way every time.
	switch statusCode {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, apiErr.Error.Message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return &permanentError{fmt.Errorf("embed: unauthorized: %s", apiErr.Error.Message)}
	case http.StatusBadRequest:
		return &permanentError{fmt.Errorf("embed: bad request: %s", apiErr.Error.Message)}
	default:
		if statusCode >= 500 {
			return fmt.Errorf("%w: HTTP %d: %s", domain.ErrUnavailable, statusCode, apiErr.Error.Message)
		}
		return &permanentError{fmt.Errorf("embed: HTTP %d: %s", statusCode, apiErr.Error.Message)}
	}
}
