package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		header func(*http.Request)
		want   int
	}{
		{"disabled without key", "", func(r *http.Request) {}, http.StatusOK},
		{"bearer token", "secret", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer secret")
		}, http.StatusOK},
		{"x-api-key header", "secret", func(r *http.Request) {
			r.Header.Set("X-API-Key", "secret")
		}, http.StatusOK},
		{"missing token", "secret", func(r *http.Request) {}, http.StatusUnauthorized},
		{"wrong token", "secret", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer nope")
		}, http.StatusUnauthorized},
		{"wrong scheme", "secret", func(r *http.Request) {
			r.Header.Set("Authorization", "Basic secret")
		}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Auth(tt.apiKey)(okHandler())
			req := httptest.NewRequest(http.MethodGet, "/api/opportunities", nil)
			tt.header(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRateLimitPerClient(t *testing.T) {
	h := RateLimit(1, 2)(okHandler())

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if send("10.0.0.1") != http.StatusOK || send("10.0.0.1") != http.StatusOK {
		t.Fatal("requests within burst rejected")
	}
	if send("10.0.0.1") != http.StatusTooManyRequests {
		t.Error("request beyond burst allowed")
	}
	// A different client has its own bucket.
	if send("10.0.0.2") != http.StatusOK {
		t.Error("second client throttled by the first client's bucket")
	}
}

func TestExtractClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:1234"
	if got := extractClientIP(req); got != "192.0.2.7" {
		t.Errorf("remote addr ip = %q", got)
	}

	req.Header.Set("X-Real-IP", "203.0.113.5")
	if got := extractClientIP(req); got != "203.0.113.5" {
		t.Errorf("x-real-ip = %q", got)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.9, 10.0.0.1")
	if got := extractClientIP(req); got != "198.51.100.9" {
		t.Errorf("x-forwarded-for = %q, want first hop", got)
	}
}

func TestAuthAuthorizationHeaderWins(t *testing.T) {
	// A malformed Authorization header is rejected even when a valid
	// X-API-Key rides along.
	h := Auth("secret")(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/api/opportunities", nil)
	req.Header.Set("Authorization", "Basic nope")
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCORSWildcard(t *testing.T) {
	h := CORS([]string{"*"})(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://anything.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://anything.example" {
		t.Error("wildcard entry did not allow origin")
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("allowed origin missing CORS headers")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("disallowed origin received CORS headers")
	}

	// Preflight short-circuits.
	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
}

func TestLoggingRecordsStatusAndBytes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/opportunities", nil))
	line := buf.String()
	if !strings.Contains(line, `"status":418`) || !strings.Contains(line, `"bytes":5`) {
		t.Errorf("log line missing status or bytes: %s", line)
	}

	// Health checks log at debug, below the handler's info threshold.
	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if buf.Len() != 0 {
		t.Errorf("health check logged at info: %s", buf.String())
	}
}
