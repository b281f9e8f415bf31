package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// ScanRunner runs one detection cycle on demand.
type ScanRunner interface {
	Scan(ctx context.Context) ([]domain.Opportunity, error)
}

// ScanHandler triggers scans over HTTP.
type ScanHandler struct {
	runner ScanRunner
	logger *slog.Logger
}

// NewScanHandler creates a ScanHandler.
func NewScanHandler(runner ScanRunner, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{
		runner: runner,
		logger: logger.With(slog.String("handler", "scan")),
	}
}

// Trigger runs a scan synchronously and returns its result. A scan already
// in flight yields 409.
// POST /api/scan/trigger
func (h *ScanHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	opps, err := h.runner.Scan(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrLockHeld) {
			writeError(w, http.StatusConflict, "a scan is already in progress")
			return
		}
		h.logger.Error("triggered scan failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "scan failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"opportunities": opps,
		"count":         len(opps),
	})
}
