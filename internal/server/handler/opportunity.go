package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

// OpportunityHandler serves the latest scan snapshot and stored history.
type OpportunityHandler struct {
	cache  domain.OpportunityCache
	store  domain.OpportunityStore
	logger *slog.Logger
}

// NewOpportunityHandler creates an OpportunityHandler. store may be nil when
// no database is configured; the history endpoint then returns 404.
func NewOpportunityHandler(cache domain.OpportunityCache, store domain.OpportunityStore, logger *slog.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		cache:  cache,
		store:  store,
		logger: logger.With(slog.String("handler", "opportunity")),
	}
}

// GetLatest returns the most recent scan's opportunities, optionally
// filtered and re-sorted.
//
//	GET /api/opportunities?min_spread=2&confidence=high&sort=roi&limit=50
func (h *OpportunityHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	opps, err := h.cache.GetLatest(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{
				"opportunities": []domain.Opportunity{},
				"count":         0,
			})
			return
		}
		h.logger.Error("cache read failed", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "opportunity cache unavailable")
		return
	}

	opps = filterOpportunities(opps, r)
	sortParam(opps, r.URL.Query().Get("sort"))

	limit := queryInt(r, "limit", len(opps), 500)
	if limit < len(opps) {
		opps = opps[:limit]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"opportunities": opps,
		"count":         len(opps),
	})
}

// GetHistory returns stored opportunities, newest first.
//
//	GET /api/opportunities/history?limit=100
func (h *OpportunityHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusNotFound, "history storage not configured")
		return
	}

	limit := queryInt(r, "limit", 100, 1000)
	opps, err := h.store.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("history read failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "history query failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"opportunities": opps,
		"count":         len(opps),
	})
}

func filterOpportunities(opps []domain.Opportunity, r *http.Request) []domain.Opportunity {
	minSpread := queryFloat(r, "min_spread", 0)
	confidence := r.URL.Query().Get("confidence")

	out := make([]domain.Opportunity, 0, len(opps))
	for _, o := range opps {
		if o.Spread < minSpread {
			continue
		}
		if confidence != "" && string(o.Confidence) != confidence {
			continue
		}
		out = append(out, o)
	}
	return out
}

func sortParam(opps []domain.Opportunity, by string) {
	switch by {
	case "roi":
		sort.SliceStable(opps, func(i, j int) bool { return opps[i].ROI > opps[j].ROI })
	case "volume":
		sort.SliceStable(opps, func(i, j int) bool { return opps[i].TotalVolume > opps[j].TotalVolume })
	case "similarity":
		sort.SliceStable(opps, func(i, j int) bool { return opps[i].Similarity > opps[j].Similarity })
	case "spread":
		sort.SliceStable(opps, func(i, j int) bool { return opps[i].Spread > opps[j].Spread })
	}
}
