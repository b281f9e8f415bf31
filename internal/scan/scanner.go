// Package scan runs the full cross-platform detection pipeline: fetch all
// sources, run the semantic and sport-aware matchers, assemble and rank
// opportunities, then fan the result out to the cache, store, pub/sub bus,
// notifier, and archive.
package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/monkeydluthy/prophitline/internal/arbitrage"
	"github.com/monkeydluthy/prophitline/internal/domain"
	"github.com/monkeydluthy/prophitline/internal/matching"
	"github.com/monkeydluthy/prophitline/internal/metrics"
	"github.com/monkeydluthy/prophitline/internal/notify"
	"github.com/monkeydluthy/prophitline/internal/sportarb"
)

// Channel is the pub/sub channel scan snapshots are published on.
const Channel = "opportunities"

// scanLockKey serializes scans across processes and against API triggers.
const scanLockKey = "scan"

// Config tunes the scanner.
type Config struct {
	Interval  time.Duration
	MinSpread float64 // percentage points
	Sort      domain.SortStrategy
}

// Archiver uploads a completed scan's snapshot.
type Archiver interface {
	ArchiveScan(ctx context.Context, at time.Time, opps []domain.Opportunity) (string, error)
}

// Scanner orchestrates one detection cycle end to end. The store, bus,
// notifier, archiver, and lock are all optional; a nil dependency simply
// skips that fan-out step.
type Scanner struct {
	sources   []domain.MarketSource
	semantic  *matching.SemanticMatcher
	sport     *sportarb.Matcher
	assembler *arbitrage.Assembler

	store    domain.OpportunityStore
	cache    domain.OpportunityCache
	bus      domain.SignalBus
	notifier *notify.Notifier
	archiver Archiver
	locks    domain.LockManager

	met    *metrics.Metrics
	cfg    Config
	logger *slog.Logger
}

// ScannerDeps carries the optional fan-out targets for NewScanner.
type ScannerDeps struct {
	Store    domain.OpportunityStore
	Cache    domain.OpportunityCache
	Bus      domain.SignalBus
	Notifier *notify.Notifier
	Archiver Archiver
	Locks    domain.LockManager
}

// NewScanner creates a Scanner.
func NewScanner(
	sources []domain.MarketSource,
	semantic *matching.SemanticMatcher,
	sport *sportarb.Matcher,
	assembler *arbitrage.Assembler,
	deps ScannerDeps,
	met *metrics.Metrics,
	cfg Config,
	logger *slog.Logger,
) *Scanner {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Sort == "" {
		cfg.Sort = domain.SortBySpread
	}
	return &Scanner{
		sources:   sources,
		semantic:  semantic,
		sport:     sport,
		assembler: assembler,
		store:     deps.Store,
		cache:     deps.Cache,
		bus:       deps.Bus,
		notifier:  deps.Notifier,
		archiver:  deps.Archiver,
		locks:     deps.Locks,
		met:       met,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "scanner")),
	}
}

// Run scans immediately, then on every interval tick until ctx is done.
func (s *Scanner) Run(ctx context.Context) error {
	s.logger.Info("scanner starting", slog.Duration("interval", s.cfg.Interval))

	if _, err := s.Scan(ctx); err != nil {
		s.logger.Error("scan failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scanner stopped")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Scan(ctx); err != nil {
				s.logger.Error("scan failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Scan runs one full detection cycle and returns the ranked opportunity set.
// A concurrently running scan (here or in another process) makes Scan a
// no-op returning ErrLockHeld.
func (s *Scanner) Scan(ctx context.Context) ([]domain.Opportunity, error) {
	if s.locks != nil {
		unlock, err := s.locks.Acquire(ctx, scanLockKey, 10*time.Minute)
		if err != nil {
			if errors.Is(err, domain.ErrLockHeld) {
				s.logger.Info("scan already in progress, skipping")
				return nil, err
			}
			return nil, fmt.Errorf("scan: acquire lock: %w", err)
		}
		defer unlock()
	}

	start := time.Now()

	markets, err := s.fetchAll(ctx)
	if err != nil {
		s.met.ScanErrors.Inc()
		return nil, err
	}

	candidates := s.semantic.FindMatches(ctx, markets)
	s.met.MatchCandidates.WithLabelValues("semantic").Add(float64(len(candidates)))
	semanticOpps := s.assembler.FromCandidates(candidates, start)

	sportOpps := s.sport.FindSportsArbitrage(ctx)
	s.met.MatchCandidates.WithLabelValues("event-signature").Add(float64(len(sportOpps)))

	opps := s.assembler.Finalize(s.cfg.Sort, s.cfg.MinSpread, semanticOpps, sportOpps)

	s.fanOut(ctx, start, opps)

	s.met.ScansTotal.Inc()
	s.met.ScanDuration.Observe(time.Since(start).Seconds())
	s.met.OpportunitiesFound.Set(float64(len(opps)))

	s.logger.Info("scan complete",
		slog.Int("markets", len(markets)),
		slog.Int("candidates", len(candidates)),
		slog.Int("opportunities", len(opps)),
		slog.Duration("took", time.Since(start)),
	)
	return opps, nil
}

// fetchAll pulls every source concurrently. A source failure degrades to
// zero records from that source; only all sources failing is fatal.
func (s *Scanner) fetchAll(ctx context.Context) ([]domain.MarketRecord, error) {
	results := make([][]domain.MarketRecord, len(s.sources))
	errs := make([]error, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			recs, err := src.FetchMarkets(gctx)
			if err != nil {
				errs[i] = err
				s.met.ProviderErrors.WithLabelValues(string(src.Platform())).Inc()
				s.logger.Warn("source fetch failed",
					slog.String("platform", string(src.Platform())),
					slog.String("error", err.Error()),
				)
				return nil
			}
			results[i] = recs
			s.met.MarketsFetched.WithLabelValues(string(src.Platform())).Add(float64(len(recs)))
			return nil
		})
	}
	_ = g.Wait()

	var markets []domain.MarketRecord
	failed := 0
	for i := range s.sources {
		if errs[i] != nil {
			failed++
			continue
		}
		markets = append(markets, results[i]...)
	}
	if failed == len(s.sources) {
		return nil, fmt.Errorf("scan: %w", domain.ErrNoSources)
	}
	return markets, nil
}

// fanOut delivers a completed scan to every configured consumer. Downstream
// failures are logged, never propagated; the scan result is already final.
func (s *Scanner) fanOut(ctx context.Context, at time.Time, opps []domain.Opportunity) {
	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, opps); err != nil {
			s.logger.Warn("cache update failed", slog.String("error", err.Error()))
		}
	}

	if s.store != nil {
		for _, opp := range opps {
			if err := s.store.Insert(ctx, opp); err != nil {
				s.logger.Warn("history insert failed",
					slog.String("id", opp.ID),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	if s.bus != nil {
		payload, err := json.Marshal(opps)
		if err == nil {
			if err := s.bus.Publish(ctx, Channel, payload); err != nil {
				s.logger.Warn("publish failed", slog.String("error", err.Error()))
			}
		}
	}

	if s.notifier != nil && len(opps) > 0 {
		if err := s.notifier.AlertOpportunities(ctx, opps); err != nil {
			s.logger.Warn("notify failed", slog.String("error", err.Error()))
		}
	}

	if s.archiver != nil {
		if path, err := s.archiver.ArchiveScan(ctx, at, opps); err != nil {
			s.logger.Warn("archive failed", slog.String("error", err.Error()))
		} else if path != "" {
			s.logger.Debug("scan archived", slog.String("path", path))
		}
	}
}
