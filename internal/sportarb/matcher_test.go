package sportarb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/monkeydluthy/prophitline/internal/domain"
	"github.com/monkeydluthy/prophitline/internal/teams"
)

type fakeSource struct {
	platform  domain.Platform
	bySport   map[string][]domain.MarketRecord
	bySlug    map[string][]domain.MarketRecord
	fetchErr  error
	slugCalls []string
}

func (s *fakeSource) Platform() domain.Platform { return s.platform }

func (s *fakeSource) FetchMarkets(ctx context.Context) ([]domain.MarketRecord, error) {
	var out []domain.MarketRecord
	for _, recs := range s.bySport {
		out = append(out, recs...)
	}
	return out, s.fetchErr
}

func (s *fakeSource) FetchSportMarkets(ctx context.Context, sport string) ([]domain.MarketRecord, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.bySport[sport], nil
}

func (s *fakeSource) FetchEventBySlug(ctx context.Context, slug string) ([]domain.MarketRecord, error) {
	s.slugCalls = append(s.slugCalls, slug)
	if recs, ok := s.bySlug[slug]; ok {
		return recs, nil
	}
	return nil, domain.ErrNotFound
}

func kalshiWinnerMarket() domain.MarketRecord {
	return domain.MarketRecord{
		Platform: domain.PlatformKalshi,
		ID:       "kalshi:KXNFLGAME-25SEP25BALGB",
		Title:    "Baltimore at Green Bay Winner?",
		Outcomes: []domain.Outcome{
			{Name: "Yes", Price: 0.52},
			{Name: "No", Price: 0.45},
		},
		Volume: 40000,
	}
}

func polyTeamMarket() domain.MarketRecord {
	return domain.MarketRecord{
		Platform:  domain.PlatformPolymarket,
		ID:        "polymarket:ravens-packers",
		Title:     "Ravens vs. Packers",
		EventDate: "2025-09-25",
		Outcomes: []domain.Outcome{
			{Name: "Ravens", Price: 0.42},
			{Name: "Packers", Price: 0.58},
		},
		Volume: 90000,
	}
}

func newTestMatcher(cfg Config, sources ...domain.MarketSource) *Matcher {
	return NewMatcher(sources, teams.NewRegistry(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFindSportsArbitrage(t *testing.T) {
	kalshi := &fakeSource{
		platform: domain.PlatformKalshi,
		bySport:  map[string][]domain.MarketRecord{"nfl": {kalshiWinnerMarket()}},
	}
	poly := &fakeSource{
		platform: domain.PlatformPolymarket,
		bySport:  map[string][]domain.MarketRecord{"nfl": {polyTeamMarket()}},
	}

	m := newTestMatcher(Config{Sports: []string{"nfl"}, MinROI: 0.5, Stake: 1000}, kalshi, poly)
	opps := m.FindSportsArbitrage(context.Background())
	if len(opps) != 1 {
		t.Fatalf("got %d opportunities, want 1", len(opps))
	}

	// Kalshi "No" backs the Packers at 0.45; the opposing Ravens leg at 0.42
	// makes the pair profitable. Presentation keeps the same team on both
	// legs: buy Kalshi No, sell Polymarket Packers.
	o := opps[0]
	if o.BestBuy.Platform != domain.PlatformKalshi || o.BestBuy.OutcomeIndex != 1 || o.BestBuy.Price != 0.45 {
		t.Errorf("buy leg = %s outcome %d @ %v, want kalshi No @ 0.45",
			o.BestBuy.Platform, o.BestBuy.OutcomeIndex, o.BestBuy.Price)
	}
	if o.BestSell.Platform != domain.PlatformPolymarket || o.BestSell.OutcomeIndex != 1 || o.BestSell.Price != 0.58 {
		t.Errorf("sell leg = %s outcome %d @ %v, want polymarket Packers @ 0.58",
			o.BestSell.Platform, o.BestSell.OutcomeIndex, o.BestSell.Price)
	}
	// costA 0.45 + costB 0.42 leaves a 14.9% ROI.
	if o.ROI < 14 || o.ROI > 16 {
		t.Errorf("ROI = %v, want about 14.9", o.ROI)
	}
	if o.Confidence != domain.ConfidenceHigh {
		t.Errorf("Confidence = %s, want high for signature-grouped pairs", o.Confidence)
	}
}

func TestFindSportsArbitrageSlugFallback(t *testing.T) {
	kalshi := &fakeSource{
		platform: domain.PlatformKalshi,
		bySport:  map[string][]domain.MarketRecord{"nfl": {kalshiWinnerMarket()}},
	}
	// Polymarket's bulk feed misses the event; the deterministic slug finds it.
	poly := &fakeSource{
		platform: domain.PlatformPolymarket,
		bySlug:   map[string][]domain.MarketRecord{"nfl-bal-gb-2025-09-25": {polyTeamMarket()}},
	}

	m := newTestMatcher(Config{Sports: []string{"nfl"}, MinROI: 0.5}, kalshi, poly)
	opps := m.FindSportsArbitrage(context.Background())
	if len(opps) != 1 {
		t.Fatalf("got %d opportunities, want 1 via slug fallback", len(opps))
	}
	if len(poly.slugCalls) == 0 || poly.slugCalls[0] != "nfl-bal-gb-2025-09-25" {
		t.Errorf("slug calls = %v, want the canonical-order slug tried first", poly.slugCalls)
	}
}

func TestFindSportsArbitrageSourceFailure(t *testing.T) {
	kalshi := &fakeSource{platform: domain.PlatformKalshi, fetchErr: errors.New("rate limited")}
	poly := &fakeSource{
		platform: domain.PlatformPolymarket,
		bySport:  map[string][]domain.MarketRecord{"nfl": {polyTeamMarket()}},
	}

	m := newTestMatcher(Config{Sports: []string{"nfl"}}, kalshi, poly)
	if opps := m.FindSportsArbitrage(context.Background()); len(opps) != 0 {
		t.Errorf("single-platform data produced %d opportunities, want 0", len(opps))
	}
}

func TestFindSportsArbitrageMinROI(t *testing.T) {
	kalshi := &fakeSource{
		platform: domain.PlatformKalshi,
		bySport:  map[string][]domain.MarketRecord{"nfl": {kalshiWinnerMarket()}},
	}
	poly := &fakeSource{
		platform: domain.PlatformPolymarket,
		bySport:  map[string][]domain.MarketRecord{"nfl": {polyTeamMarket()}},
	}

	m := newTestMatcher(Config{Sports: []string{"nfl"}, MinROI: 50}, kalshi, poly)
	if opps := m.FindSportsArbitrage(context.Background()); len(opps) != 0 {
		t.Errorf("MinROI 50%% kept %d opportunities, want 0", len(opps))
	}
}

func TestDedupeByEvent(t *testing.T) {
	reg := teams.NewRegistry()
	opps := []domain.Opportunity{
		{ID: "1", Title: "Ravens vs Packers Winner?", Spread: 3.0},
		{ID: "2", Title: "Baltimore Ravens vs Green Bay Packers", Spread: 7.0},
		{ID: "3", Title: "Chiefs vs Bills", Spread: 2.0},
		{ID: "4", Title: "Something unparsable", Spread: 1.0},
	}

	got := DedupeByEvent(reg, opps)
	if len(got) != 3 {
		t.Fatalf("got %d opportunities, want 3", len(got))
	}
	if got[0].ID != "2" {
		t.Errorf("kept %s for the Ravens-Packers event, want the wider spread (2)", got[0].ID)
	}
	if got[1].ID != "3" || got[2].ID != "4" {
		t.Errorf("order = [%s %s %s], want first-seen event order", got[0].ID, got[1].ID, got[2].ID)
	}
}
