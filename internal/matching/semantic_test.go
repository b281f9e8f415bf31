package matching

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/monkeydluthy/prophitline/internal/domain"
	"github.com/monkeydluthy/prophitline/internal/teams"
)

// fakeEmbedder returns canned vectors keyed by input text, or a fixed error.
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, txt := range texts {
		vec, ok := f.vectors[txt]
		if !ok {
			vec = []float64{1, 0, 0}
		}
		out[i] = vec
	}
	return out, nil
}

// mapCache is an in-test embedding cache.
type mapCache struct {
	data map[string][]float64
	hits int
}

func (c *mapCache) Get(ctx context.Context, key string) ([]float64, bool) {
	vec, ok := c.data[key]
	if ok {
		c.hits++
	}
	return vec, ok
}

func (c *mapCache) Set(ctx context.Context, key string, vec []float64) {
	c.data[key] = vec
}

func newTestSemanticMatcher(embedder domain.Embedder, cache domain.EmbeddingCache, cfg SemanticConfig) *SemanticMatcher {
	reg := teams.NewRegistry()
	return NewSemanticMatcher(
		embedder,
		cache,
		NewTitleNormalizer(reg.All()),
		NewClassifier(reg),
		NewValidator(reg),
		cfg,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func sportsPair() []domain.MarketRecord {
	return []domain.MarketRecord{
		{
			Platform: domain.PlatformKalshi,
			ID:       "kalshi:BALGB",
			Title:    "Baltimore at Green Bay Winner?",
			Outcomes: []domain.Outcome{{Name: "Yes", Price: 0.45}, {Name: "No", Price: 0.55}},
		},
		{
			Platform: domain.PlatformPolymarket,
			ID:       "polymarket:ravens-packers",
			Title:    "Ravens vs. Packers",
			Outcomes: []domain.Outcome{{Name: "Yes", Price: 0.52}, {Name: "No", Price: 0.48}},
		},
	}
}

func TestFindMatchesAcceptsSimilarPair(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{}}
	cache := &mapCache{data: map[string][]float64{}}
	m := newTestSemanticMatcher(embedder, cache, SemanticConfig{
		SimilarityThreshold: 0.65,
		MinPriceSpread:      0.005,
	})

	// Identical default vectors make the pair maximally similar.
	got := m.FindMatches(context.Background(), sportsPair())
	if len(got) != 1 {
		t.Fatalf("FindMatches = %d candidates, want 1", len(got))
	}
	c := got[0]
	if c.Basis != "semantic" {
		t.Errorf("basis = %q, want semantic", c.Basis)
	}
	if c.Similarity < 0.99 {
		t.Errorf("similarity = %v, want ~1", c.Similarity)
	}
	// Binary markets align by label; Yes/Yes has the bigger price gap here.
	if c.A.Outcomes[c.OutcomeA].Name != c.B.Outcomes[c.OutcomeB].Name {
		t.Errorf("binary alignment mismatched labels: %s vs %s",
			c.A.Outcomes[c.OutcomeA].Name, c.B.Outcomes[c.OutcomeB].Name)
	}
}

func TestFindMatchesRejectsBelowThreshold(t *testing.T) {
	// Orthogonal vectors for the two normalized titles.
	first := true
	cache := &mapCache{data: map[string][]float64{}}
	m := newTestSemanticMatcher(&orthogonalEmbedder{&first}, cache, SemanticConfig{
		SimilarityThreshold: 0.65,
		MinPriceSpread:      0.005,
	})

	if got := m.FindMatches(context.Background(), sportsPair()); len(got) != 0 {
		t.Fatalf("FindMatches = %d candidates, want 0 for orthogonal vectors", len(got))
	}
}

// orthogonalEmbedder hands out a different basis vector per text.
type orthogonalEmbedder struct{ first *bool }

func (o *orthogonalEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		if *o.first {
			out[i] = []float64{1, 0}
		} else {
			out[i] = []float64{0, 1}
		}
		*o.first = !*o.first
	}
	return out, nil
}

func TestFindMatchesStructuralGate(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{}}
	cache := &mapCache{data: map[string][]float64{}}
	m := newTestSemanticMatcher(embedder, cache, SemanticConfig{
		SimilarityThreshold: 0.65,
		MinPriceSpread:      0.005,
	})

	// Identical vectors, but different games: the sports gate must reject.
	markets := []domain.MarketRecord{
		{
			Platform: domain.PlatformKalshi,
			Title:    "Ravens vs Packers Winner",
			Outcomes: []domain.Outcome{{Name: "Yes", Price: 0.45}, {Name: "No", Price: 0.55}},
		},
		{
			Platform: domain.PlatformPolymarket,
			Title:    "Chiefs vs Bills Winner",
			Outcomes: []domain.Outcome{{Name: "Yes", Price: 0.52}, {Name: "No", Price: 0.48}},
		},
	}
	if got := m.FindMatches(context.Background(), markets); len(got) != 0 {
		t.Fatalf("FindMatches = %d candidates, want 0 across different games", len(got))
	}
}

func TestFindMatchesMinPriceSpread(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{}}
	cache := &mapCache{data: map[string][]float64{}}
	m := newTestSemanticMatcher(embedder, cache, SemanticConfig{
		SimilarityThreshold: 0.65,
		MinPriceSpread:      0.10,
	})

	// 0.45 vs 0.52 is a 0.07 gap, below the 0.10 floor.
	if got := m.FindMatches(context.Background(), sportsPair()); len(got) != 0 {
		t.Fatalf("FindMatches = %d candidates, want 0 below min price spread", len(got))
	}
}

func TestFindMatchesUsesCache(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{}}
	cache := &mapCache{data: map[string][]float64{}}
	m := newTestSemanticMatcher(embedder, cache, SemanticConfig{
		SimilarityThreshold: 0.65,
		MinPriceSpread:      0.005,
	})

	markets := sportsPair()
	m.FindMatches(context.Background(), markets)
	if embedder.calls == 0 {
		t.Fatal("expected embedder call on cold cache")
	}
	calls := embedder.calls

	m.FindMatches(context.Background(), markets)
	if embedder.calls != calls {
		t.Errorf("embedder called again on warm cache: %d -> %d", calls, embedder.calls)
	}
	if cache.hits == 0 {
		t.Error("cache reported no hits on the second pass")
	}
}

func TestFindMatchesDegradesOnEmbedderFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("provider down")}
	cache := &mapCache{data: map[string][]float64{}}
	m := newTestSemanticMatcher(embedder, cache, SemanticConfig{
		SimilarityThreshold: 0.65,
		MinPriceSpread:      0.005,
	})

	// No panic, no candidates; the pass degrades quietly.
	if got := m.FindMatches(context.Background(), sportsPair()); len(got) != 0 {
		t.Fatalf("FindMatches = %d candidates, want 0 when embedding fails", len(got))
	}
}

func TestFindMatchesSkipsInvalidAndPlaceholders(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{}}
	cache := &mapCache{data: map[string][]float64{}}
	m := newTestSemanticMatcher(embedder, cache, SemanticConfig{
		SimilarityThreshold: 0.65,
		MinPriceSpread:      0.005,
	})

	markets := []domain.MarketRecord{
		{Platform: domain.PlatformKalshi, Title: "tbd", Outcomes: []domain.Outcome{{Name: "Yes", Price: 0.5}}},
		{Platform: domain.PlatformPolymarket, Title: "Test", Outcomes: []domain.Outcome{{Name: "Yes", Price: 0.5}}},
		{Platform: domain.PlatformPolymarket, Title: "Broken price", Outcomes: []domain.Outcome{{Name: "Yes", Price: 1.5}}},
	}
	if got := m.FindMatches(context.Background(), markets); len(got) != 0 {
		t.Fatalf("FindMatches = %d candidates, want 0", len(got))
	}
	if embedder.calls != 0 {
		t.Errorf("embedder called %d times for filtered inputs, want 0", embedder.calls)
	}
}
