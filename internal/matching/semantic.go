package matching

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/monkeydluthy/prophitline/internal/domain"
)

const (
	// DefaultSimilarityThreshold is the cosine acceptance floor.
	DefaultSimilarityThreshold = 0.65
	// DefaultMinPriceSpread is the promotion gate in price units (0.5
	// percentage points).
	DefaultMinPriceSpread = 0.005
	// DefaultEmbedBatchSize bounds one provider call.
	DefaultEmbedBatchSize = 64
)

// SemanticConfig tunes the semantic matcher.
type SemanticConfig struct {
	SimilarityThreshold float64
	MinPriceSpread      float64
	EmbedBatchSize      int
}

func (c SemanticConfig) withDefaults() SemanticConfig {
	if c.SimilarityThreshold == 0 {
		c.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if c.MinPriceSpread == 0 {
		c.MinPriceSpread = DefaultMinPriceSpread
	}
	if c.EmbedBatchSize == 0 {
		c.EmbedBatchSize = DefaultEmbedBatchSize
	}
	return c
}

// SemanticMatcher finds cross-platform market pairs by embedding similarity,
// gated by category-aware structural validation. The embedding cache is
// injected so eviction policy stays visible and testable.
type SemanticMatcher struct {
	embedder   domain.Embedder
	cache      domain.EmbeddingCache
	normalizer *TitleNormalizer
	classifier *Classifier
	validator  *Validator
	cfg        SemanticConfig
	logger     *slog.Logger
}

// NewSemanticMatcher wires a matcher from its collaborators.
func NewSemanticMatcher(
	embedder domain.Embedder,
	cache domain.EmbeddingCache,
	normalizer *TitleNormalizer,
	classifier *Classifier,
	validator *Validator,
	cfg SemanticConfig,
	logger *slog.Logger,
) *SemanticMatcher {
	return &SemanticMatcher{
		embedder:   embedder,
		cache:      cache,
		normalizer: normalizer,
		classifier: classifier,
		validator:  validator,
		cfg:        cfg.withDefaults(),
		logger:     logger.With(slog.String("component", "semantic_matcher")),
	}
}

// entry is one market prepared for the cosine pass.
type entry struct {
	market     domain.MarketRecord
	normalized string
	category   Category
	vector     []float64
}

// placeholderTitles never reach the embedder.
var placeholderTitles = map[string]bool{
	"test": true, "tbd": true, "n a": true, "placeholder": true,
	"untitled": true,
}

// FindMatches runs the full semantic pipeline and returns accepted
// candidates. Embedding failures degrade the affected markets to "no
// semantic matches" rather than failing the pass.
func (m *SemanticMatcher) FindMatches(ctx context.Context, markets []domain.MarketRecord) []domain.MatchCandidate {
	entries := m.prepare(markets)
	m.embedAll(ctx, entries)

	byCategory := map[Category][]*entry{}
	for _, e := range entries {
		if e.vector == nil {
			continue
		}
		byCategory[e.category] = append(byCategory[e.category], e)
	}

	var out []domain.MatchCandidate
	for cat, group := range byCategory {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if a.market.Platform == b.market.Platform {
					continue
				}
				sim := cosine(a.vector, b.vector)
				if sim < m.cfg.SimilarityThreshold {
					continue
				}
				if !m.validator.Validate(cat, a.market.Title, b.market.Title) {
					m.logger.Debug("structural validation rejected pair",
						slog.String("category", string(cat)),
						slog.String("a", a.market.Title),
						slog.String("b", b.market.Title),
						slog.Float64("cosine", sim),
					)
					continue
				}
				cand, ok := bestOutcomePair(a.market, b.market, sim, m.cfg.MinPriceSpread)
				if !ok {
					continue
				}
				out = append(out, cand)
			}
		}
	}
	return out
}

// prepare filters malformed titles and runs normalization/classification.
func (m *SemanticMatcher) prepare(markets []domain.MarketRecord) []*entry {
	var entries []*entry
	for _, mk := range markets {
		if !mk.Valid() {
			continue
		}
		normalized := m.normalizer.Normalize(mk.Title)
		if len(normalized) < 3 || placeholderTitles[normalized] {
			continue
		}
		entries = append(entries, &entry{
			market:     mk,
			normalized: normalized,
			category:   m.classifier.Classify(normalized),
		})
	}
	return entries
}

// embedAll fills vectors from the cache, then fetches misses from the
// provider in bounded batches. A failed batch leaves its entries without
// vectors; they simply produce no matches this pass.
func (m *SemanticMatcher) embedAll(ctx context.Context, entries []*entry) {
	var misses []*entry
	for _, e := range entries {
		key := m.normalizer.CacheKey(e.normalized)
		if vec, ok := m.cache.Get(ctx, key); ok {
			e.vector = vec
			continue
		}
		misses = append(misses, e)
	}

	for start := 0; start < len(misses); start += m.cfg.EmbedBatchSize {
		end := start + m.cfg.EmbedBatchSize
		if end > len(misses) {
			end = len(misses)
		}
		batch := misses[start:end]

		texts := make([]string, len(batch))
		for i, e := range batch {
			texts[i] = e.normalized
		}
		vecs, err := m.embedder.Embed(ctx, texts)
		if err != nil || len(vecs) != len(batch) {
			m.logger.Warn("embedding batch degraded",
				slog.Int("size", len(batch)),
				slog.Any("error", err),
			)
			continue
		}
		for i, e := range batch {
			e.vector = vecs[i]
			m.cache.Set(ctx, m.normalizer.CacheKey(e.normalized), vecs[i])
		}
	}
}

// bestOutcomePair aligns outcomes of two equivalent markets and returns the
// pair with the largest price divergence, if it clears minSpread. Binary
// Yes/No markets align by label; everything else aligns by outcome-name
// similarity.
func bestOutcomePair(a, b domain.MarketRecord, sim, minSpread float64) (domain.MatchCandidate, bool) {
	bestDiff := 0.0
	bestI, bestJ := -1, -1

	consider := func(i, j int) {
		diff := math.Abs(a.Outcomes[i].Price - b.Outcomes[j].Price)
		if diff > bestDiff {
			bestDiff, bestI, bestJ = diff, i, j
		}
	}

	if bothBinary(a, b) {
		for i, oa := range a.Outcomes {
			for j, ob := range b.Outcomes {
				if strings.EqualFold(oa.Name, ob.Name) {
					consider(i, j)
				}
			}
		}
	} else {
		for i, oa := range a.Outcomes {
			for j, ob := range b.Outcomes {
				if Similarity(oa.Name, ob.Name) > outcomeThreshold {
					consider(i, j)
				}
			}
		}
	}

	if bestI < 0 || bestDiff <= minSpread {
		return domain.MatchCandidate{}, false
	}
	return domain.MatchCandidate{
		A:          a,
		B:          b,
		OutcomeA:   bestI,
		OutcomeB:   bestJ,
		Similarity: sim,
		Basis:      "semantic",
	}, true
}

func bothBinary(a, b domain.MarketRecord) bool {
	return isYesNo(a) && isYesNo(b)
}

func isYesNo(m domain.MarketRecord) bool {
	if len(m.Outcomes) != 2 {
		return false
	}
	n0 := strings.EqualFold(m.Outcomes[0].Name, "yes") || strings.EqualFold(m.Outcomes[0].Name, "no")
	n1 := strings.EqualFold(m.Outcomes[1].Name, "yes") || strings.EqualFold(m.Outcomes[1].Name, "no")
	return n0 && n1
}

// cosine computes cosine similarity; zero-length or mismatched vectors score
// zero.
func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
