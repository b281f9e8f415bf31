package app

import (
	"context"
	"fmt"
	"log/slog"

	s3blob "github.com/monkeydluthy/prophitline/internal/blob/s3"
	"github.com/monkeydluthy/prophitline/internal/cache/memory"
	"github.com/monkeydluthy/prophitline/internal/cache/redis"
	"github.com/monkeydluthy/prophitline/internal/config"
	"github.com/monkeydluthy/prophitline/internal/domain"
	"github.com/monkeydluthy/prophitline/internal/embed"
	"github.com/monkeydluthy/prophitline/internal/matching"
	"github.com/monkeydluthy/prophitline/internal/metrics"
	"github.com/monkeydluthy/prophitline/internal/notify"
	"github.com/monkeydluthy/prophitline/internal/platform/kalshi"
	"github.com/monkeydluthy/prophitline/internal/platform/polymarket"
	"github.com/monkeydluthy/prophitline/internal/scan"
	"github.com/monkeydluthy/prophitline/internal/server/handler"
	"github.com/monkeydluthy/prophitline/internal/sportarb"
	"github.com/monkeydluthy/prophitline/internal/store/postgres"
	"github.com/monkeydluthy/prophitline/internal/teams"

	"github.com/monkeydluthy/prophitline/internal/arbitrage"
)

// Dependencies bundles everything the application modes need to operate. It
// is constructed by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	Sources  []domain.MarketSource
	Registry *teams.Registry
	Scanner  *scan.Scanner

	// Bus is nil when Redis is disabled; the WebSocket hub is then skipped.
	Bus      domain.SignalBus
	OppCache domain.OpportunityCache
	Store    domain.OpportunityStore // nil without Postgres

	Metrics  *metrics.Metrics
	Notifier *notify.Notifier
	Health   map[string]handler.Pinger
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{
		Metrics: metrics.New(),
		Health:  make(map[string]handler.Pinger),
	}

	// --- Market sources ---
	deps.Sources = []domain.MarketSource{
		polymarket.NewSource(cfg.Polymarket.GammaHost),
		kalshi.NewSource(kalshi.SourceConfig{
			BaseURL: cfg.Kalshi.BaseURL,
			Series:  cfg.Kalshi.Series,
		}),
	}

	// --- Team registry ---
	extra := make([]teams.Team, 0, len(cfg.Matching.ExtraTeams))
	for _, t := range cfg.Matching.ExtraTeams {
		extra = append(extra, teams.Team{
			ID:       t.ID,
			Sport:    t.Sport,
			City:     t.City,
			Nickname: t.Nickname,
			Abbrev:   t.Abbrev,
			Aliases:  t.Aliases,
		})
	}
	deps.Registry = teams.NewRegistry(extra...)

	// --- Redis (optional) ---
	var (
		embedCache domain.EmbeddingCache
		scanLocks  domain.LockManager
	)
	if cfg.Redis.Enabled {
		rc, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = rc.Close() })

		deps.Bus = redis.NewSignalBus(rc)
		deps.OppCache = redis.NewOpportunityCache(rc)
		embedCache = redis.NewEmbeddingCache(rc, cfg.Embeddings.CacheTTL.Duration, logger)
		scanLocks = redis.NewLockManager(rc)
		deps.Health["redis"] = rc.Ping
	} else {
		deps.OppCache = memory.NewOpportunityCache()
		embedCache = memory.NewEmbeddingLRU(cfg.Embeddings.MemoryCacheSize)
	}
	embedCache = scan.InstrumentEmbeddingCache(embedCache, deps.Metrics)

	// --- PostgreSQL (optional history store) ---
	if cfg.Postgres.Enabled {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}

		deps.Store = postgres.NewOpportunityStore(pgClient.Pool())
		deps.Health["postgres"] = pgClient.Pool().Ping
	}

	// --- S3 scan archive (optional) ---
	var archiver scan.Archiver
	if cfg.S3.Enabled {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		closers = append(closers, func() { _ = s3Client.Close() })

		archiver = s3blob.NewSnapshotArchiver(s3blob.NewWriter(s3Client))
		deps.Health["s3"] = s3Client.Health
	}

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(
			cfg.Notify.TelegramToken,
			cfg.Notify.TelegramChatID,
		))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	deps.Notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)

	// --- Matching pipeline ---
	embedder := embed.NewClient(embed.Config{
		BaseURL:   cfg.Embeddings.BaseURL,
		APIKey:    cfg.Embeddings.APIKey,
		Model:     cfg.Embeddings.Model,
		BatchSize: cfg.Embeddings.BatchSize,
		RPS:       cfg.Embeddings.RPS,
	}, logger)

	normalizer := matching.NewTitleNormalizer(deps.Registry.All())
	semantic := matching.NewSemanticMatcher(
		embedder,
		embedCache,
		normalizer,
		matching.NewClassifier(deps.Registry),
		matching.NewValidator(deps.Registry),
		matching.SemanticConfig{
			SimilarityThreshold: cfg.Matching.SimilarityThreshold,
			MinPriceSpread:      cfg.Matching.MinPriceSpread,
			EmbedBatchSize:      cfg.Embeddings.BatchSize,
		},
		logger,
	)

	fees := make(map[domain.Platform]float64, len(cfg.Scan.Fees))
	for platform, fee := range cfg.Scan.Fees {
		fees[domain.Platform(platform)] = fee
	}

	sport := sportarb.NewMatcher(deps.Sources, deps.Registry, sportarb.Config{
		Sports:        cfg.Scan.Sports,
		PerSportLimit: cfg.Scan.PerSportLimit,
		MinROI:        cfg.Scan.MinROI,
		Stake:         cfg.Scan.Stake,
		Fees:          fees,
	}, logger)

	assembler := arbitrage.NewAssembler(arbitrage.AssemblerConfig{
		Stake: cfg.Scan.Stake,
		Fees:  fees,
	})

	deps.Scanner = scan.NewScanner(
		deps.Sources,
		semantic,
		sport,
		assembler,
		scan.ScannerDeps{
			Store:    deps.Store,
			Cache:    deps.OppCache,
			Bus:      deps.Bus,
			Notifier: deps.Notifier,
			Archiver: archiver,
			Locks:    scanLocks,
		},
		deps.Metrics,
		scan.Config{
			Interval:  cfg.Scan.Interval.Duration,
			MinSpread: cfg.Scan.MinSpread,
			Sort:      domain.SortStrategy(cfg.Scan.Sort),
		},
		logger,
	)

	return deps, cleanup, nil
}
