// Package config defines the top-level configuration for the arbitrage
// scanner and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by PROPHIT_* environment
// variables.
type Config struct {
	Kalshi     KalshiConfig     `toml:"kalshi"`
	Polymarket PolymarketConfig `toml:"polymarket"`
	Embeddings EmbeddingsConfig `toml:"embeddings"`
	Matching   MatchingConfig   `toml:"matching"`
	Scan       ScanConfig       `toml:"scan"`
	Postgres   PostgresConfig   `toml:"postgres"`
	Redis      RedisConfig      `toml:"redis"`
	S3         S3Config         `toml:"s3"`
	Server     ServerConfig     `toml:"server"`
	Notify     NotifyConfig     `toml:"notify"`
	Mode       string           `toml:"mode"`
	LogLevel   string           `toml:"log_level"`
}

// KalshiConfig holds Kalshi API parameters. Only public market-data
// endpoints are used, so no credentials are needed.
type KalshiConfig struct {
	BaseURL string `toml:"base_url"`
	// Series maps a sport to its game-winner series ticker, extending the
	// built-in nfl/nba/nhl mapping.
	Series map[string]string `toml:"series"`
}

// PolymarketConfig holds Polymarket Gamma API parameters.
type PolymarketConfig struct {
	GammaHost string `toml:"gamma_host"`
}

// EmbeddingsConfig holds the embedding provider settings.
type EmbeddingsConfig struct {
	BaseURL   string   `toml:"base_url"`
	APIKey    string   `toml:"api_key"`
	Model     string   `toml:"model"`
	BatchSize int      `toml:"batch_size"`
	RPS       float64  `toml:"rps"`
	CacheTTL  duration `toml:"cache_ttl"`
	// MemoryCacheSize bounds the in-process vector cache used when Redis is
	// not configured.
	MemoryCacheSize int `toml:"memory_cache_size"`
}

// MatchingConfig tunes the semantic matcher.
type MatchingConfig struct {
	SimilarityThreshold float64      `toml:"similarity_threshold"`
	MinPriceSpread      float64      `toml:"min_price_spread"`
	ExtraTeams          []TeamConfig `toml:"extra_teams"`
}

// TeamConfig extends the built-in franchise tables with additional leagues,
// or overrides a built-in entry when the ID matches.
type TeamConfig struct {
	ID       string   `toml:"id"`
	Sport    string   `toml:"sport"`
	City     string   `toml:"city"`
	Nickname string   `toml:"nickname"`
	Abbrev   string   `toml:"abbrev"`
	Aliases  []string `toml:"aliases"`
}

// ScanConfig holds the scan loop and arbitrage parameters.
type ScanConfig struct {
	Interval      duration           `toml:"interval"`
	MinSpread     float64            `toml:"min_spread"` // percentage points
	Sort          string             `toml:"sort"`       // spread, similarity, volume
	Stake         float64            `toml:"stake"`
	MinROI        float64            `toml:"min_roi"` // percent
	Fees          map[string]float64 `toml:"fees"`    // platform -> fee rate
	Sports        []string           `toml:"sports"`
	PerSportLimit int                `toml:"per_sport_limit"`
}

// PostgresConfig holds PostgreSQL connection parameters. An empty DSN with
// an empty host disables history storage entirely.
type PostgresConfig struct {
	Enabled       bool   `toml:"enabled"`
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds Redis connection parameters. Disabled falls back to the
// in-process caches (no cross-process sharing, no WebSocket fan-out from
// other processes).
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// S3Config holds S3-compatible object storage parameters for scan archives.
type S3Config struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Enabled     bool     `toml:"enabled"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
	APIKey      string   `toml:"api_key"`
	RateRPS     float64  `toml:"rate_rps"`
	RateBurst   int      `toml:"rate_burst"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		Kalshi: KalshiConfig{
			BaseURL: "https://api.elections.kalshi.com/trade-api/v2",
		},
		Polymarket: PolymarketConfig{
			GammaHost: "https://gamma-api.polymarket.com",
		},
		Embeddings: EmbeddingsConfig{
			BaseURL:         "https://api.openai.com/v1",
			Model:           "text-embedding-3-small",
			BatchSize:       64,
			RPS:             3,
			CacheTTL:        duration{7 * 24 * time.Hour},
			MemoryCacheSize: 4096,
		},
		Matching: MatchingConfig{
			SimilarityThreshold: 0.65,
			MinPriceSpread:      0.005,
		},
		Scan: ScanConfig{
			Interval:      duration{5 * time.Minute},
			MinSpread:     1.0,
			Sort:          "spread",
			Stake:         1000,
			MinROI:        0.5,
			Fees:          map[string]float64{"polymarket": 0.0, "kalshi": 0.01},
			Sports:        []string{"nfl", "nba", "nhl"},
			PerSportLimit: 25,
		},
		Postgres: PostgresConfig{
			Enabled:       false,
			Host:          "localhost",
			Port:          5432,
			Database:      "prophitline",
			User:          "postgres",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			PoolMinConns:  2,
			RunMigrations: true,
		},
		Redis: RedisConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			PoolSize:   20,
			MaxRetries: 3,
		},
		S3: S3Config{
			Enabled:        false,
			Endpoint:       "http://localhost:9000",
			Region:         "us-east-1",
			Bucket:         "prophitline-archive",
			ForcePathStyle: true,
		},
		Server: ServerConfig{
			Enabled:     true,
			Port:        8000,
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			RateRPS:     10,
			RateBurst:   20,
		},
		Notify: NotifyConfig{
			Events: []string{"opportunity", "error"},
		},
		Mode:     "full",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"scan":   true, // run the scan loop only
	"serve":  true, // run the API server only, reading cached scans
	"full":   true, // both
	"oneoff": true, // single scan, print, exit
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validSorts enumerates the accepted values for Scan.Sort.
var validSorts = map[string]bool{
	"spread":     true,
	"similarity": true,
	"volume":     true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: scan, serve, full, oneoff)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.Kalshi.BaseURL == "" {
		errs = append(errs, "kalshi: base_url must not be empty")
	}
	if c.Polymarket.GammaHost == "" {
		errs = append(errs, "polymarket: gamma_host must not be empty")
	}

	// Embeddings are only required when scanning.
	if c.Mode != "serve" && c.Embeddings.APIKey == "" {
		errs = append(errs, "embeddings: api_key is required for mode "+c.Mode)
	}
	if c.Embeddings.BatchSize < 1 {
		errs = append(errs, "embeddings: batch_size must be >= 1")
	}

	if c.Matching.SimilarityThreshold <= 0 || c.Matching.SimilarityThreshold > 1 {
		errs = append(errs, fmt.Sprintf("matching: similarity_threshold must be in (0, 1], got %g", c.Matching.SimilarityThreshold))
	}
	if c.Matching.MinPriceSpread < 0 {
		errs = append(errs, "matching: min_price_spread must be >= 0")
	}
	for i, t := range c.Matching.ExtraTeams {
		if t.ID == "" || t.Sport == "" || t.Nickname == "" {
			errs = append(errs, fmt.Sprintf("matching: extra_teams[%d] needs id, sport, and nickname", i))
		}
	}

	if c.Scan.Interval.Duration < 30*time.Second {
		errs = append(errs, "scan: interval must be at least 30s")
	}
	if c.Scan.Stake <= 0 {
		errs = append(errs, "scan: stake must be > 0")
	}
	if !validSorts[c.Scan.Sort] {
		errs = append(errs, fmt.Sprintf("scan: unknown sort %q (valid: spread, similarity, volume)", c.Scan.Sort))
	}
	for platform, fee := range c.Scan.Fees {
		if fee < 0 || fee >= 1 {
			errs = append(errs, fmt.Sprintf("scan: fee for %s must be in [0, 1), got %g", platform, fee))
		}
	}

	if c.Postgres.Enabled {
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			if c.Postgres.Host == "" {
				errs = append(errs, "postgres: host must not be empty (or set postgres.dsn)")
			}
			if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
				errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
			}
			if c.Postgres.Database == "" {
				errs = append(errs, "postgres: database must not be empty")
			}
		}
		if c.Postgres.PoolMaxConns < 1 {
			errs = append(errs, "postgres: pool_max_conns must be >= 1")
		}
		if c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
			errs = append(errs, "postgres: pool_min_conns must not exceed pool_max_conns")
		}
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	}

	if c.S3.Enabled {
		if c.S3.Endpoint == "" {
			errs = append(errs, "s3: endpoint must not be empty")
		}
		if c.S3.Bucket == "" {
			errs = append(errs, "s3: bucket must not be empty")
		}
	}

	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
