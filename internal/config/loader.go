package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies PROPHIT_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known PROPHIT_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Runtime ──
	setStr(&cfg.Mode, "PROPHIT_MODE")
	setStr(&cfg.LogLevel, "PROPHIT_LOG_LEVEL")

	// ── Market sources ──
	setStr(&cfg.Kalshi.BaseURL, "PROPHIT_KALSHI_BASE_URL")
	setStr(&cfg.Polymarket.GammaHost, "PROPHIT_POLYMARKET_GAMMA_HOST")

	// ── Embeddings ──
	setStr(&cfg.Embeddings.BaseURL, "PROPHIT_EMBED_BASE_URL")
	setStr(&cfg.Embeddings.APIKey, "PROPHIT_EMBED_API_KEY")
	setStr(&cfg.Embeddings.Model, "PROPHIT_EMBED_MODEL")
	setInt(&cfg.Embeddings.BatchSize, "PROPHIT_EMBED_BATCH_SIZE")
	setFloat64(&cfg.Embeddings.RPS, "PROPHIT_EMBED_RPS")
	setDuration(&cfg.Embeddings.CacheTTL, "PROPHIT_EMBED_CACHE_TTL")
	setInt(&cfg.Embeddings.MemoryCacheSize, "PROPHIT_EMBED_MEMORY_CACHE_SIZE")

	// ── Matching ──
	setFloat64(&cfg.Matching.SimilarityThreshold, "PROPHIT_SIMILARITY_THRESHOLD")
	setFloat64(&cfg.Matching.MinPriceSpread, "PROPHIT_MIN_PRICE_SPREAD")

	// ── Scan ──
	setDuration(&cfg.Scan.Interval, "PROPHIT_SCAN_INTERVAL")
	setFloat64(&cfg.Scan.MinSpread, "PROPHIT_SCAN_MIN_SPREAD")
	setStr(&cfg.Scan.Sort, "PROPHIT_SCAN_SORT")
	setFloat64(&cfg.Scan.Stake, "PROPHIT_SCAN_STAKE")
	setFloat64(&cfg.Scan.MinROI, "PROPHIT_SCAN_MIN_ROI")
	setStringSlice(&cfg.Scan.Sports, "PROPHIT_SCAN_SPORTS")
	setInt(&cfg.Scan.PerSportLimit, "PROPHIT_SCAN_PER_SPORT_LIMIT")

	// ── Postgres ──
	setBool(&cfg.Postgres.Enabled, "PROPHIT_POSTGRES_ENABLED")
	setStr(&cfg.Postgres.DSN, "PROPHIT_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "PROPHIT_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "PROPHIT_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "PROPHIT_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "PROPHIT_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "PROPHIT_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "PROPHIT_POSTGRES_SSL_MODE")
	setBool(&cfg.Postgres.RunMigrations, "PROPHIT_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "PROPHIT_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "PROPHIT_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "PROPHIT_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "PROPHIT_REDIS_DB")
	setBool(&cfg.Redis.TLSEnabled, "PROPHIT_REDIS_TLS_ENABLED")

	// ── S3 ──
	setBool(&cfg.S3.Enabled, "PROPHIT_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "PROPHIT_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "PROPHIT_S3_REGION")
	setStr(&cfg.S3.Bucket, "PROPHIT_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "PROPHIT_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "PROPHIT_S3_SECRET_KEY")

	// ── Server ──
	setBool(&cfg.Server.Enabled, "PROPHIT_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "PROPHIT_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "PROPHIT_SERVER_CORS_ORIGINS")
	setStr(&cfg.Server.APIKey, "PROPHIT_SERVER_API_KEY")
	setFloat64(&cfg.Server.RateRPS, "PROPHIT_SERVER_RATE_RPS")
	setInt(&cfg.Server.RateBurst, "PROPHIT_SERVER_RATE_BURST")

	// ── Notifications ──
	setStr(&cfg.Notify.TelegramToken, "PROPHIT_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "PROPHIT_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "PROPHIT_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "PROPHIT_NOTIFY_EVENTS")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			*dst = out
		}
	}
}
