package config

// RedactedConfig returns a shallow copy of cfg with sensitive fields replaced
// by the redaction placeholder "***". Use this when logging or printing the
// active configuration so secrets are never accidentally exposed.
func RedactedConfig(cfg *Config) Config {
	out := *cfg // shallow copy of the top-level struct

	// Embeddings
	out.Embeddings = cfg.Embeddings
	redact(&out.Embeddings.APIKey)

	// Postgres
	out.Postgres = cfg.Postgres
	redact(&out.Postgres.DSN)
	redact(&out.Postgres.Password)

	// Redis
	out.Redis = cfg.Redis
	redact(&out.Redis.Password)

	// S3
	out.S3 = cfg.S3
	redact(&out.S3.AccessKey)
	redact(&out.S3.SecretKey)

	// Server
	out.Server = cfg.Server
	redact(&out.Server.APIKey)

	// Notify
	out.Notify = cfg.Notify
	redact(&out.Notify.TelegramToken)
	redact(&out.Notify.DiscordWebhookURL)

	// Copy slices so callers cannot mutate the original through the redacted
	// copy.
	if cfg.Notify.Events != nil {
		out.Notify.Events = make([]string, len(cfg.Notify.Events))
		copy(out.Notify.Events, cfg.Notify.Events)
	}
	if cfg.Server.CORSOrigins != nil {
		out.Server.CORSOrigins = make([]string, len(cfg.Server.CORSOrigins))
		copy(out.Server.CORSOrigins, cfg.Server.CORSOrigins)
	}
	if cfg.Scan.Sports != nil {
		out.Scan.Sports = make([]string, len(cfg.Scan.Sports))
		copy(out.Scan.Sports, cfg.Scan.Sports)
	}

	// Copy maps so mutations to the redacted copy do not affect the original.
	if cfg.Scan.Fees != nil {
		out.Scan.Fees = make(map[string]float64, len(cfg.Scan.Fees))
		for k, v := range cfg.Scan.Fees {
			out.Scan.Fees[k] = v
		}
	}
	if cfg.Kalshi.Series != nil {
		out.Kalshi.Series = make(map[string]string, len(cfg.Kalshi.Series))
		for k, v := range cfg.Kalshi.Series {
			out.Kalshi.Series[k] = v
		}
	}

	return out
}

const redacted = "***"

// redact replaces a non-empty string with the redacted placeholder.
func redact(s *string) {
	if *s != "" {
		*s = redacted
	}
}
