package config

import (
	"log/slog"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppEnv       string
	AppURL       string
	Port         string
	ContentPath  string
	SiteConfig   string
	WatchContent bool
	// TrustedProxies may set X-Forwarded-For and X-Real-IP. Empty means
	// the connection's remote address is always the client.
	TrustedProxies []netip.Prefix

	// Database (sqlite or postgres)
	DBDriver     string
	DBConnection string

	// Mailing list
	EmailFrom        string
	ResendAPIKey     string
	ResendAudienceID string
	SubscribeTimeout time.Duration

	// Analytics
	GTMID string

	// Observability (optional)
	SentryDSN string

	// Publishing target (S3-compatible: AWS S3, MinIO, Cloudflare R2, ...)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3Prefix    string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	appEnv := envString("APP_ENV", "development")

	cfg := &Config{
		AppEnv:       appEnv,
		AppURL:       envString("APP_URL", "http://localhost:8090"),
		Port:         envString("PORT", "8090"),
		ContentPath:  envString("CONTENT_PATH", "content"),
		SiteConfig:   envString("SITE_CONFIG", "site.yaml"),
		WatchContent: envBool("WATCH_CONTENT", appEnv == "development"),

		TrustedProxies: envPrefixes("TRUSTED_PROXIES"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/devfolio.db?_pragma=journal_mode(WAL)"),

		// RESEND_* may stay empty in development; subscriptions are then only logged.
		// EMAIL_FROM enables the welcome email.
		EmailFrom:        envString("EMAIL_FROM", ""),
		ResendAPIKey:     envString("RESEND_API_KEY", ""),
		ResendAudienceID: envString("RESEND_AUDIENCE_ID", ""),
		SubscribeTimeout: envDuration("SUBSCRIBE_TIMEOUT", 10*time.Second),

		GTMID: envString("GTM_ID", ""),

		SentryDSN: envString("SENTRY_DSN", ""),

		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
		S3Prefix:    envString("S3_PREFIX", ""),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction stops the process when a production deployment could not
// deliver subscriptions anywhere.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" || cfg.ResendAudienceID == "" {
		slog.Error("production deployment requires RESEND_API_KEY and RESEND_AUDIENCE_ID",
			"hint", "set APP_ENV=development for local testing with log-only subscriptions")
		os.Exit(1)
	}
}

// RequireS3 exits when the publish target is incomplete.
func (c *Config) RequireS3() {
	for key, v := range map[string]string{
		"S3_BUCKET":     c.S3Bucket,
		"S3_ACCESS_KEY": c.S3AccessKey,
		"S3_SECRET_KEY": c.S3SecretKey,
	} {
		if v == "" {
			slog.Error("config required env var missing", "key", key)
			os.Exit(1)
		}
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envPrefixes parses a comma separated list of IPs and CIDRs. A bare IP
// becomes a single-address prefix. Invalid entries are logged and skipped.
func envPrefixes(key string) []netip.Prefix {
	var out []netip.Prefix
	for _, item := range strings.Split(os.Getenv(key), ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				slog.Warn("config invalid prefix, skipping", "key", key, "value", item)
				continue
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			slog.Warn("config invalid ip, skipping", "key", key, "value", item)
			continue
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy with only fields safe to expose to templates.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppEnv: c.AppEnv,
		AppURL: c.AppURL,
		Port:   c.Port,
		GTMID:  c.GTMID,
	}
}
