package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	LogLevel       string
	LogFormat      string
	Environment    string
	Version        string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Upstream codex API
	CodexBaseURL       string
	CodexBulkTimeout   time.Duration
	CodexDetailTimeout time.Duration

	// Enrichment engine tuning. Passed explicitly into the engine so tests
	// can override the delays without real-time sleeps.
	EnrichOnDemandTimeout time.Duration
	EnrichCallDelay       time.Duration
	EnrichBatchSize       int
	EnrichBatchPause      time.Duration

	// Raw-material resolver
	ResolverMaxDepth int

	// Refresh scheduler
	RefreshInterval time.Duration

	// Lookup cache
	LookupCacheSize int
	LookupCacheTTL  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "pandabot"),

		CodexBaseURL: getEnv("CODEX_BASE_URL", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	port, err := getIntEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if cfg.CodexBulkTimeout, err = getDurationEnv("CODEX_BULK_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.CodexDetailTimeout, err = getDurationEnv("CODEX_DETAIL_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.EnrichOnDemandTimeout, err = getDurationEnv("ENRICH_ON_DEMAND_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.EnrichCallDelay, err = getDurationEnv("ENRICH_CALL_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.EnrichBatchSize, err = getIntEnv("ENRICH_BATCH_SIZE", 50); err != nil {
		return nil, err
	}
	if cfg.EnrichBatchPause, err = getDurationEnv("ENRICH_BATCH_PAUSE", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.ResolverMaxDepth, err = getIntEnv("RESOLVER_MAX_DEPTH", 5); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getDurationEnv("REFRESH_INTERVAL", 6*time.Hour); err != nil {
		return nil, err
	}
	if cfg.LookupCacheSize, err = getIntEnv("LOOKUP_CACHE_SIZE", 2048); err != nil {
		return nil, err
	}
	if cfg.LookupCacheTTL, err = getDurationEnv("LOOKUP_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return parsed, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return parsed, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
