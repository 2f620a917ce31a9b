package config

import (
	"errors"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Rate sources accepted by RATE_SOURCE.
const (
	RateSourceTreasury = "treasury"
	RateSourceFixed    = "fixed"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       string
	MigrationsPath string
	RunMigrations  bool
	RequestTimeout time.Duration

	CORSAllowedOrigins []string
	RateLimit          string // ulule format, e.g. "100-M"

	// Currency conversion
	RateSource        string
	TreasuryURL       string
	ConversionTimeout time.Duration
	TreasuryMaxRPS    float64
	FixedUSDCADRate   decimal.Decimal

	// Shared rate cache; disabled when RedisAddr is empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RateCacheTTL  time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("REQUEST_TIMEOUT", "15s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("RATE_SOURCE", RateSourceTreasury)
	viper.SetDefault("TREASURY_URL", "")
	viper.SetDefault("CONVERSION_TIMEOUT", "5s")
	viper.SetDefault("TREASURY_MAX_RPS", 5)
	viper.SetDefault("FIXED_USD_CAD_RATE", "1.35")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_CACHE_TTL", "1h")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  viper.GetBool("ENABLE_DB_CHECK"),
		LogLevel:       strings.ToLower(viper.GetString("LOG_LEVEL")),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		RunMigrations:  viper.GetBool("RUN_MIGRATIONS"),
		RateLimit:      viper.GetString("RATE_LIMIT"),
		RateSource:     strings.ToLower(viper.GetString("RATE_SOURCE")),
		TreasuryURL:    viper.GetString("TREASURY_URL"),
		TreasuryMaxRPS: viper.GetFloat64("TREASURY_MAX_RPS"),
		RedisAddr:      viper.GetString("REDIS_ADDR"),
		RedisPassword:  viper.GetString("REDIS_PASSWORD"),
		RedisDB:        viper.GetInt("REDIS_DB"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.RequestTimeout = durationOrDefault("REQUEST_TIMEOUT", 15*time.Second)
	cfg.ConversionTimeout = durationOrDefault("CONVERSION_TIMEOUT", 5*time.Second)
	cfg.RateCacheTTL = durationOrDefault("RATE_CACHE_TTL", time.Hour)

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	fixedRateStr := viper.GetString("FIXED_USD_CAD_RATE")
	fixedRate, err := decimal.NewFromString(fixedRateStr)
	if err != nil || !fixedRate.IsPositive() {
		fixedRate = decimal.RequireFromString("1.35")
		log.Printf("Warning: Invalid value for FIXED_USD_CAD_RATE ('%s'). Defaulting to %s.\n", fixedRateStr, fixedRate)
	}
	cfg.FixedUSDCADRate = fixedRate

	switch cfg.RateSource {
	case RateSourceTreasury, RateSourceFixed:
	default:
		log.Printf("Warning: Unknown RATE_SOURCE ('%s'). Defaulting to %s.\n", cfg.RateSource, RateSourceTreasury)
		cfg.RateSource = RateSourceTreasury
	}

	return cfg, nil
}

// Validate reports configuration the HTTP server cannot start without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("PGSQL_URL must be set")
	}
	return nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

// SlogLevel maps LOG_LEVEL onto a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
