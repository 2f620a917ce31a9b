package rates

import (
	"context"
	"log/slog"

	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/platform/config"
)

// NewFromConfig builds the rate provider selected by RATE_SOURCE, wrapped in the
// Redis cache when REDIS_ADDR is set. The returned func releases the Redis
// client. An unreachable Redis is logged and skipped.
func NewFromConfig(ctx context.Context, cfg *config.Config) (portsrepo.RateProvider, func()) {
	var provider portsrepo.RateProvider
	switch cfg.RateSource {
	case config.RateSourceFixed:
		provider = NewFixedRateProvider(cfg.FixedUSDCADRate)
	default:
		provider = NewTreasuryRateProvider(cfg.TreasuryURL, cfg.ConversionTimeout, cfg.TreasuryMaxRPS)
	}
	slog.InfoContext(ctx, "Rate provider configured", slog.String("source", cfg.RateSource))

	if cfg.RedisAddr == "" {
		return provider, func() {}
	}
	client, err := NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.WarnContext(ctx, "Redis unavailable, rate cache disabled",
			slog.String("addr", cfg.RedisAddr),
			slog.String("error", err.Error()))
		return provider, func() {}
	}
	slog.InfoContext(ctx, "Rate cache enabled", slog.String("addr", cfg.RedisAddr), slog.Duration("ttl", cfg.RateCacheTTL))
	return NewCachedRateProvider(provider, client, cfg.RateCacheTTL), func() {
		if err := client.Close(); err != nil {
			slog.Warn("Error closing Redis client", slog.String("error", err.Error()))
		}
	}
}
