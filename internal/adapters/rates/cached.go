package rates

import (
	"context"
	"errors"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

// CacheKey is the Redis key holding the last fetched USD to CAD rate.
const CacheKey = "general_ledger:rates:usd_cad"

// CachedRateProvider is a read-through Redis cache in front of another provider.
// The cache is shared by every instance; any cache failure falls through to the
// inner provider.
type CachedRateProvider struct {
	inner  portsrepo.RateProvider
	client redis.Cmdable
	ttl    time.Duration
}

var _ portsrepo.RateProvider = (*CachedRateProvider)(nil)

func NewCachedRateProvider(inner portsrepo.RateProvider, client redis.Cmdable, ttl time.Duration) *CachedRateProvider {
	return &CachedRateProvider{inner: inner, client: client, ttl: ttl}
}

func (p *CachedRateProvider) USDToCAD(ctx context.Context) (decimal.Decimal, error) {
	cached, err := p.client.Get(ctx, CacheKey).Result()
	switch {
	case err == nil:
		if r, parseErr := decimal.NewFromString(cached); parseErr == nil && r.IsPositive() {
			return r, nil
		}
		slog.WarnContext(ctx, "Discarding malformed cached rate", slog.String("value", cached))
	case errors.Is(err, redis.Nil):
		// miss
	default:
		slog.WarnContext(ctx, "Rate cache read failed", slog.String("error", err.Error()))
	}

	r, err := p.inner.USDToCAD(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if err := p.client.Set(ctx, CacheKey, r.String(), p.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "Rate cache write failed", slog.String("error", err.Error()))
	}
	return r, nil
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
