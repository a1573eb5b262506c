package cache

import (
	"context"
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Sweeper is implemented by caches that need expired entries removed by an owner.
type Sweeper interface {
	Sweep() int
}

// NewCache returns a Redis-backed cache when REDIS_ADDR is configured and the
// in-process cache otherwise.
func NewCache(cfg *config.Config) Cache {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("Using in-memory cache")
		return NewMemoryCache()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	log.Info().Str("addr", cfg.Redis.Addr).Msg("Using redis cache")
	return NewRedisCache(rdb)
}
