package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Memoizer pairs a Cache with call collapsing so identical in-flight
// computations run once.
type Memoizer struct {
	cache Cache
	group singleflight.Group
}

func NewMemoizer(c Cache) *Memoizer {
	return &Memoizer{cache: c}
}

func (m *Memoizer) Cache() Cache {
	return m.cache
}

// ComputeFunc produces a value and reports whether it may be stored.
type ComputeFunc[T any] func(ctx context.Context) (T, bool)

// GetOrCompute returns the cached value for key, or runs compute and stores the
// result when compute marks it cacheable. hit reports a cache hit. Cache
// failures are logged and treated as misses.
//
// Collapsed callers share one run, so compute gets a context that keeps the
// first caller's values but not its cancellation. compute must bound its own
// upstream calls.
func GetOrCompute[T any](ctx context.Context, m *Memoizer, key string, ttl time.Duration, compute ComputeFunc[T]) (value T, hit bool) {
	var cached T
	ok, err := m.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}
	if ok {
		return cached, true
	}

	v, _, _ := m.group.Do(key, func() (interface{}, error) {
		shared := context.WithoutCancel(ctx)
		result, store := compute(shared)
		if store {
			if err := m.cache.SetJSON(shared, key, result, ttl); err != nil {
				log.Ctx(shared).Warn().Err(err).Str("key", key).Msg("Cache write failed")
			}
		}
		return result, nil
	})
	return v.(T), false
}
