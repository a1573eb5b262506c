package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/dhanyabad11/PrepForge-Backend/internal/cache"
	"github.com/dhanyabad11/PrepForge-Backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProgress struct {
	service.ProgressService
	grace time.Duration
	limit int
	n     int
}

func (f *fakeProgress) ReconcilePending(_ context.Context, grace time.Duration, limit int) (int, error) {
	f.grace, f.limit = grace, limit
	return f.n, nil
}

func jobsConfig(sweep, reconcile string) *config.Config {
	return &config.Config{Jobs: config.Jobs{
		CacheSweepSchedule: sweep,
		ReconcileSchedule:  reconcile,
		ReconcileGrace:     2 * time.Minute,
	}}
}

func TestSweepCacheEvictsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	require.NoError(t, mem.SetJSON(ctx, "short", 1, time.Millisecond))
	require.NoError(t, mem.SetJSON(ctx, "long", 2, time.Hour))
	time.Sleep(5 * time.Millisecond)

	s := NewScheduler(mem, &fakeProgress{}, jobsConfig("", ""))
	assert.Equal(t, 1, s.SweepCache())
	assert.Equal(t, 1, mem.Len())
}

func TestSweepCacheSkipsRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	s := NewScheduler(rc, &fakeProgress{}, jobsConfig("", ""))
	assert.Zero(t, s.SweepCache())
}

func TestReconcileProgressUsesConfiguredGrace(t *testing.T) {
	progress := &fakeProgress{n: 3}
	s := NewScheduler(cache.NewMemoryCache(), progress, jobsConfig("", ""))

	n, err := s.ReconcileProgress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 2*time.Minute, progress.grace)
	assert.Equal(t, reconcileBatch, progress.limit)
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler(cache.NewMemoryCache(), &fakeProgress{}, jobsConfig("@every 1h", "@every 1h"))
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(cache.NewMemoryCache(), &fakeProgress{}, jobsConfig("every now and then", ""))
	assert.Error(t, s.Start())
}
