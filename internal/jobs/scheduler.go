// Package jobs runs the periodic maintenance work owned by the application
// lifecycle: sweeping expired cache entries and reconciling progress updates
// that never landed.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/dhanyabad11/PrepForge-Backend/internal/cache"
	"github.com/dhanyabad11/PrepForge-Backend/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// reconcileBatch bounds how many pending answers one run folds in.
const reconcileBatch = 100

type Scheduler struct {
	cache    cache.Cache
	progress service.ProgressService
	cfg      config.Jobs
	cron     *cron.Cron
}

func NewScheduler(c cache.Cache, progress service.ProgressService, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cache:    c,
		progress: progress,
		cfg:      cfg.Jobs,
		cron:     cron.New(),
	}
}

// Start schedules both jobs. An empty schedule disables its job.
func (s *Scheduler) Start() error {
	if s.cfg.CacheSweepSchedule != "" {
		if _, err := s.cron.AddFunc(s.cfg.CacheSweepSchedule, func() { s.SweepCache() }); err != nil {
			return fmt.Errorf("failed to schedule cache sweep: %w", err)
		}
	}
	if s.cfg.ReconcileSchedule != "" {
		if _, err := s.cron.AddFunc(s.cfg.ReconcileSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := s.ReconcileProgress(ctx); err != nil {
				log.Error().Err(err).Msg("Progress reconciliation failed")
			}
		}); err != nil {
			return fmt.Errorf("failed to schedule progress reconciliation: %w", err)
		}
	}
	s.cron.Start()
	log.Info().
		Str("cache_sweep", s.cfg.CacheSweepSchedule).
		Str("reconcile", s.cfg.ReconcileSchedule).
		Msg("Background jobs started")
	return nil
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		log.Info().Msg("Background jobs stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SweepCache evicts expired entries when the cache is process-local. Redis
// expires keys itself.
func (s *Scheduler) SweepCache() int {
	sweeper, ok := s.cache.(cache.Sweeper)
	if !ok {
		return 0
	}
	n := sweeper.Sweep()
	if n > 0 {
		log.Debug().Int("evicted", n).Msg("Cache swept")
	}
	return n
}

// ReconcileProgress folds answers whose progress update was lost into their
// users' progress.
func (s *Scheduler) ReconcileProgress(ctx context.Context) (int, error) {
	n, err := s.progress.ReconcilePending(ctx, s.cfg.ReconcileGrace, reconcileBatch)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info().Int("answers", n).Msg("Reconciled pending progress updates")
	}
	return n, nil
}

// StartJobs ties the scheduler to the fx lifecycle.
func StartJobs(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
