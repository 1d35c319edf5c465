package cron

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper is a cache that can drop its expired entries.
type Sweeper interface {
	Sweep() int
}

// CacheJobs evicts expired entries from the in-process caches so that
// subjects and org units that are never read again do not pin memory.
type CacheJobs struct {
	caches map[string]Sweeper
	logger *slog.Logger
}

func NewCacheJobs(logger *slog.Logger) *CacheJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheJobs{
		caches: make(map[string]Sweeper),
		logger: logger,
	}
}

// Track adds a cache to the sweep under name.
func (j *CacheJobs) Track(name string, cache Sweeper) *CacheJobs {
	j.caches[name] = cache
	return j
}

func (j *CacheJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("sweep_expired_cache_entries", interval, j.SweepExpired)
}

func (j *CacheJobs) SweepExpired(ctx context.Context) error {
	for name, cache := range j.caches {
		if err := ctx.Err(); err != nil {
			return err
		}
		if removed := cache.Sweep(); removed > 0 {
			j.logger.Debug("Cron: swept cache", "cache", name, "removed", removed)
		}
	}
	return nil
}
