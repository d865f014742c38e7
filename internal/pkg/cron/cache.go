package cron

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper drops expired entries from an in-process cache.
type Sweeper interface {
	Sweep() int
}

type CacheJobs struct {
	userCache Sweeper
	interval  time.Duration
}

func NewCacheJobs(userCache Sweeper, interval time.Duration) *CacheJobs {
	return &CacheJobs{
		userCache: userCache,
		interval:  interval,
	}
}

func (j *CacheJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "sweep_user_cache",
		Interval: j.interval,
		Fn:       j.SweepUserCache,
	})
}

// SweepUserCache reclaims memory held by expired user entries. Expired
// entries are never served, so this only bounds memory.
func (j *CacheJobs) SweepUserCache(ctx context.Context) error {
	if removed := j.userCache.Sweep(); removed > 0 {
		slog.Info("user cache swept", "removed", removed)
	}
	return nil
}
