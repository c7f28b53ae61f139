package cache

import (
	"context"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/suchimauz/booking-availability-resolver/internal/config"
	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
)

// LRUCacheAdapter: кэш недельных расписаний в памяти процесса.
// Запись живет не дольше cfg.Cache.TTL даже без инвалидации.
type LRUCacheAdapter struct {
	cache  *expirable.LRU[string, domain.WeeklySchedule]
	logger out.LoggerPort
}

func NewLRUCacheAdapter(cfg *config.Config, logger out.LoggerPort) *LRUCacheAdapter {
	logger = logger.WithModule("LRUCacheAdapter")

	size := cfg.Cache.Size
	if size <= 0 {
		size = 1
	}

	logger.Info("cache.init", out.LogFields{
		"size": size,
		"ttl":  cfg.Cache.TTL.String(),
	})

	return &LRUCacheAdapter{
		cache:  expirable.NewLRU[string, domain.WeeklySchedule](size, nil, cfg.Cache.TTL),
		logger: logger,
	}
}

func (c *LRUCacheAdapter) GetWeeklySchedule(ctx context.Context, provider domain.ProviderRef) (*domain.WeeklySchedule, bool) {
	schedule, exists := c.cache.Get(provider.Key())
	if !exists {
		c.logger.Debug("cache.get.miss", out.LogFields{
			"provider": provider.Key(),
		})
		return nil, false
	}

	c.logger.Debug("cache.get.hit", out.LogFields{
		"provider": provider.Key(),
		"entries":  len(schedule.Entries),
	})
	return &schedule, true
}

func (c *LRUCacheAdapter) StoreWeeklySchedule(ctx context.Context, provider domain.ProviderRef, schedule domain.WeeklySchedule) {
	c.logger.Debug("cache.store", out.LogFields{
		"provider": provider.Key(),
		"entries":  len(schedule.Entries),
	})

	c.cache.Add(provider.Key(), schedule)
}

func (c *LRUCacheAdapter) InvalidateWeeklySchedule(ctx context.Context, provider domain.ProviderRef) {
	c.cache.Remove(provider.Key())
}

func (c *LRUCacheAdapter) InvalidateAllWeeklySchedules(ctx context.Context) {
	c.cache.Purge()
}
