package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/suchimauz/booking-availability-resolver/internal/config"
	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
)

const redisScanBatch = 100

// RedisCacheAdapter: общий для нескольких инстансов кэш недельных расписаний.
// Сбой Redis равносилен промаху: расписание будет загружено из бэкенда.
type RedisCacheAdapter struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger out.LoggerPort
}

func NewRedisCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*RedisCacheAdapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("cache.redis.init.failed", out.LogFields{
			"addr":  cfg.Cache.RedisAddr,
			"error": err.Error(),
		})
		_ = client.Close()
		return nil, fmt.Errorf("cache.redis.ping: %w", err)
	}

	return NewRedisCacheAdapterFrom(client, cfg.Cache.RedisPrefix, cfg.Cache.TTL, logger), nil
}

func NewRedisCacheAdapterFrom(client redis.UniversalClient, prefix string, ttl time.Duration, logger out.LoggerPort) *RedisCacheAdapter {
	return &RedisCacheAdapter{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.WithModule("RedisCacheAdapter"),
	}
}

func (c *RedisCacheAdapter) key(provider domain.ProviderRef) string {
	return c.prefix + provider.Key()
}

func (c *RedisCacheAdapter) GetWeeklySchedule(ctx context.Context, provider domain.ProviderRef) (*domain.WeeklySchedule, bool) {
	payload, err := c.client.Get(ctx, c.key(provider)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("cache.get.miss", out.LogFields{
			"provider": provider.Key(),
		})
		return nil, false
	}
	if err != nil {
		c.logger.Warn("cache.get.failed", out.LogFields{
			"provider": provider.Key(),
			"error":    err.Error(),
		})
		return nil, false
	}

	var schedule domain.WeeklySchedule
	if err := json.Unmarshal(payload, &schedule); err != nil {
		c.logger.Warn("cache.get.decode_failed", out.LogFields{
			"provider": provider.Key(),
			"error":    err.Error(),
		})
		return nil, false
	}

	c.logger.Debug("cache.get.hit", out.LogFields{
		"provider": provider.Key(),
		"entries":  len(schedule.Entries),
	})
	return &schedule, true
}

func (c *RedisCacheAdapter) StoreWeeklySchedule(ctx context.Context, provider domain.ProviderRef, schedule domain.WeeklySchedule) {
	payload, err := json.Marshal(schedule)
	if err != nil {
		c.logger.Error("cache.store.encode_failed", out.LogFields{
			"provider": provider.Key(),
			"error":    err.Error(),
		})
		return
	}

	if err := c.client.Set(ctx, c.key(provider), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("cache.store.failed", out.LogFields{
			"provider": provider.Key(),
			"error":    err.Error(),
		})
	}
}

func (c *RedisCacheAdapter) InvalidateWeeklySchedule(ctx context.Context, provider domain.ProviderRef) {
	if err := c.client.Del(ctx, c.key(provider)).Err(); err != nil {
		c.logger.Warn("cache.invalidate.failed", out.LogFields{
			"provider": provider.Key(),
			"error":    err.Error(),
		})
	}
}

// InvalidateAllWeeklySchedules удаляет только ключи с префиксом кэша
func (c *RedisCacheAdapter) InvalidateAllWeeklySchedules(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", redisScanBatch).Iterator()

	keys := make([]string, 0, redisScanBatch)
	removed := 0
	flush := func() {
		if len(keys) == 0 {
			return
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("cache.purge.failed", out.LogFields{
				"error": err.Error(),
			})
		} else {
			removed += len(keys)
		}
		keys = keys[:0]
	}

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= redisScanBatch {
			flush()
		}
	}
	flush()

	if err := iter.Err(); err != nil {
		c.logger.Warn("cache.purge.failed", out.LogFields{
			"error": err.Error(),
		})
	}

	c.logger.Info("cache.purged", out.LogFields{
		"removed": removed,
	})
}

func (c *RedisCacheAdapter) Close() error {
	return c.client.Close()
}
