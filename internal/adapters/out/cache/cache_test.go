package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/booking-availability-resolver/internal/adapters/out/logger"
	"github.com/suchimauz/booking-availability-resolver/internal/config"
	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
	"go.uber.org/zap"
)

var (
	alice = domain.ProviderRef{Type: domain.ProviderTypeProfessional, ID: "alice"}
	room  = domain.ProviderRef{Type: domain.ProviderTypePlace, ID: "room-1"}
)

func testLogger() out.LoggerPort {
	return logger.NewZapLoggerFrom(zap.NewNop())
}

func testSchedule(t *testing.T) domain.WeeklySchedule {
	t.Helper()
	morning, err := domain.ParseInterval("09:00", "13:00")
	require.NoError(t, err)
	evening, err := domain.ParseInterval("20:00", "24:00")
	require.NoError(t, err)

	return domain.NewWeeklySchedule([]domain.WeeklyScheduleEntry{
		domain.NewWeeklyScheduleEntry(domain.Monday, true, []domain.Interval{morning, evening}),
		domain.NewWeeklyScheduleEntry(domain.Sunday, false, nil),
	})
}

func lruConfig(size int, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Cache.Size = size
	cfg.Cache.TTL = ttl
	return cfg
}

func TestLRUCacheAdapter_StoreGetInvalidate(t *testing.T) {
	ctx := context.Background()
	cache := NewLRUCacheAdapter(lruConfig(10, time.Minute), testLogger())
	schedule := testSchedule(t)

	_, exists := cache.GetWeeklySchedule(ctx, alice)
	assert.False(t, exists)

	cache.StoreWeeklySchedule(ctx, alice, schedule)
	cache.StoreWeeklySchedule(ctx, room, schedule)

	cached, exists := cache.GetWeeklySchedule(ctx, alice)
	require.True(t, exists)
	assert.Equal(t, schedule, *cached)

	cache.InvalidateWeeklySchedule(ctx, alice)
	_, exists = cache.GetWeeklySchedule(ctx, alice)
	assert.False(t, exists)
	_, exists = cache.GetWeeklySchedule(ctx, room)
	assert.True(t, exists)

	cache.InvalidateAllWeeklySchedules(ctx)
	_, exists = cache.GetWeeklySchedule(ctx, room)
	assert.False(t, exists)
}

func TestLRUCacheAdapter_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	cache := NewLRUCacheAdapter(lruConfig(1, time.Minute), testLogger())

	cache.StoreWeeklySchedule(ctx, alice, testSchedule(t))
	cache.StoreWeeklySchedule(ctx, room, testSchedule(t))

	_, exists := cache.GetWeeklySchedule(ctx, alice)
	assert.False(t, exists)
	_, exists = cache.GetWeeklySchedule(ctx, room)
	assert.True(t, exists)
}

func TestLRUCacheAdapter_Expires(t *testing.T) {
	ctx := context.Background()
	cache := NewLRUCacheAdapter(lruConfig(10, 20*time.Millisecond), testLogger())

	cache.StoreWeeklySchedule(ctx, alice, testSchedule(t))

	assert.Eventually(t, func() bool {
		_, exists := cache.GetWeeklySchedule(ctx, alice)
		return !exists
	}, time.Second, 10*time.Millisecond)
}

// Нужен живой Redis: CACHE_TEST_REDIS_ADDR=localhost:6379
func TestRedisCacheAdapter(t *testing.T) {
	addr := os.Getenv("CACHE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CACHE_TEST_REDIS_ADDR is not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(ctx).Err())

	prefix := "availability:test:" + time.Now().Format("150405.000000") + ":"
	cache := NewRedisCacheAdapterFrom(client, prefix, time.Minute, testLogger())
	t.Cleanup(func() {
		cache.InvalidateAllWeeklySchedules(context.Background())
		_ = cache.Close()
	})

	schedule := testSchedule(t)
	cache.StoreWeeklySchedule(ctx, alice, schedule)
	cache.StoreWeeklySchedule(ctx, room, schedule)

	cached, exists := cache.GetWeeklySchedule(ctx, alice)
	require.True(t, exists)
	assert.Equal(t, schedule, *cached)

	ttl, err := client.TTL(ctx, prefix+alice.Key()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	cache.InvalidateWeeklySchedule(ctx, alice)
	_, exists = cache.GetWeeklySchedule(ctx, alice)
	assert.False(t, exists)

	cache.InvalidateAllWeeklySchedules(ctx)
	_, exists = cache.GetWeeklySchedule(ctx, room)
	assert.False(t, exists)
}
