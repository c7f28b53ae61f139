package availability_service

import (
	"context"
	"sync"
	"time"

	"github.com/suchimauz/booking-availability-resolver/internal/config"
	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields)               {}
func (nopLogger) Info(string, out.LogFields)                {}
func (nopLogger) Warn(string, out.LogFields)                {}
func (nopLogger) Error(string, out.LogFields)               {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

type fakeBackend struct {
	mu sync.Mutex

	exact     []out.BackendSlotEntry
	exactErr  error
	day       *out.BackendDaySchedule
	dayErr    error
	weekly    []out.BackendWeeklyDay
	weeklyErr error

	exactCalls  int
	dayCalls    int
	weeklyCalls int
	requestIDs  []string
}

func (f *fakeBackend) GetExactSlots(ctx context.Context, provider domain.ProviderRef, serviceInstanceID string, date time.Time) ([]out.BackendSlotEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exactCalls++
	if requestID, ok := out.RequestIDFromContext(ctx); ok {
		f.requestIDs = append(f.requestIDs, requestID)
	}
	return f.exact, f.exactErr
}

func (f *fakeBackend) GetDaySchedule(ctx context.Context, provider domain.ProviderRef, date time.Time) (*out.BackendDaySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dayCalls++
	return f.day, f.dayErr
}

func (f *fakeBackend) GetWeeklySchedule(ctx context.Context, provider domain.ProviderRef) ([]out.BackendWeeklyDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.weeklyCalls++
	return f.weekly, f.weeklyErr
}

type fakeBusy struct {
	ranges []out.BackendTimeRange
	err    error
}

func (f *fakeBusy) GetBusyIntervals(ctx context.Context, provider domain.ProviderRef, date time.Time) ([]out.BackendTimeRange, error) {
	return f.ranges, f.err
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]domain.WeeklySchedule
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.WeeklySchedule)}
}

func (c *fakeCache) GetWeeklySchedule(ctx context.Context, provider domain.ProviderRef) (*domain.WeeklySchedule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	schedule, ok := c.entries[provider.Key()]
	if !ok {
		return nil, false
	}
	return &schedule, true
}

func (c *fakeCache) StoreWeeklySchedule(ctx context.Context, provider domain.ProviderRef, schedule domain.WeeklySchedule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[provider.Key()] = schedule
}

func (c *fakeCache) InvalidateWeeklySchedule(ctx context.Context, provider domain.ProviderRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, provider.Key())
}

func (c *fakeCache) InvalidateAllWeeklySchedules(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]domain.WeeklySchedule)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Engine.GridStepMinutes = 15
	cfg.Engine.DefaultDurationMinutes = 30
	cfg.Engine.BatchConcurrency = 2
	cfg.Engine.BatchMaxDates = 31
	return cfg
}

func newTestService(backend *fakeBackend, busy out.ExternalBusyPort, cache out.WeeklyScheduleCachePort) *AvailabilityService {
	return NewAvailabilityService(backend, busy, cache, testConfig(), nopLogger{})
}

var testProvider = domain.ProviderRef{Type: domain.ProviderTypeProfessional, ID: "42"}

// Будний день с 09:00 до 12:00, календарное соглашение: 1 = понедельник
func mondayOnlyWeekly() []out.BackendWeeklyDay {
	return []out.BackendWeeklyDay{
		{DayOfWeek: 0, IsAvailable: false},
		{DayOfWeek: 1, IsAvailable: true, TimeSlots: []out.BackendWeeklyTimeSlot{{StartTime: "09:00:00", EndTime: "12:00:00"}}},
	}
}

func request(duration, step int, now time.Time) domain.ResolutionRequest {
	return domain.ResolutionRequest{
		Provider:          testProvider,
		ServiceInstanceID: "svc-1",
		Date:              testDate,
		DurationMinutes:   duration,
		GridStepMinutes:   step,
		Now:               now,
	}
}

// День до целевой даты: фильтр прошедшего времени не срабатывает
var yesterday = testDate.AddDate(0, 0, -1).Add(20 * time.Hour)
