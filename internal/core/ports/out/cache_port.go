package out

import (
	"context"

	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
)

// WeeklyScheduleCachePort: кэш недельных расписаний.
// Запись живет до истечения TTL или до явной инвалидации.
type WeeklyScheduleCachePort interface {
	GetWeeklySchedule(ctx context.Context, provider domain.ProviderRef) (*domain.WeeklySchedule, bool)
	StoreWeeklySchedule(ctx context.Context, provider domain.ProviderRef, schedule domain.WeeklySchedule)
	InvalidateWeeklySchedule(ctx context.Context, provider domain.ProviderRef)
	InvalidateAllWeeklySchedules(ctx context.Context)
}
