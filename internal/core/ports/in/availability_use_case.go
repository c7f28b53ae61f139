package in

import (
	"context"

	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
)

type AvailabilityUseCase interface {
	// Разрешение свободных слотов на одну дату
	ResolveSlots(ctx context.Context, req domain.ResolutionRequest) (*domain.Resolution, error)

	// Разрешение на несколько дат, каждая дата независима
	ResolveBatchSlots(ctx context.Context, reqs []domain.ResolutionRequest) ([]*domain.Resolution, error)

	// Дни недели, в которые провайдер работает
	AvailableWeekdays(ctx context.Context, provider domain.ProviderRef) ([]domain.Weekday, error)

	// Инвалидация кэша недельных расписаний
	InvalidateWeeklySchedule(ctx context.Context, provider domain.ProviderRef) error
	InvalidateAllWeeklySchedules(ctx context.Context) error
}
