package availability_service

import (
	"context"
	"fmt"

	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
)

// loadWeeklySchedule: кэш, затем бэкенд. Ошибка бэкенда не фатальна для
// разрешения слотов, поэтому возвращается отдельно.
func (s *AvailabilityService) loadWeeklySchedule(ctx context.Context, provider domain.ProviderRef, logger out.LoggerPort) (*domain.WeeklySchedule, int, error) {
	if s.cachePort != nil {
		if schedule, exists := s.cachePort.GetWeeklySchedule(ctx, provider); exists {
			logger.Debug("availability.weekly.cache.hit", out.LogFields{})
			return schedule, 0, nil
		}
		logger.Debug("availability.weekly.cache.miss", out.LogFields{})
	}

	days, err := s.backendPort.GetWeeklySchedule(ctx, provider)
	if err != nil {
		return nil, 0, fmt.Errorf("availability.weekly.fetch_failed: %w", err)
	}

	schedule, dropped := weeklyScheduleFromBackend(days, logger)

	if s.cachePort != nil {
		s.cachePort.StoreWeeklySchedule(ctx, provider, schedule)
	}

	return &schedule, dropped, nil
}

// AvailableWeekdays: дни недели, которые можно сразу выключить в выборе даты.
// Это только подсказка интерфейсу: дата выключенного дня все равно разрешится в ноль слотов.
func (s *AvailabilityService) AvailableWeekdays(ctx context.Context, provider domain.ProviderRef) ([]domain.Weekday, error) {
	logger := s.logger.WithFields(out.LogFields{"provider": provider.Key()})

	schedule, _, err := s.loadWeeklySchedule(ctx, provider, logger)
	if err != nil {
		logger.Error("availability.weekdays.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return schedule.SortedAvailableWeekdays(), nil
}
