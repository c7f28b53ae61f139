package availability_service

import (
	"context"
	"fmt"

	"github.com/suchimauz/booking-availability-resolver/internal/config"
	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
)

// AvailabilityService не хранит состояния между запросами, кроме явного
// кэша недельных расписаний с собственной инвалидацией
type AvailabilityService struct {
	backendPort out.BookingBackendPort
	busyPort    out.ExternalBusyPort
	cachePort   out.WeeklyScheduleCachePort
	logger      out.LoggerPort
	cfg         *config.Config
}

// busyPort и cachePort могут быть nil
func NewAvailabilityService(
	backendPort out.BookingBackendPort,
	busyPort out.ExternalBusyPort,
	cachePort out.WeeklyScheduleCachePort,
	cfg *config.Config,
	logger out.LoggerPort,
) *AvailabilityService {
	return &AvailabilityService{
		backendPort: backendPort,
		busyPort:    busyPort,
		cachePort:   cachePort,
		logger:      logger.WithModule("AvailabilityService"),
		cfg:         cfg,
	}
}

// validateRequest: ошибки вызывающего, падаем сразу и громко
func validateRequest(req domain.ResolutionRequest) error {
	if err := validateSlotParams(req.DurationMinutes, req.GridStepMinutes); err != nil {
		return err
	}
	if req.Provider.Type == "" || req.Provider.ID == "" {
		return fmt.Errorf("%w: %q", domain.ErrInvalidProvider, req.Provider.Key())
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: zero date", domain.ErrInvalidDate)
	}
	if req.Now.IsZero() {
		return fmt.Errorf("%w: zero now", domain.ErrInvalidDate)
	}
	return nil
}

func (s *AvailabilityService) InvalidateWeeklySchedule(ctx context.Context, provider domain.ProviderRef) error {
	if s.cachePort == nil {
		return nil
	}
	s.cachePort.InvalidateWeeklySchedule(ctx, provider)
	s.logger.Info("availability.weekly.cache.invalidated", out.LogFields{
		"provider": provider.Key(),
	})
	return nil
}

func (s *AvailabilityService) InvalidateAllWeeklySchedules(ctx context.Context) error {
	if s.cachePort == nil {
		return nil
	}
	s.cachePort.InvalidateAllWeeklySchedules(ctx)
	s.logger.Info("availability.weekly.cache.purged", out.LogFields{})
	return nil
}
