package availability_service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/json_types"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
)

// tierOutcome: ответ одного уровня. Уровни не смешиваются.
type tierOutcome struct {
	tier    domain.SourceTier
	slots   []domain.BookableSlot
	dropped int
}

// ResolveSlots выбирает источник слотов:
//  1. точный список слотов с бэкенда;
//  2. расписание дня с бэкенда + локальная генерация,
//     если (1) упал или пуст, а день по недельному расписанию рабочий;
//  3. только недельное расписание без занятости, если упал (2).
//
// Фильтр прошедшего времени применяется к ответу любого уровня.
// Ошибка возвращается только при неверном запросе; если не сработал ни один
// уровень, Resolution.Resolved = false.
func (s *AvailabilityService) ResolveSlots(ctx context.Context, req domain.ResolutionRequest) (*domain.Resolution, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resolutionID := uuid.New()
	date := json_types.Date{Date: req.Date}
	logger := s.logger.WithFields(out.LogFields{
		"resolutionId": resolutionID.String(),
		"provider":     req.Provider.Key(),
		"date":         date.String(),
	})
	ctx = out.ContextWithRequestID(ctx, resolutionID.String())
	debug := newResolutionDebug()

	resolution := &domain.Resolution{
		ID:       resolutionID,
		Provider: req.Provider,
		Date:     date,
		Slots:    []domain.BookableSlot{},
	}

	logger.Info("availability.resolve.started", out.LogFields{
		"serviceInstanceId": req.ServiceInstanceID,
		"duration":          req.DurationMinutes,
		"gridStep":          req.GridStepMinutes,
	})

	weekday := domain.WeekdayOf(req.Date)

	weeklyDebug := domain.StartDebug("availability.weekly.load")
	weekly, weeklyDropped, err := s.loadWeeklySchedule(ctx, req.Provider, logger)
	weeklyDebug.Elapse()
	if err != nil {
		weeklyDebug.AddOption("error", err.Error())
		logger.Warn("availability.weekly.unavailable", out.LogFields{
			"error": err.Error(),
		})
	}
	debug.add(weeklyDebug)
	resolution.DroppedRecords += weeklyDropped

	// nil: недельное расписание неизвестно, на него нельзя опираться
	dayIsWorking := weekly == nil || weekly.EntryFor(weekday).IsWorking()

	outcome, ok := s.resolveTiers(ctx, req, weekday, weekly, dayIsWorking, debug, logger)

	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.Info("availability.resolve.cancelled", out.LogFields{
			"error": ctxErr.Error(),
		})
		return nil, ctxErr
	}

	resolution.Debug = debug.snapshot()

	if !ok {
		logger.Error("availability.resolve.failed", out.LogFields{})
		return resolution, nil
	}

	resolution.Resolved = true
	resolution.Tier = outcome.tier
	resolution.DroppedRecords += outcome.dropped
	resolution.Slots = FilterPast(outcome.slots, domain.ClockOf(req.Now), req.IsToday())

	logger.Info("availability.resolve.finished", out.LogFields{
		"tier":    string(resolution.Tier),
		"slots":   len(resolution.Slots),
		"dropped": resolution.DroppedRecords,
	})

	return resolution, nil
}

func (s *AvailabilityService) resolveTiers(
	ctx context.Context,
	req domain.ResolutionRequest,
	weekday domain.Weekday,
	weekly *domain.WeeklySchedule,
	dayIsWorking bool,
	debug *resolutionDebug,
	logger out.LoggerPort,
) (tierOutcome, bool) {
	exactDebug := domain.StartDebug("availability.tier.exact")
	exact, exactErr := s.resolveExact(ctx, req, logger)
	exactDebug.Elapse()
	debug.add(exactDebug)

	if exactErr == nil && len(exact.slots) > 0 {
		return exact, true
	}

	if !dayIsWorking {
		// Пустой точный ответ подтверждается выходным днем
		if exactErr == nil {
			logger.Debug("availability.tier.exact.empty_confirmed", out.LogFields{
				"weekday": weekday.String(),
			})
			return exact, true
		}
		logger.Debug("availability.tier.fallback.day_off", out.LogFields{
			"weekday": weekday.String(),
		})
		return tierOutcome{tier: domain.SourceTierFallback, slots: []domain.BookableSlot{}}, true
	}

	if exactErr == nil {
		logger.Debug("availability.tier.exact.empty", out.LogFields{})
	}

	derivedDebug := domain.StartDebug("availability.tier.derived")
	derived, derivedErr := s.resolveDerived(ctx, req, weekday, logger)
	derivedDebug.Elapse()
	debug.add(derivedDebug)
	if derivedErr == nil {
		return derived, true
	}

	if weekly == nil {
		return tierOutcome{}, false
	}

	fallbackDebug := domain.StartDebug("availability.tier.fallback")
	fallback, fallbackErr := s.resolveFallback(req, weekly.EntryFor(weekday), logger)
	fallbackDebug.Elapse()
	debug.add(fallbackDebug)
	if fallbackErr != nil {
		return tierOutcome{}, false
	}

	return fallback, true
}

func (s *AvailabilityService) resolveExact(ctx context.Context, req domain.ResolutionRequest, logger out.LoggerPort) (tierOutcome, error) {
	entries, err := s.backendPort.GetExactSlots(ctx, req.Provider, req.ServiceInstanceID, req.Date)
	if err != nil {
		logger.Warn("availability.tier.exact.failed", out.LogFields{
			"error": err.Error(),
		})
		return tierOutcome{}, fmt.Errorf("availability.tier.exact.failed: %w", err)
	}

	slots, dropped := exactSlotsFromBackend(entries, logger)
	return tierOutcome{tier: domain.SourceTierExact, slots: slots, dropped: dropped}, nil
}

func (s *AvailabilityService) resolveDerived(ctx context.Context, req domain.ResolutionRequest, weekday domain.Weekday, logger out.LoggerPort) (tierOutcome, error) {
	daySchedule, err := s.backendPort.GetDaySchedule(ctx, req.Provider, req.Date)
	if err != nil {
		logger.Warn("availability.tier.derived.failed", out.LogFields{
			"error": err.Error(),
		})
		return tierOutcome{}, fmt.Errorf("availability.tier.derived.failed: %w", err)
	}
	if daySchedule == nil {
		return tierOutcome{}, fmt.Errorf("availability.tier.derived.failed: %w: empty body", domain.ErrRemoteUnavailable)
	}

	outcome := tierOutcome{tier: domain.SourceTierDerived, slots: []domain.BookableSlot{}}

	// Бэкенд явно сказал, что часов нет: это окончательный ответ
	if daySchedule.WorkingHours == nil {
		logger.Debug("availability.tier.derived.no_working_hours", out.LogFields{})
		return outcome, nil
	}

	windows, droppedWindows := intervalsFromBackend([]out.BackendTimeRange{*daySchedule.WorkingHours}, "workingHours", logger)
	booked, droppedBooked := intervalsFromBackend(daySchedule.BookedSlots, "booked", logger)
	breaks, droppedBreaks := intervalsFromBackend(daySchedule.BreakTimes, "break", logger)
	outcome.dropped = droppedWindows + droppedBooked + droppedBreaks

	if s.busyPort != nil {
		external, droppedExternal := s.externalBusy(ctx, req, logger)
		breaks = append(breaks, external...)
		outcome.dropped += droppedExternal
	}

	entry := domain.NewWeeklyScheduleEntry(weekday, true, windows)
	snapshot := ResolveDaySnapshot(entry, booked, breaks, req.Date)

	slots, err := GenerateSlots(domain.SlotGenerationRequest{
		Snapshot:        snapshot,
		DurationMinutes: req.DurationMinutes,
		GridStepMinutes: req.GridStepMinutes,
	})
	if err != nil {
		return tierOutcome{}, err
	}
	outcome.slots = slots

	return outcome, nil
}

// externalBusy: занятость из внешнего календаря; сбой не мешает разрешению
func (s *AvailabilityService) externalBusy(ctx context.Context, req domain.ResolutionRequest, logger out.LoggerPort) ([]domain.Interval, int) {
	ranges, err := s.busyPort.GetBusyIntervals(ctx, req.Provider, req.Date)
	if err != nil {
		logger.Warn("availability.external_busy.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, 0
	}
	return intervalsFromBackend(ranges, "externalBusy", logger)
}

func (s *AvailabilityService) resolveFallback(req domain.ResolutionRequest, entry domain.WeeklyScheduleEntry, logger out.LoggerPort) (tierOutcome, error) {
	snapshot := ResolveDaySnapshot(entry, nil, nil, req.Date)

	slots, err := GenerateSlots(domain.SlotGenerationRequest{
		Snapshot:        snapshot,
		DurationMinutes: req.DurationMinutes,
		GridStepMinutes: req.GridStepMinutes,
	})
	if err != nil {
		return tierOutcome{}, err
	}

	logger.Warn("availability.tier.fallback.used", out.LogFields{
		"weekday": entry.Weekday.String(),
		"windows": len(snapshot.WorkingWindows),
	})

	return tierOutcome{tier: domain.SourceTierFallback, slots: slots}, nil
}
