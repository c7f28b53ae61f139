package availability_service

import (
	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
)

// Перевод ответов бэкенда в домен. Битая запись логируется и отбрасывается,
// остальные данные используются.

// weeklyScheduleFromBackend: единственное место, где календарный номер дня
// (0 = воскресенье) превращается в domain.Weekday
func weeklyScheduleFromBackend(days []out.BackendWeeklyDay, logger out.LoggerPort) (domain.WeeklySchedule, int) {
	dropped := 0
	entries := make([]domain.WeeklyScheduleEntry, 0, len(days))

	for _, day := range days {
		weekday, err := domain.FromCalendarConvention(day.DayOfWeek)
		if err != nil {
			logger.Warn("availability.weekly.day.dropped", out.LogFields{
				"dayOfWeek": day.DayOfWeek,
				"error":     err.Error(),
			})
			dropped++
			continue
		}

		windows := make([]domain.Interval, 0, len(day.TimeSlots))
		for _, slot := range day.TimeSlots {
			window, err := domain.ParseInterval(slot.StartTime, slot.EndTime)
			if err != nil {
				logger.Warn("availability.weekly.window.dropped", out.LogFields{
					"weekday": weekday.String(),
					"start":   slot.StartTime,
					"end":     slot.EndTime,
					"error":   err.Error(),
				})
				dropped++
				continue
			}
			windows = append(windows, window)
		}

		entries = append(entries, domain.NewWeeklyScheduleEntry(weekday, day.IsAvailable, windows))
	}

	return domain.NewWeeklySchedule(entries), dropped
}

func intervalsFromBackend(ranges []out.BackendTimeRange, kind string, logger out.LoggerPort) ([]domain.Interval, int) {
	dropped := 0
	intervals := make([]domain.Interval, 0, len(ranges))

	for _, r := range ranges {
		interval, err := domain.ParseInterval(r.Start, r.End)
		if err != nil {
			logger.Warn("availability.interval.dropped", out.LogFields{
				"kind":  kind,
				"start": r.Start,
				"end":   r.End,
				"error": err.Error(),
			})
			dropped++
			continue
		}
		intervals = append(intervals, interval)
	}

	return intervals, dropped
}

// exactSlotsFromBackend берет только доступные записи, упорядочивает и убирает дубли
func exactSlotsFromBackend(entries []out.BackendSlotEntry, logger out.LoggerPort) ([]domain.BookableSlot, int) {
	dropped := 0
	slots := make([]domain.BookableSlot, 0, len(entries))

	for _, entry := range entries {
		if !entry.Available {
			continue
		}
		slot, err := domain.ParseTimeOfDay(entry.Time)
		if err != nil {
			logger.Warn("availability.exact.slot.dropped", out.LogFields{
				"time":  entry.Time,
				"error": err.Error(),
			})
			dropped++
			continue
		}
		slots = append(slots, slot)
	}

	return sortUniqueSlots(slots), dropped
}
