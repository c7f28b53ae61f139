package availability_service

import (
	"time"

	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
)

// ResolveDaySnapshot собирает снимок дня из записи недельного расписания
// и исключений конкретной даты.
//
// Записи и перерывы могут приходить несортированными и пересекающимися,
// поэтому занятость склеивается в один набор. Выключенный день дает пустые
// рабочие окна независимо от записей.
func ResolveDaySnapshot(entry domain.WeeklyScheduleEntry, booked []domain.Interval, breaks []domain.Interval, date time.Time) *domain.DaySnapshot {
	busy := make([]domain.Interval, 0, len(booked)+len(breaks))
	busy = append(busy, booked...)
	busy = append(busy, breaks...)

	windows := []domain.Interval{}
	if entry.IsAvailable {
		windows = domain.MergeOverlapping(entry.WorkingWindows)
	}

	return &domain.DaySnapshot{
		Date:           date,
		WorkingWindows: windows,
		BusyIntervals:  domain.MergeOverlapping(busy),
	}
}
