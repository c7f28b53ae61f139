package availability_service

import (
	"fmt"
	"slices"

	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
)

// GenerateSlots обходит каждое рабочее окно снимка с шагом сетки и отдает
// все начала, для которых [t, t+duration) лежит в окне и не задевает занятость.
//
// Шаг не подстраивается под границы занятости: после записи, закончившейся
// не на сетке, ближайшее свободное начало может быть пропущено.
func GenerateSlots(req domain.SlotGenerationRequest) ([]domain.BookableSlot, error) {
	if err := validateSlotParams(req.DurationMinutes, req.GridStepMinutes); err != nil {
		return nil, err
	}

	slots := make([]domain.BookableSlot, 0)
	if req.Snapshot == nil {
		return slots, nil
	}

	duration := domain.TimeOfDay(req.DurationMinutes)
	step := domain.TimeOfDay(req.GridStepMinutes)

	for _, window := range req.Snapshot.WorkingWindows {
		if window.Duration() < req.DurationMinutes {
			continue
		}
		for t := window.Start; t+duration <= window.End; t += step {
			candidate := domain.Interval{Start: t, End: t + duration}
			if !domain.Contains(window, candidate) {
				continue
			}
			if overlapsAny(candidate, req.Snapshot.BusyIntervals) {
				continue
			}
			slots = append(slots, t)
		}
	}

	// Окна могли прийти не по порядку
	slots = sortUniqueSlots(slots)

	if req.NowClock != nil {
		slots = FilterPast(slots, *req.NowClock, true)
	}

	return slots, nil
}

// validateSlotParams: длительность и шаг от одной минуты до суток
func validateSlotParams(duration, step int) error {
	if duration <= 0 || duration > domain.MinutesPerDay {
		return fmt.Errorf("%w: %d", domain.ErrInvalidDuration, duration)
	}
	if step <= 0 || step > domain.MinutesPerDay {
		return fmt.Errorf("%w: %d", domain.ErrInvalidGridStep, step)
	}
	return nil
}

func overlapsAny(candidate domain.Interval, busy []domain.Interval) bool {
	for _, b := range busy {
		if domain.Overlaps(candidate, b) {
			return true
		}
	}
	return false
}

func sortUniqueSlots(slots []domain.BookableSlot) []domain.BookableSlot {
	slices.Sort(slots)
	return slices.Compact(slots)
}
