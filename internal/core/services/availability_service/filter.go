package availability_service

import "github.com/suchimauz/booking-availability-resolver/internal/core/domain"

// FilterPast убирает уже наступившие начала, если целевая дата сегодняшняя.
// Слот, начинающийся ровно в nowClock, тоже считается прошедшим.
func FilterPast(slots []domain.BookableSlot, nowClock domain.TimeOfDay, today bool) []domain.BookableSlot {
	if !today {
		return slots
	}

	filtered := make([]domain.BookableSlot, 0, len(slots))
	for _, slot := range slots {
		if slot > nowClock {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}
