package utils

import "time"

// StartCurrentDay: полночь того же дня в той же таймзоне
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay возвращает полночь следующего дня, таймзона остается прежней.
// Через AddDate, поэтому переход на летнее время не сдвигает дату.
func StartNextDay(t time.Time) time.Time {
	newDate := t.AddDate(0, 0, 1)
	return StartCurrentDay(newDate)
}

// DaysBetween: полночи всех дней от start до end включительно.
// Если end раньше start, результат пустой.
func DaysBetween(start, end time.Time) []time.Time {
	start = StartCurrentDay(start)
	end = StartCurrentDay(end)

	days := []time.Time{}
	for day := start; !day.After(end); day = StartNextDay(day) {
		days = append(days, day)
	}
	return days
}
