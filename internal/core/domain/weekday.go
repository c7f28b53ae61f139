package domain

import (
	"fmt"
	"time"
)

// Weekday в соглашении бэкенда: 0 = понедельник ... 6 = воскресенье.
//
// Календарные библиотеки (и time.Weekday) считают с воскресенья: 0 = воскресенье.
// Сырые целые числа через границу движка не передаются, только через
// FromBackendConvention / FromCalendarConvention.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = map[Weekday]string{
	Monday:    "mon",
	Tuesday:   "tue",
	Wednesday: "wed",
	Thursday:  "thu",
	Friday:    "fri",
	Saturday:  "sat",
	Sunday:    "sun",
}

func FromBackendConvention(n int) (Weekday, error) {
	if n < 0 || n > 6 {
		return 0, fmt.Errorf("%w: backend day %d", ErrInvalidWeekday, n)
	}
	return Weekday(n), nil
}

// FromCalendarConvention переводит день с воскресеньем = 0 в соглашение бэкенда
func FromCalendarConvention(n int) (Weekday, error) {
	if n < 0 || n > 6 {
		return 0, fmt.Errorf("%w: calendar day %d", ErrInvalidWeekday, n)
	}
	return Weekday((n + 6) % 7), nil
}

// WeekdayOf: день недели календарной даты
func WeekdayOf(date time.Time) Weekday {
	weekday, _ := FromCalendarConvention(int(date.Weekday()))
	return weekday
}

func (w Weekday) Backend() int {
	return int(w)
}

func (w Weekday) Calendar() int {
	return (int(w) + 1) % 7
}

func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if name, ok := weekdayNames[w]; ok {
		return name
	}
	return fmt.Sprintf("weekday(%d)", int(w))
}
