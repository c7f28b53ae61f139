package domain

import "sort"

type WeeklyScheduleEntry struct {
	Weekday        Weekday    `json:"weekday"`
	IsAvailable    bool       `json:"isAvailable"`
	WorkingWindows []Interval `json:"workingWindows"`
}

// NewWeeklyScheduleEntry нормализует запись: у выключенного дня окон нет,
// пересекающиеся окна склеиваются
func NewWeeklyScheduleEntry(weekday Weekday, isAvailable bool, windows []Interval) WeeklyScheduleEntry {
	entry := WeeklyScheduleEntry{
		Weekday:        weekday,
		IsAvailable:    isAvailable,
		WorkingWindows: []Interval{},
	}
	if isAvailable {
		entry.WorkingWindows = MergeOverlapping(windows)
	}
	return entry
}

// Windows: рабочие окна с учетом флага доступности
func (e WeeklyScheduleEntry) Windows() []Interval {
	if !e.IsAvailable {
		return []Interval{}
	}
	return e.WorkingWindows
}

func (e WeeklyScheduleEntry) IsWorking() bool {
	return e.IsAvailable && len(e.WorkingWindows) > 0
}

type WeeklySchedule struct {
	Entries []WeeklyScheduleEntry `json:"entries"`
}

// NewWeeklySchedule объединяет записи одного дня недели в одну.
// Если хотя бы одна из записей выключает день, день выключен.
func NewWeeklySchedule(entries []WeeklyScheduleEntry) WeeklySchedule {
	byDay := make(map[Weekday]WeeklyScheduleEntry)
	for _, entry := range entries {
		current, exists := byDay[entry.Weekday]
		if !exists {
			byDay[entry.Weekday] = NewWeeklyScheduleEntry(entry.Weekday, entry.IsAvailable, entry.WorkingWindows)
			continue
		}
		byDay[entry.Weekday] = NewWeeklyScheduleEntry(
			entry.Weekday,
			current.IsAvailable && entry.IsAvailable,
			append(append([]Interval{}, current.WorkingWindows...), entry.Windows()...),
		)
	}

	schedule := WeeklySchedule{Entries: make([]WeeklyScheduleEntry, 0, len(byDay))}
	for _, entry := range byDay {
		schedule.Entries = append(schedule.Entries, entry)
	}
	sort.Slice(schedule.Entries, func(i, j int) bool {
		return schedule.Entries[i].Weekday < schedule.Entries[j].Weekday
	})

	return schedule
}

// EntryFor возвращает запись дня недели; отсутствующий день считается выходным
func (s WeeklySchedule) EntryFor(weekday Weekday) WeeklyScheduleEntry {
	for _, entry := range s.Entries {
		if entry.Weekday == weekday {
			return entry
		}
	}
	return NewWeeklyScheduleEntry(weekday, false, nil)
}

func (s WeeklySchedule) WindowsFor(weekday Weekday) []Interval {
	return s.EntryFor(weekday).Windows()
}

// AvailableWeekdays: дни, в которые есть хотя бы одно рабочее окно
func (s WeeklySchedule) AvailableWeekdays() map[Weekday]struct{} {
	days := make(map[Weekday]struct{})
	for _, entry := range s.Entries {
		if entry.IsWorking() {
			days[entry.Weekday] = struct{}{}
		}
	}
	return days
}

// SortedAvailableWeekdays: то же, что AvailableWeekdays, упорядоченно с понедельника
func (s WeeklySchedule) SortedAvailableWeekdays() []Weekday {
	days := s.AvailableWeekdays()
	result := make([]Weekday, 0, len(days))
	for _, weekday := range AllWeekdays {
		if _, ok := days[weekday]; ok {
			result = append(result, weekday)
		}
	}
	return result
}
