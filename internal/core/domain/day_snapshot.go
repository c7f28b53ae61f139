package domain

import "time"

// DaySnapshot: рабочие окна и занятые интервалы одной конкретной даты.
// Дня недели у снимка нет.
type DaySnapshot struct {
	Date           time.Time  `json:"date"`
	WorkingWindows []Interval `json:"workingWindows"`
	BusyIntervals  []Interval `json:"busyIntervals"`
}

type SlotGenerationRequest struct {
	Snapshot        *DaySnapshot
	DurationMinutes int
	GridStepMinutes int
	NowClock        *TimeOfDay
}

// BookableSlot: время начала, при котором [start, start+duration) свободно
type BookableSlot = TimeOfDay
