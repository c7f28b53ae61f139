package domain

import (
	"fmt"
	"sort"
)

// Interval: полуоткрытый промежуток [Start, End) в минутах от полуночи.
// Конец может быть равен MinutesPerDay (до конца суток).
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func NewInterval(start, end TimeOfDay) (Interval, error) {
	if start < 0 || end > MinutesPerDay || start >= end {
		return Interval{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// ParseInterval собирает интервал из пары строк "HH:MM[:SS]".
// Конец "24:00" означает конец суток.
func ParseInterval(start, end string) (Interval, error) {
	startTime, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: start: %v", ErrInvalidInterval, err)
	}
	endTime := TimeOfDay(MinutesPerDay)
	if !isEndOfDay(end) {
		endTime, err = ParseTimeOfDay(end)
		if err != nil {
			return Interval{}, fmt.Errorf("%w: end: %v", ErrInvalidInterval, err)
		}
	}
	return NewInterval(startTime, endTime)
}

func (i Interval) Duration() int {
	return int(i.End - i.Start)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start, i.End)
}

// Overlaps: строгое пересечение полуоткрытых интервалов, общая граница не считается
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

func Contains(outer, inner Interval) bool {
	return inner.Start >= outer.Start && inner.End <= outer.End
}

// MergeOverlapping сортирует по началу и склеивает пересекающиеся и смежные интервалы.
// Входной слайс не изменяется.
func MergeOverlapping(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return []Interval{}
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})

	merged := []Interval{sorted[0]}
	for _, next := range sorted[1:] {
		current := &merged[len(merged)-1]
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}

	return merged
}
