package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

// TimeOfDay: минуты от полуночи, 0..1439
type TimeOfDay int

// ParseTimeOfDay разбирает "H:MM", "HH:MM" или "HH:MM:SS", секунды отбрасываются.
// Знаки и пробелы внутри частей не допускаются.
func ParseTimeOfDay(str string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(str), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, str)
	}

	hours, ok := parseClockPart(parts[0], 1, 2)
	if !ok || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, str)
	}
	minutes, ok := parseClockPart(parts[1], 2, 2)
	if !ok || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, str)
	}
	if len(parts) == 3 {
		seconds, ok := parseClockPart(parts[2], 2, 2)
		if !ok || seconds > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, str)
		}
	}

	return TimeOfDay(hours*60 + minutes), nil
}

// parseClockPart принимает только цифры, от minLen до maxLen штук
func parseClockPart(part string, minLen, maxLen int) (int, bool) {
	if len(part) < minLen || len(part) > maxLen {
		return 0, false
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	value, err := strconv.Atoi(part)
	return value, err == nil
}

// isEndOfDay: "24:00" допустим только как конец интервала
func isEndOfDay(str string) bool {
	switch strings.TrimSpace(str) {
	case "24:00", "24:00:00":
		return true
	}
	return false
}

// ClockOf возвращает время суток момента t в его же таймзоне
func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) Hours() int {
	return int(t) / 60
}

func (t TimeOfDay) Minutes() int {
	return int(t) % 60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hours(), t.Minutes())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeOfDay, err)
	}
	if isEndOfDay(str) {
		*t = MinutesPerDay
		return nil
	}
	parsed, err := ParseTimeOfDay(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
