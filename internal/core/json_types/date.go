package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date: календарная дата без времени, "2006-01-02"
type Date struct {
	Date time.Time
}

// ParseDate разбирает дату в указанной таймзоне, полночь этой даты
func ParseDate(str string, location *time.Location) (Date, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(DateLayout, str, location)
	if err != nil {
		// Пробуем RFC3339 и берем только дату
		withTime, rfcErr := time.Parse(time.RFC3339, str)
		if rfcErr != nil {
			return Date{}, fmt.Errorf("failed to parse date: %v", err)
		}
		withTime = withTime.In(location)
		parsed = time.Date(withTime.Year(), withTime.Month(), withTime.Day(), 0, 0, 0, 0, location)
	}
	return Date{Date: parsed}, nil
}

func (d Date) String() string {
	return d.Date.Format(DateLayout)
}

// In: та же календарная дата, полночь в указанной таймзоне
func (d Date) In(location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), 0, 0, 0, 0, location)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse date: %v", err)
	}

	parsed, err := ParseDate(str, time.UTC)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
