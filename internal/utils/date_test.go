package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartNextDay_KeepsLocation(t *testing.T) {
	location, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 25 октября 2026 в Берлине 25 часов
	next := StartNextDay(time.Date(2026, 10, 25, 13, 45, 0, 0, location))

	assert.Equal(t, time.Date(2026, 10, 26, 0, 0, 0, 0, location), next)
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 10, 30, 18, 0, 0, 0, time.UTC)
	end := time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)

	days := DaysBetween(start, end)

	require.Len(t, days, 4)
	assert.Equal(t, time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), days[3])
}

func TestDaysBetween_EndBeforeStart(t *testing.T) {
	start := time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, DaysBetween(start, start.AddDate(0, 0, -1)))
	assert.Len(t, DaysBetween(start, start), 1)
}
