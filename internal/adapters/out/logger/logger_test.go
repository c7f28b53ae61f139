package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConsoleLogger_FiltersByLevel(t *testing.T) {
	l, err := NewConsoleLogger("UTC", "warn")
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	l.writer = buf

	l.Info("availability.tier.exact.started", out.LogFields{})
	assert.Empty(t, buf.String())

	l.Warn("availability.tier.exact.failed", out.LogFields{"error": "timeout"})
	assert.Contains(t, buf.String(), "availability.tier.exact.failed")
	assert.Contains(t, buf.String(), "timeout")
}

func TestConsoleLogger_WithFieldsDoesNotLeak(t *testing.T) {
	l, err := NewConsoleLogger("UTC", "debug")
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	l.writer = buf

	child := l.WithModule("AvailabilityService").WithFields(out.LogFields{"provider": "place:7"})
	child.Debug("child.event", nil)
	assert.Contains(t, buf.String(), "place:7")
	assert.Contains(t, buf.String(), "AvailabilityService")

	buf.Reset()
	l.Debug("parent.event", nil)
	assert.NotContains(t, buf.String(), "place:7")
}

func TestZapLogger_WritesEventAndFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapLoggerFrom(zap.New(core))

	l.WithModule("BackendAdapter").WithFields(out.LogFields{"provider": "professional:1"}).
		Error("backend.day_schedule.fetch_failed", out.LogFields{"status": 503})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "backend.day_schedule.fetch_failed", entry.Message)
	assert.Equal(t, "BackendAdapter", entry.LoggerName)
	fields := entry.ContextMap()
	assert.Equal(t, "professional:1", fields["provider"])
	assert.EqualValues(t, 503, fields["status"])
}
