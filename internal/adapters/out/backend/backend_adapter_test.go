package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/booking-availability-resolver/internal/adapters/out/logger"
	"github.com/suchimauz/booking-availability-resolver/internal/config"
	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
	"go.uber.org/zap"
)

var (
	testProvider = domain.ProviderRef{Type: domain.ProviderTypePlace, ID: "room 7"}
	testDate     = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *BackendAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Backend.URL = server.URL
	cfg.Backend.Token = "secret"
	cfg.Backend.Timeout = timeout

	return NewBackendAdapter(cfg, logger.NewZapLoggerFrom(zap.NewNop()))
}

func writeJSON(t *testing.T, w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestGetExactSlots_SendsQueryAndHeaders(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/availability/place/room%207/slots", r.URL.EscapedPath())
		assert.Equal(t, "svc-1", r.URL.Query().Get("serviceInstanceId"))
		assert.Equal(t, "2026-10-19", r.URL.Query().Get("date"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "resolution-1", r.Header.Get(requestIDHeader))

		writeJSON(t, w, []out.BackendSlotEntry{
			{Time: "09:00", Available: true},
			{Time: "09:30", Available: false},
		})
	}, time.Second)

	ctx := out.ContextWithRequestID(context.Background(), "resolution-1")
	entries, err := adapter.GetExactSlots(ctx, testProvider, "svc-1", testDate)

	require.NoError(t, err)
	assert.Equal(t, []out.BackendSlotEntry{
		{Time: "09:00", Available: true},
		{Time: "09:30", Available: false},
	}, entries)
}

func TestGetDaySchedule_NullWorkingHours(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/availability/place/room%207/day-schedule", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"workingHours":null,"bookedSlots":[],"breakTimes":[{"start":"13:00","end":"14:00"}]}`))
	}, time.Second)

	schedule, err := adapter.GetDaySchedule(context.Background(), testProvider, testDate)

	require.NoError(t, err)
	assert.Nil(t, schedule.WorkingHours)
	assert.Equal(t, []out.BackendTimeRange{{Start: "13:00", End: "14:00"}}, schedule.BreakTimes)
}

func TestGetWeeklySchedule_DecodesCalendarDays(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/availability/place/room%207/weekly-schedule", r.URL.EscapedPath())
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[{"dayOfWeek":0,"isAvailable":false,"timeSlots":[]},
			{"dayOfWeek":1,"isAvailable":true,"timeSlots":[{"startTime":"09:00:00","endTime":"17:00:00"}]}]`))
	}, time.Second)

	days, err := adapter.GetWeeklySchedule(context.Background(), testProvider)

	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 1, days[1].DayOfWeek)
	assert.Equal(t, "09:00:00", days[1].TimeSlots[0].StartTime)
}

func TestGetBusyIntervals(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/availability/place/room%207/calendar-busy", r.URL.EscapedPath())
		writeJSON(t, w, []out.BackendTimeRange{{Start: "15:00", End: "16:00"}})
	}, time.Second)

	ranges, err := adapter.GetBusyIntervals(context.Background(), testProvider, testDate)

	require.NoError(t, err)
	assert.Equal(t, []out.BackendTimeRange{{Start: "15:00", End: "16:00"}}, ranges)
}

func TestErrorsWrapRemoteUnavailable(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}, time.Second)

		_, err := adapter.GetWeeklySchedule(context.Background(), testProvider)
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	})

	t.Run("malformed body", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"workingHours":`))
		}, time.Second)

		_, err := adapter.GetDaySchedule(context.Background(), testProvider, testDate)
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}, 20*time.Millisecond)

		_, err := adapter.GetExactSlots(context.Background(), testProvider, "svc-1", testDate)
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	})
}
