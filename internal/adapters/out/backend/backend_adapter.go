package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	nurl "net/url"
	"time"

	"github.com/suchimauz/booking-availability-resolver/internal/config"
	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/json_types"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
)

const requestIDHeader = "X-Request-ID"

// BackendAdapter читает расписания из бэкенда бронирований.
// Реализует out.BookingBackendPort и out.ExternalBusyPort.
type BackendAdapter struct {
	client  *http.Client
	baseURL string
	token   string
	timeout time.Duration
	logger  out.LoggerPort
}

func NewBackendAdapter(cfg *config.Config, logger out.LoggerPort) *BackendAdapter {
	return &BackendAdapter{
		client:  &http.Client{},
		baseURL: cfg.Backend.URL,
		token:   cfg.Backend.Token,
		timeout: cfg.Backend.Timeout,
		logger:  logger.WithModule("BackendAdapter"),
	}
}

func (a *BackendAdapter) GetExactSlots(ctx context.Context, provider domain.ProviderRef, serviceInstanceID string, date time.Time) ([]out.BackendSlotEntry, error) {
	query := nurl.Values{}
	query.Set("serviceInstanceId", serviceInstanceID)
	query.Set("date", json_types.Date{Date: date}.String())

	var entries []out.BackendSlotEntry
	if err := a.get(ctx, "backend.exact_slots", a.providerURL(provider, "slots", query), &entries); err != nil {
		return nil, err
	}

	a.logger.Debug("backend.exact_slots.fetch_success", out.LogFields{
		"provider": provider.Key(),
		"entries":  len(entries),
	})

	return entries, nil
}

func (a *BackendAdapter) GetDaySchedule(ctx context.Context, provider domain.ProviderRef, date time.Time) (*out.BackendDaySchedule, error) {
	query := nurl.Values{}
	query.Set("date", json_types.Date{Date: date}.String())

	var schedule out.BackendDaySchedule
	if err := a.get(ctx, "backend.day_schedule", a.providerURL(provider, "day-schedule", query), &schedule); err != nil {
		return nil, err
	}

	a.logger.Debug("backend.day_schedule.fetch_success", out.LogFields{
		"provider":        provider.Key(),
		"hasWorkingHours": schedule.WorkingHours != nil,
		"booked":          len(schedule.BookedSlots),
		"breaks":          len(schedule.BreakTimes),
	})

	return &schedule, nil
}

func (a *BackendAdapter) GetWeeklySchedule(ctx context.Context, provider domain.ProviderRef) ([]out.BackendWeeklyDay, error) {
	var days []out.BackendWeeklyDay
	if err := a.get(ctx, "backend.weekly_schedule", a.providerURL(provider, "weekly-schedule", nil), &days); err != nil {
		return nil, err
	}

	a.logger.Debug("backend.weekly_schedule.fetch_success", out.LogFields{
		"provider": provider.Key(),
		"days":     len(days),
	})

	return days, nil
}

func (a *BackendAdapter) GetBusyIntervals(ctx context.Context, provider domain.ProviderRef, date time.Time) ([]out.BackendTimeRange, error) {
	query := nurl.Values{}
	query.Set("date", json_types.Date{Date: date}.String())

	var ranges []out.BackendTimeRange
	if err := a.get(ctx, "backend.calendar_busy", a.providerURL(provider, "calendar-busy", query), &ranges); err != nil {
		return nil, err
	}

	return ranges, nil
}

func (a *BackendAdapter) providerURL(provider domain.ProviderRef, resource string, query nurl.Values) string {
	url := fmt.Sprintf("%s/availability/%s/%s/%s",
		a.baseURL,
		nurl.PathEscape(string(provider.Type)),
		nurl.PathEscape(provider.ID),
		resource,
	)
	if len(query) > 0 {
		url += "?" + query.Encode()
	}
	return url
}

// get выполняет запрос с собственным таймаутом и декодирует JSON в target.
// Любая ошибка оборачивает domain.ErrRemoteUnavailable.
func (a *BackendAdapter) get(ctx context.Context, event string, url string, target any) error {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		a.logger.Error(event+".fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}

	req.Header.Set("Accept", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	if requestID, ok := out.RequestIDFromContext(ctx); ok {
		req.Header.Set(requestIDHeader, requestID)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error(event+".fetch_failed", out.LogFields{
			"url":   url,
			"error": err.Error(),
		})
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error(event+".fetch_failed", out.LogFields{
			"url":    url,
			"status": resp.StatusCode,
		})
		return fmt.Errorf("%w: unexpected status code: %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		a.logger.Error(event+".decode_failed", out.LogFields{
			"url":   url,
			"error": err.Error(),
		})
		return fmt.Errorf("%w: decode: %v", domain.ErrRemoteUnavailable, err)
	}

	return nil
}
