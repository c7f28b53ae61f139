package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/booking-availability-resolver/internal/config"
	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/json_types"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/in"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
	"github.com/suchimauz/booking-availability-resolver/internal/utils"
)

type AvailabilityController struct {
	useCase in.AvailabilityUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewAvailabilityController(useCase in.AvailabilityUseCase, cfg *config.Config, logger out.LoggerPort) *AvailabilityController {
	return &AvailabilityController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger.WithModule("AvailabilityController"),
	}
}

func (c *AvailabilityController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.health)

	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	if c.cfg.RateLimit.Enabled {
		api.Use(newClientRateLimiter(c.cfg.RateLimit.RPS, c.cfg.RateLimit.Burst, c.logger).middleware())
	}
	{
		api.GET("/providers/:providerType/:providerId/slots", c.resolveSlots)
		api.GET("/providers/:providerType/:providerId/weekdays", c.availableWeekdays)
		api.POST("/slots/resolve-batch", c.resolveBatchSlots)
	}
}

type ResolveSlotsQuery struct {
	Date              string `form:"date" binding:"required"`
	ServiceInstanceID string `form:"serviceInstanceId"`
	Duration          string `form:"duration"`
	GridStep          string `form:"gridStep"`
	Debug             bool   `form:"debug"`
}

// ResolveBatchSlotsRequest: либо список дат, либо диапазон startDate..endDate включительно
type ResolveBatchSlotsRequest struct {
	ProviderType      string            `json:"providerType" binding:"required"`
	ProviderID        string            `json:"providerId" binding:"required"`
	ServiceInstanceID string            `json:"serviceInstanceId"`
	Dates             []json_types.Date `json:"dates"`
	StartDate         *json_types.Date  `json:"startDate"`
	EndDate           *json_types.Date  `json:"endDate"`
	Duration          *int              `json:"duration"`
	GridStep          *int              `json:"gridStep"`
	Debug             bool              `json:"debug"`
}

// AvailableWeekdaysResponse: weekdays с понедельника = 0,
// calendarWeekdays с воскресенья = 0 для календарных виджетов
type AvailableWeekdaysResponse struct {
	Provider         domain.ProviderRef `json:"provider"`
	Weekdays         []int              `json:"weekdays"`
	CalendarWeekdays []int              `json:"calendarWeekdays"`
	Names            []string           `json:"names"`
}

func (c *AvailabilityController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": c.cfg.App.Version,
	})
}

func (c *AvailabilityController) resolveSlots(ctx *gin.Context) {
	provider, err := domain.NewProviderRef(ctx.Param("providerType"), ctx.Param("providerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var query ResolveSlotsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	duration, err := intOrDefault(query.Duration, c.cfg.Engine.DefaultDurationMinutes)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid duration format"})
		return
	}
	gridStep, err := intOrDefault(query.GridStep, c.cfg.Engine.GridStepMinutes)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gridStep format"})
		return
	}

	req, err := c.newResolutionRequest(provider, query.ServiceInstanceID, query.Date, duration, gridStep)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resolution, err := c.useCase.ResolveSlots(ctx.Request.Context(), req)
	if err != nil {
		c.abortWithError(ctx, err)
		return
	}

	if !query.Debug {
		resolution.Debug = nil
	}

	ctx.JSON(http.StatusOK, resolution)
}

func (c *AvailabilityController) resolveBatchSlots(ctx *gin.Context) {
	var body ResolveBatchSlotsRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	provider, err := domain.NewProviderRef(body.ProviderType, body.ProviderID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	duration := c.cfg.Engine.DefaultDurationMinutes
	if body.Duration != nil {
		duration = *body.Duration
	}
	gridStep := c.cfg.Engine.GridStepMinutes
	if body.GridStep != nil {
		gridStep = *body.GridStep
	}

	dates, err := c.batchDates(body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reqs := make([]domain.ResolutionRequest, 0, len(dates))
	for _, date := range dates {
		reqs = append(reqs, c.newResolutionRequestForDate(provider, body.ServiceInstanceID, date, duration, gridStep))
	}

	results, err := c.useCase.ResolveBatchSlots(ctx.Request.Context(), reqs)
	if err != nil {
		c.abortWithError(ctx, err)
		return
	}

	if !body.Debug {
		for _, resolution := range results {
			resolution.Debug = nil
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"results": results})
}

func (c *AvailabilityController) availableWeekdays(ctx *gin.Context) {
	provider, err := domain.NewProviderRef(ctx.Param("providerType"), ctx.Param("providerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weekdays, err := c.useCase.AvailableWeekdays(ctx.Request.Context(), provider)
	if err != nil {
		c.abortWithError(ctx, err)
		return
	}

	response := AvailableWeekdaysResponse{
		Provider:         provider,
		Weekdays:         make([]int, 0, len(weekdays)),
		CalendarWeekdays: make([]int, 0, len(weekdays)),
		Names:            make([]string, 0, len(weekdays)),
	}
	for _, weekday := range weekdays {
		response.Weekdays = append(response.Weekdays, weekday.Backend())
		response.CalendarWeekdays = append(response.CalendarWeekdays, weekday.Calendar())
		response.Names = append(response.Names, weekday.String())
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *AvailabilityController) parseDate(date string) (time.Time, error) {
	parsed, err := json_types.ParseDate(date, c.cfg.App.Location)
	if err != nil {
		return time.Time{}, errors.Join(domain.ErrInvalidDate, err)
	}
	return parsed.Date, nil
}

// batchDates: даты тела приходят в UTC, переносим их в таймзону приложения
func (c *AvailabilityController) batchDates(body ResolveBatchSlotsRequest) ([]time.Time, error) {
	location := c.cfg.App.Location
	if len(body.Dates) > 0 {
		dates := make([]time.Time, 0, len(body.Dates))
		for _, date := range body.Dates {
			dates = append(dates, date.In(location))
		}
		return dates, nil
	}

	if body.StartDate == nil || body.EndDate == nil {
		return nil, fmt.Errorf("%w: dates or startDate and endDate are required", domain.ErrInvalidDate)
	}
	start := body.StartDate.In(location)
	end := body.EndDate.In(location)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: endDate is before startDate", domain.ErrInvalidDate)
	}

	// Защита от огромного диапазона до перебора дней
	if maxDates := c.cfg.Engine.BatchMaxDates; maxDates > 0 && end.Sub(start) > time.Duration(maxDates)*24*time.Hour {
		return nil, fmt.Errorf("%w: range exceeds %d dates", domain.ErrInvalidDate, maxDates)
	}

	return utils.DaysBetween(start, end), nil
}

func (c *AvailabilityController) newResolutionRequest(provider domain.ProviderRef, serviceInstanceID, date string, duration, gridStep int) (domain.ResolutionRequest, error) {
	parsed, err := c.parseDate(date)
	if err != nil {
		return domain.ResolutionRequest{}, err
	}
	return c.newResolutionRequestForDate(provider, serviceInstanceID, parsed, duration, gridStep), nil
}

// Дата в таймзоне приложения, "сейчас" по часам сервера
func (c *AvailabilityController) newResolutionRequestForDate(provider domain.ProviderRef, serviceInstanceID string, date time.Time, duration, gridStep int) domain.ResolutionRequest {
	return domain.ResolutionRequest{
		Provider:          provider,
		ServiceInstanceID: serviceInstanceID,
		Date:              date,
		DurationMinutes:   duration,
		GridStepMinutes:   gridStep,
		Now:               c.cfg.Now(),
	}
}

func (c *AvailabilityController) abortWithError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrInvalidGridStep),
		errors.Is(err, domain.ErrInvalidProvider),
		errors.Is(err, domain.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRemoteUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		c.logger.Error("http.request.failed", out.LogFields{
			"path":   ctx.FullPath(),
			"status": status,
			"error":  err.Error(),
		})
	}

	ctx.JSON(status, gin.H{"error": err.Error()})
}

func intOrDefault(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}
