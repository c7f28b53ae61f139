package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/booking-availability-resolver/internal/core/json_types"
)

// SourceTier: источник, из которого получен список слотов
type SourceTier string

const (
	SourceTierNone     SourceTier = ""
	SourceTierExact    SourceTier = "exact"
	SourceTierDerived  SourceTier = "derived"
	SourceTierFallback SourceTier = "fallback"
)

type ResolutionRequest struct {
	Provider          ProviderRef
	ServiceInstanceID string
	// Календарная дата, время суток игнорируется
	Date            time.Time
	DurationMinutes int
	GridStepMinutes int
	// Текущий момент в локальном времени вызывающего
	Now time.Time
}

// IsToday: совпадает ли дата запроса с текущей датой вызывающего
func (r ResolutionRequest) IsToday() bool {
	y1, m1, d1 := r.Date.Date()
	y2, m2, d2 := r.Now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

type Resolution struct {
	ID             uuid.UUID       `json:"id"`
	Provider       ProviderRef     `json:"provider"`
	Date           json_types.Date `json:"date"`
	Slots          []TimeOfDay     `json:"slots"`
	Tier           SourceTier      `json:"sourceTier"`
	Resolved       bool            `json:"resolved"`
	DroppedRecords int             `json:"droppedRecords"`
	Debug          []DebugInfo     `json:"debug,omitempty"`
}
