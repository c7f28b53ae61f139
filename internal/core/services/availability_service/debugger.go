package availability_service

import (
	"sync"

	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
)

type resolutionDebug struct {
	mu   sync.Mutex
	data []domain.DebugInfo
}

func newResolutionDebug() *resolutionDebug {
	return &resolutionDebug{data: make([]domain.DebugInfo, 0)}
}

func (d *resolutionDebug) add(info domain.DebugInfo) {
	d.mu.Lock()
	d.data = append(d.data, info)
	d.mu.Unlock()
}

func (d *resolutionDebug) snapshot() []domain.DebugInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.DebugInfo{}, d.data...)
}
