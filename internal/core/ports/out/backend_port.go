package out

import (
	"context"
	"time"

	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
)

// Ответы бэкенда бронирований в том виде, в котором они приходят.
// Время приходит строками "HH:MM[:SS]", проверка делается при переводе в домен.

type BackendSlotEntry struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type BackendTimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type BackendDaySchedule struct {
	// nil: провайдер в этот день не работает
	WorkingHours *BackendTimeRange `json:"workingHours"`
	BookedSlots  []BackendTimeRange `json:"bookedSlots"`
	BreakTimes   []BackendTimeRange `json:"breakTimes"`
}

type BackendWeeklyTimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BackendWeeklyDay: день недельного расписания.
// DayOfWeek в календарном соглашении: 0 = воскресенье.
type BackendWeeklyDay struct {
	DayOfWeek   int                     `json:"dayOfWeek"`
	IsAvailable bool                    `json:"isAvailable"`
	TimeSlots   []BackendWeeklyTimeSlot `json:"timeSlots"`
}

// Все ошибки методов оборачивают domain.ErrRemoteUnavailable
type BookingBackendPort interface {
	// Точный список слотов для (провайдер, услуга, дата)
	GetExactSlots(ctx context.Context, provider domain.ProviderRef, serviceInstanceID string, date time.Time) ([]BackendSlotEntry, error)

	// Расписание дня: рабочие часы, записи, перерывы
	GetDaySchedule(ctx context.Context, provider domain.ProviderRef, date time.Time) (*BackendDaySchedule, error)

	// Недельное расписание провайдера
	GetWeeklySchedule(ctx context.Context, provider domain.ProviderRef) ([]BackendWeeklyDay, error)
}

// ExternalBusyPort: занятость из подключенного внешнего календаря (Google Calendar)
type ExternalBusyPort interface {
	GetBusyIntervals(ctx context.Context, provider domain.ProviderRef, date time.Time) ([]BackendTimeRange, error)
}
