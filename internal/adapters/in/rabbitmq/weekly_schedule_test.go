package rabbitmq

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/booking-availability-resolver/internal/adapters/out/logger"
	"github.com/suchimauz/booking-availability-resolver/internal/config"
	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"go.uber.org/zap"
)

type fakeUseCase struct {
	invalidated []domain.ProviderRef
	purged      int
	err         error
}

func (f *fakeUseCase) ResolveSlots(ctx context.Context, req domain.ResolutionRequest) (*domain.Resolution, error) {
	return nil, nil
}

func (f *fakeUseCase) ResolveBatchSlots(ctx context.Context, reqs []domain.ResolutionRequest) ([]*domain.Resolution, error) {
	return nil, nil
}

func (f *fakeUseCase) AvailableWeekdays(ctx context.Context, provider domain.ProviderRef) ([]domain.Weekday, error) {
	return nil, nil
}

func (f *fakeUseCase) InvalidateWeeklySchedule(ctx context.Context, provider domain.ProviderRef) error {
	f.invalidated = append(f.invalidated, provider)
	return f.err
}

func (f *fakeUseCase) InvalidateAllWeeklySchedules(ctx context.Context) error {
	f.purged++
	return f.err
}

func newTestListener(useCase *fakeUseCase) *CacheHitListener {
	return newCacheHitListener(useCase, &config.Config{}, logger.NewZapLoggerFrom(zap.NewNop()), nil, nil)
}

func TestParseCacheMessageRoutingKey(t *testing.T) {
	key, err := parseCacheMessageRoutingKey("booking.availability-resolver.weeklyschedule.professional.invalidate")

	require.NoError(t, err)
	assert.Equal(t, CacheMessageRoutingKey{
		Source:       "booking",
		Receiver:     "availability-resolver",
		ResourceType: CacheHitResourceTypeWeeklySchedule,
		CacheHitType: CacheHitTypeInvalidate,
	}, key)

	_, err = parseCacheMessageRoutingKey("booking.availability-resolver.weeklyschedule")
	assert.ErrorIs(t, err, errMalformedMessage)
}

func TestProcessWeeklyScheduleMessage_InvalidatesProvider(t *testing.T) {
	useCase := &fakeUseCase{}
	listener := newTestListener(useCase)

	err := listener.processWeeklyScheduleMessage(
		context.Background(),
		"booking.availability-resolver.weeklyschedule.professional.invalidate",
		[]byte(`{"providerType":"professional","providerId":"42"}`),
	)

	require.NoError(t, err)
	assert.Equal(t, []domain.ProviderRef{{Type: domain.ProviderTypeProfessional, ID: "42"}}, useCase.invalidated)
	assert.Zero(t, useCase.purged)
}

func TestProcessWeeklyScheduleMessage_AllPurges(t *testing.T) {
	useCase := &fakeUseCase{}
	listener := newTestListener(useCase)

	err := listener.processWeeklyScheduleMessage(context.Background(), "booking.availability-resolver._all_.all.invalidate", nil)

	require.NoError(t, err)
	assert.Equal(t, 1, useCase.purged)
	assert.Empty(t, useCase.invalidated)
}

func TestProcessWeeklyScheduleMessage_SkipsForeignEvents(t *testing.T) {
	useCase := &fakeUseCase{}
	listener := newTestListener(useCase)

	for _, routingKey := range []string{
		"booking.availability-resolver.weeklyschedule.professional.store",
		"booking.availability-resolver.appointment.professional.invalidate",
	} {
		require.NoError(t, listener.processWeeklyScheduleMessage(context.Background(), routingKey, []byte(`{}`)))
	}

	assert.Empty(t, useCase.invalidated)
	assert.Zero(t, useCase.purged)
}

func TestProcessWeeklyScheduleMessage_MalformedBody(t *testing.T) {
	listener := newTestListener(&fakeUseCase{})
	routingKey := "booking.availability-resolver.weeklyschedule.professional.invalidate"

	err := listener.processWeeklyScheduleMessage(context.Background(), routingKey, []byte(`not json`))
	assert.ErrorIs(t, err, errMalformedMessage)

	err = listener.processWeeklyScheduleMessage(context.Background(), routingKey, []byte(`{"providerType":"robot","providerId":"1"}`))
	assert.ErrorIs(t, err, errMalformedMessage)
}

func TestProcessWeeklyScheduleMessage_UseCaseErrorIsRetryable(t *testing.T) {
	useCase := &fakeUseCase{err: errors.New("redis down")}
	listener := newTestListener(useCase)

	err := listener.processWeeklyScheduleMessage(context.Background(), "booking.availability-resolver._all_.all.invalidate", nil)

	require.Error(t, err)
	assert.NotErrorIs(t, err, errMalformedMessage)
}
