package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/booking-availability-resolver/internal/config"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/in"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
)

// CacheHitListener слушает события об изменении расписаний и сбрасывает кэш
type CacheHitListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.AvailabilityUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	CacheHitType         string
	CacheHitResourceType string
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheHitResourceType
	CacheHitType CacheHitType
}

const (
	CacheHitResourceTypeAll            CacheHitResourceType = "_all_"
	CacheHitResourceTypeWeeklySchedule CacheHitResourceType = "weeklyschedule"
)

const (
	CacheHitTypeInvalidate CacheHitType = "invalidate"
)

// errMalformedMessage: сообщение не разобрать, повторная доставка не поможет
var errMalformedMessage = errors.New("malformed cache message")

func NewCacheHitListener(useCase in.AvailabilityUseCase, cfg *config.Config, logger out.LoggerPort) (*CacheHitListener, error) {
	logger = logger.WithModule("CacheHitListener")

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return newCacheHitListener(useCase, cfg, logger, conn, channel), nil
}

func newCacheHitListener(useCase in.AvailabilityUseCase, cfg *config.Config, logger out.LoggerPort, conn *amqp.Connection, channel *amqp.Channel) *CacheHitListener {
	return &CacheHitListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (l *CacheHitListener) Start(ctx context.Context) error {
	if err := l.channel.ExchangeDeclare(
		l.cfg.RabbitMQ.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return err
	}

	if err := l.startWeeklyScheduleQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("weekly_schedule.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.Queue,
		"bind":  l.cfg.RabbitMQ.Bind,
	})

	return nil
}

func (l *CacheHitListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

// Пример routingKey:
// booking.availability-resolver.weeklyschedule.professional.invalidate
// booking.availability-resolver._all_.all.invalidate
func parseCacheMessageRoutingKey(routingKey string) (CacheMessageRoutingKey, error) {
	parts := strings.Split(routingKey, ".")

	if len(parts) < 5 {
		return CacheMessageRoutingKey{}, fmt.Errorf("%w: invalid routing key: %s", errMalformedMessage, routingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheHitResourceType(parts[2]),
		CacheHitType: CacheHitType(parts[4]),
	}, nil
}
