package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/booking-availability-resolver/internal/core/domain"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
)

type CacheWeeklyScheduleMessage struct {
	ProviderType string `json:"providerType"`
	ProviderID   string `json:"providerId"`
}

func (l *CacheHitListener) startWeeklyScheduleQueue(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}
	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMQ.Bind,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("weekly_schedule.queue.closed", out.LogFields{})
					return
				}
				l.acknowledge(msg, l.processWeeklyScheduleMessage(ctx, msg.RoutingKey, msg.Body))
			}
		}
	}()

	return nil
}

func (l *CacheHitListener) acknowledge(msg amqp.Delivery, err error) {
	if err == nil {
		msg.Ack(false)
		return
	}

	l.logger.Error("weekly_schedule.message.failed", out.LogFields{
		"routingKey": msg.RoutingKey,
		"error":      err.Error(),
	})
	// Битое сообщение не возвращаем в очередь
	msg.Nack(false, !errors.Is(err, errMalformedMessage))
}

func (l *CacheHitListener) processWeeklyScheduleMessage(ctx context.Context, routingKey string, body []byte) error {
	cacheMessageRoutingKey, err := parseCacheMessageRoutingKey(routingKey)
	if err != nil {
		return err
	}

	if cacheMessageRoutingKey.CacheHitType != CacheHitTypeInvalidate {
		l.logger.Debug("weekly_schedule.message.skipped", out.LogFields{
			"routingKey": routingKey,
		})
		return nil
	}

	switch cacheMessageRoutingKey.ResourceType {
	case CacheHitResourceTypeAll:
		if err := l.useCase.InvalidateAllWeeklySchedules(ctx); err != nil {
			return err
		}
		l.logger.Info("_all_.message.invalidated", out.LogFields{
			"weekly_schedule_cache": true,
		})
		return nil

	case CacheHitResourceTypeWeeklySchedule:
		var message CacheWeeklyScheduleMessage
		if err := json.Unmarshal(body, &message); err != nil {
			return fmt.Errorf("%w: %v", errMalformedMessage, err)
		}

		provider, err := domain.NewProviderRef(message.ProviderType, message.ProviderID)
		if err != nil {
			return fmt.Errorf("%w: %v", errMalformedMessage, err)
		}

		if err := l.useCase.InvalidateWeeklySchedule(ctx, provider); err != nil {
			return err
		}
		l.logger.Info("weekly_schedule.message.invalidated", out.LogFields{
			"provider": provider.Key(),
		})
		return nil
	}

	l.logger.Debug("weekly_schedule.message.skipped", out.LogFields{
		"routingKey": routingKey,
	})
	return nil
}
