// Package events carries the account-changed broadcast between the
// payment workflow and dependent views. Publishing is fire-and-forget:
// subscribers treat an event as a refresh hint, never as data.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
)

// Channel names for the Redis pub/sub broadcast.
const (
	ChannelAccountChanged  = "moussir:events:account-changed"
	ChannelPaymentRecorded = "moussir:events:payment-recorded"
)

// RedisPublisher broadcasts typed events over Redis pub/sub so every
// open till refreshes, not only the one that recorded the payment.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new RedisPublisher.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// PublishAccountChanged broadcasts an account-changed event.
func (p *RedisPublisher) PublishAccountChanged(ctx context.Context, event domain.AccountChangedEvent) error {
	return p.publish(ctx, ChannelAccountChanged, event)
}

// PublishPaymentRecorded broadcasts a payment-recorded event.
func (p *RedisPublisher) PublishPaymentRecorded(ctx context.Context, event domain.PaymentRecordedEvent) error {
	return p.publish(ctx, ChannelPaymentRecorded, event)
}

func (p *RedisPublisher) publish(ctx context.Context, channel string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}

	return nil
}

// Subscriber listens for account-changed events and hands account ids
// to a callback. It runs until the context is cancelled.
type Subscriber struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewSubscriber creates a new Subscriber.
func NewSubscriber(client *redis.Client, logger zerolog.Logger) *Subscriber {
	return &Subscriber{client: client, logger: logger}
}

// Listen consumes account-changed events. Malformed payloads are logged
// and skipped.
func (s *Subscriber) Listen(ctx context.Context, onChange func(accountID string)) error {
	sub := s.client.Subscribe(ctx, ChannelAccountChanged)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event domain.AccountChangedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				s.logger.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping malformed event")
				continue
			}

			onChange(event.AccountID)
		}
	}
}

// LogPublisher logs events instead of broadcasting them. Used when no
// Redis is configured, and in tests.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// PublishAccountChanged logs the event.
func (p *LogPublisher) PublishAccountChanged(ctx context.Context, event domain.AccountChangedEvent) error {
	p.logger.Info().
		Str("event_type", domain.EventTypeAccountChanged).
		Str("account_id", event.AccountID).
		Time("occurred_at", event.OccurredAt).
		Msg("event published")
	return nil
}

// PublishPaymentRecorded logs the event.
func (p *LogPublisher) PublishPaymentRecorded(ctx context.Context, event domain.PaymentRecordedEvent) error {
	p.logger.Info().
		Str("event_type", domain.EventTypePaymentRecorded).
		Str("transaction_id", event.TransactionID).
		Str("account_id", event.AccountID).
		Str("amount", event.Amount).
		Msg("event published")
	return nil
}
