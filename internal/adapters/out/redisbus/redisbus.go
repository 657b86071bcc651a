// Package redisbus carries order status events between API instances over
// Redis pub/sub. Publisher sends events; Relay receives them and republishes
// into a local StatusPublisher, usually the in-process hub.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"foodify/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

// Channel is the pub/sub channel status events travel on.
const Channel = "order-status-update"

// Connect parses a redis:// URL and checks the server answers.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err = rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

// Publisher is a ports.StatusPublisher writing JSON events to Redis.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb, channel: Channel}
}

func (p *Publisher) Publish(ctx context.Context, event ports.OrderStatusEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	return p.rdb.Publish(ctx, p.channel, data).Err()
}

// Relay forwards events received from Redis to sink.
type Relay struct {
	rdb     *redis.Client
	channel string
	sink    ports.StatusPublisher
	logger  *slog.Logger
}

func NewRelay(rdb *redis.Client, sink ports.StatusPublisher, logger *slog.Logger) *Relay {
	return &Relay{
		rdb:     rdb,
		channel: Channel,
		sink:    sink,
		logger:  logger.With("component", "RedisRelay"),
	}
}

// Run subscribes and forwards until ctx is done. It returns once the
// subscription is confirmed failed or ctx is cancelled. Malformed messages are
// logged and skipped.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}
	r.logger.Info("Relay subscribed", "channel", r.channel)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.forward(ctx, msg.Payload)
		}
	}
}

func (r *Relay) forward(ctx context.Context, payload string) {
	var event ports.OrderStatusEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		r.logger.Warn("Dropping malformed status event", "error", err, "payload", payload)
		return
	}

	if err := r.sink.Publish(ctx, event); err != nil {
		r.logger.Error("Failed to forward status event", "error", err, "orderId", event.OrderID.String())
	}
}
