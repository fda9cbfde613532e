package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// envelope wraps an event for the Redis channel. Origin lets an
// instance discard its own publications.
type envelope struct {
	Origin string `json:"origin"`
	Event  Event  `json:"event"`
}

// RedisBridge fans events out across instances over a Redis pub/sub
// channel. Publish failures are logged and swallowed: the broadcast
// path must never fail the store write that produced the event.
type RedisBridge struct {
	client   *redis.Client
	channel  string
	instance string
	deliver  EventHandler
	logger   *zap.Logger
}

// NewRedisBridge constructs the bridge. Events published on the local
// dispatcher are forwarded to Redis; events arriving from other
// instances are handed to deliver.
func NewRedisBridge(client *redis.Client, channel, instanceID string, deliver EventHandler, logger *zap.Logger) *RedisBridge {
	return &RedisBridge{
		client:   client,
		channel:  channel,
		instance: instanceID,
		deliver:  deliver,
		logger:   logger,
	}
}

// HandleLocal forwards a locally published event to the Redis channel.
// Register it with Dispatcher.SubscribeAll.
func (b *RedisBridge) HandleLocal(ctx context.Context, event Event) error {
	payload, err := json.Marshal(envelope{Origin: b.instance, Event: event})
	if err != nil {
		b.logger.Warn("marshal event for redis", zap.Error(err))
		return nil
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		b.logger.Warn("publish event to redis", zap.Error(err), zap.String("type", string(event.Type)))
	}
	return nil
}

// Run consumes the Redis channel until ctx is cancelled, delivering
// events that originated on other instances.
func (b *RedisBridge) Run(ctx context.Context) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.logger.Warn("decode remote event", zap.Error(err))
				continue
			}
			if env.Origin == b.instance {
				continue
			}
			_ = b.deliver(ctx, env.Event)
		}
	}
}
