package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// channelPrefix namespaces the Redis pub/sub channels, one per project.
const channelPrefix = "pinframe:events:"

// Bridge fans events out across engine instances through Redis pub/sub.
// Each instance publishes committed mutations to a per-project channel and
// subscribes to all of them, re-delivering received events to its local hub.
// The publishing instance's own subscribers get the event through the
// subscription like everyone else, so every local member sees it exactly
// once whether or not the bridge is in play.
type Bridge struct {
	client *redis.Client
	hub    *Hub
	logger *zap.Logger
}

// NewBridge creates a bridge between the local hub and Redis.
func NewBridge(client *redis.Client, hub *Hub, logger *zap.Logger) *Bridge {
	return &Bridge{
		client: client,
		hub:    hub,
		logger: logger.Named("realtime-bridge"),
	}
}

// Broadcast publishes the event to the project's Redis channel. Local
// delivery happens when the subscription loop receives it back.
func (b *Bridge) Broadcast(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	if err := b.client.Publish(ctx, channelPrefix+event.ProjectID.String(), data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	return nil
}

// Run subscribes to every project channel and forwards received events to
// the local hub until ctx is cancelled. Malformed messages are logged and
// skipped; they never stop the loop.
func (b *Bridge) Run(ctx context.Context) {
	sub := b.client.PSubscribe(ctx, channelPrefix+"*")
	defer func() {
		if err := sub.Close(); err != nil {
			b.logger.Warn("Failed to close Redis subscription", zap.Error(err))
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warn("Discarding malformed bridged event",
					zap.String("channel", msg.Channel),
					zap.Error(err),
				)
				continue
			}

			if err := b.hub.Broadcast(ctx, event); err != nil {
				b.logger.Warn("Failed to deliver bridged event", zap.Error(err))
			}
		}
	}
}

// Ensure Bridge implements Broadcaster at compile time.
var _ Broadcaster = (*Bridge)(nil)
