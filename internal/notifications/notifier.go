// Package notifications publishes domain events onto Redis channels so
// interested consumers (feed builders, search indexers) can react without
// the API blocking on them.
package notifications

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"

	"github.com/redis/go-redis/v9"
)

// Event names published by the API.
const (
	EventPostPublished = "post.published"
	EventUserDeleted   = "user.deleted"
)

// EventsChannel is the Redis channel all domain events are published to.
const EventsChannel = "events"

type event struct {
	Event   string                 `json:"event"`
	Payload map[string]interface{} `json:"payload"`
}

// Notifier publishes domain events into Redis. A Notifier built without a
// Redis client is a no-op, so callers never need to guard the publish path.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishEvent sends a named event with its payload to the events channel.
// Delivery is best-effort; a failed publish is logged and swallowed so writes
// never fail because the broker is down.
func (n *Notifier) PublishEvent(ctx context.Context, name string, payload map[string]interface{}) {
	if n == nil || n.rdb == nil {
		return
	}
	body, err := json.Marshal(event{Event: name, Payload: payload})
	if err != nil {
		log.Printf("notifier: marshal %s event: %v", name, err)
		return
	}
	if err := n.rdb.Publish(ctx, EventsChannel, string(body)).Err(); err != nil {
		log.Printf("notifier: publish %s event: %v", name, err)
	}
}

// StartSubscriber subscribes to the events channel and calls onEvent for each
// incoming message until ctx is cancelled.
func (n *Notifier) StartSubscriber(
	ctx context.Context, onEvent func(name string, payload map[string]interface{}),
) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, EventsChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in event subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					var ev event
					if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
						log.Printf("notifier: decode event: %v", err)
						return
					}
					onEvent(ev.Event, ev.Payload)
				}()
			}
		}
	}()

	return nil
}
