package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishEvent(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, EventsChannel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	n := NewNotifier(rdb)
	n.PublishEvent(ctx, EventPostPublished, map[string]interface{}{
		"post_id": float64(1),
		"slug":    "hello-world",
	})

	select {
	case msg := <-sub.Channel():
		var got struct {
			Event   string                 `json:"event"`
			Payload map[string]interface{} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, EventPostPublished, got.Event)
		assert.Equal(t, "hello-world", got.Payload["slug"])
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestPublishEventWithoutClientIsNoop(t *testing.T) {
	t.Parallel()

	n := NewNotifier(nil)
	// Must not panic or block.
	n.PublishEvent(context.Background(), EventUserDeleted, map[string]interface{}{"user_id": 1})
}
