package event

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const TopicPostCreated = "post.created"

// PostCreated is the payload published when a post row has been committed.
// Enrichment consumes it; the producer never waits for consumers.
type PostCreated struct {
	PostId  string `json:"post_id"`
	Content string `json:"content"`
}

/*

Bus is the in-process event bus connecting the post lifecycle to the
enrichment worker. For now we use a golang channel implementation for the
EventBus, but later when needed we could substitute it with a Kafka-based
EventBus.

*/

type Bus struct {
	inner *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		inner: gochannel.NewGoChannel(
			gochannel.Config{
				// Events published before the worker finishes subscribing are
				// replayed to it instead of dropped.
				Persistent: true,
			},
			watermill.NopLogger{},
		),
	}
}

// PublishPostCreated emits a PostCreated event. Errors only surface when the
// bus itself is closed; subscriber failures are invisible to the publisher.
func (b *Bus) PublishPostCreated(e PostCreated) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	return b.inner.Publish(TopicPostCreated, msg)
}

// SubscribePostCreated returns a channel of decoded events. Malformed
// payloads are acked and dropped. The channel closes when ctx is cancelled.
func (b *Bus) SubscribePostCreated(ctx context.Context) (<-chan PostCreated, error) {
	msgs, err := b.inner.Subscribe(ctx, TopicPostCreated)
	if err != nil {
		return nil, err
	}

	out := make(chan PostCreated)
	go func() {
		defer close(out)
		for msg := range msgs {
			msg.Ack()

			var e PostCreated
			if err := json.Unmarshal(msg.Payload, &e); err != nil {
				continue
			}
			out <- e
		}
	}()
	return out, nil
}

func (b *Bus) Close() error {
	return b.inner.Close()
}
