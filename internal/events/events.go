// Package events provides a small in-process pub/sub bus. It decouples
// handlers from side effects such as metrics and audit logging.
package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

const (
	TopicUserRegistered = "user.registered"
	TopicFileStored     = "file.stored"
	TopicFileDelivered  = "file.delivered"
	TopicFileDeleted    = "file.deleted"
	TopicBroadcastDone  = "broadcast.done"
)

type Handler func(ctx context.Context, payload []byte)

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zerolog.Logger
}

func NewBus(logger *zerolog.Logger) *Bus {
	return &Bus{handlers: make(map[string][]Handler), logger: logger}
}

func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish delivers the payload to every subscriber of the topic. Handlers
// run synchronously in registration order; a panicking handler is recovered
// and logged so one bad subscriber cannot take down a flow.
func (b *Bus) Publish(ctx context.Context, topic string, payload []byte) {
	b.mu.RLock()
	handlers := b.handlers[topic]
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error().
						Str("topic", topic).
						Interface("panic", r).
						Msg("event handler panicked")
				}
			}()
			h(ctx, payload)
		}()
	}
}

// PublishJSON marshals v and publishes it. Marshal failures are logged and
// dropped; events are best effort.
func (b *Bus) PublishJSON(ctx context.Context, topic string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		b.logger.Error().Err(err).Str("topic", topic).Msg("failed to marshal event")
		return
	}
	b.Publish(ctx, topic, data)
}
