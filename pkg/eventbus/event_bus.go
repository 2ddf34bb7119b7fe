// Package eventbus provides event publishing infrastructure for workflow
// and compliance notifications.
package eventbus

import (
	"context"

	"github.com/hireline/hireline/pkg/events"
)

type EventHandler func(ctx context.Context, event any) error

type EventPublisher interface {
	Publish(ctx context.Context, key string, event events.Event) error
}

type EventSubscriber interface {
	Handle(eventType events.EventType, handler EventHandler)
	Subscribe(ctx context.Context) error
}

type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
	GenerateID() string
}
