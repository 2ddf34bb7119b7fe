// Package cmd provides common initialization for the command-line binaries.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/hireline/hireline/pkg/eventbus"
	"github.com/hireline/hireline/pkg/eventbus/kafka"
)

// NewEventBus creates the event bus for the given provider. The default is
// an in-process channel bus; "kafka" reads KAFKA_BROKERS from the
// environment.
func NewEventBus(provider string, logger *slog.Logger) eventbus.EventBus {
	switch provider {
	case "kafka":
		pub, sub, err := kafka.CreateChannel(watermill.NewSlogLogger(logger), "hireline")
		if err != nil {
			panic(fmt.Errorf("failed to create Kafka pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	default:
		return eventbus.NewGoChannelEventBus(logger)
	}
}
