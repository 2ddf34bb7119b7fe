package cmd

import (
	"fmt"
	"log/slog"

	"github.com/hireline/hireline/pkg/delayqueue"
)

// NewDelayQueue creates the redis delay queue, or returns nil when no redis
// URL is configured. Without a queue, delayed actions run immediately.
func NewDelayQueue(redisURL string, logger *slog.Logger) *delayqueue.Queue {
	if redisURL == "" {
		return nil
	}

	queue, err := delayqueue.NewQueue(redisURL, logger)
	if err != nil {
		panic(fmt.Errorf("failed to create delay queue: %w", err))
	}

	return queue
}
