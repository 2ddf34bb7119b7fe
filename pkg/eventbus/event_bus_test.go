package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireline/hireline/pkg/events"
)

func newTestBus(t *testing.T) *WatermillEventBus {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	bus := NewGoChannelEventBus(logger)

	t.Cleanup(func() {
		_ = bus.Close()
	})

	return bus
}

func TestWatermillEventBus_RoundTrip(t *testing.T) {
	bus := newTestBus(t)

	received := make(chan *events.AuditCompleted, 1)

	bus.Handle(events.AuditCompletedEvent, func(_ context.Context, event any) error {
		completed, ok := event.(*events.AuditCompleted)
		if !ok {
			return errors.New("unexpected event type")
		}

		received <- completed

		return nil
	})

	require.NoError(t, bus.Subscribe(t.Context()))

	published := events.AuditCompleted{
		BaseEvent: events.NewBaseEvent(events.AuditCompletedEvent),
		AuditID:   "audit-1",
		JobID:     "job-1",
		Compliant: false,
	}
	require.NoError(t, bus.Publish(t.Context(), "job-1", published))

	select {
	case got := <-received:
		assert.Equal(t, "audit-1", got.AuditID)
		assert.Equal(t, "job-1", got.JobID)
		assert.False(t, got.Compliant)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit.completed")
	}
}

func TestWatermillEventBus_UnhandledTypesAreSkipped(t *testing.T) {
	bus := newTestBus(t)

	received := make(chan *events.WorkflowTriggered, 1)

	bus.Handle(events.WorkflowTriggeredEvent, func(_ context.Context, event any) error {
		triggered, ok := event.(*events.WorkflowTriggered)
		if !ok {
			return errors.New("unexpected event type")
		}

		received <- triggered

		return nil
	})

	require.NoError(t, bus.Subscribe(t.Context()))

	// No handler for team.notified; the message is acked and dropped.
	notified := events.TeamNotified{
		BaseEvent: events.NewBaseEvent(events.TeamNotifiedEvent),
		JobID:     "job-1",
		Message:   "heads up",
	}
	require.NoError(t, bus.Publish(t.Context(), "job-1", notified))

	triggered := events.WorkflowTriggered{
		BaseEvent:    events.NewBaseEvent(events.WorkflowTriggeredEvent),
		WorkflowID:   "wf-1",
		WorkflowName: "Fast track",
	}
	require.NoError(t, bus.Publish(t.Context(), "wf-1", triggered))

	select {
	case got := <-received:
		assert.Equal(t, "wf-1", got.WorkflowID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for workflow.triggered")
	}
}
