package activity

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireline/hireline/pkg/eventbus"
	"github.com/hireline/hireline/pkg/events"
	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence/file"
)

func setupProjector(t *testing.T) (*Projector, *file.Persistence, *eventbus.WatermillEventBus) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	p := file.NewPersistence(t.TempDir())
	bus := eventbus.NewGoChannelEventBus(logger)

	t.Cleanup(func() {
		_ = bus.Close()
	})

	projector := NewProjector(p, bus, logger)
	require.NoError(t, projector.Start(t.Context()))

	return projector, p, bus
}

func entriesForJob(t *testing.T, p *file.Persistence, jobID string) []*models.ActivityEntry {
	t.Helper()

	entries, err := p.ActivityRepository().ListByJob(t.Context(), jobID)
	require.NoError(t, err)

	return entries
}

func TestProjector_RecordsWorkflowTriggered(t *testing.T) {
	_, p, bus := setupProjector(t)

	triggered := events.WorkflowTriggered{
		BaseEvent:    events.NewBaseEvent(events.WorkflowTriggeredEvent),
		WorkflowID:   "wf-1",
		WorkflowName: "High-score fast track",
		TriggerType:  models.TriggerScoreThreshold,
		Context: events.TriggerContext{
			CandidateID: "cand-1",
			JobID:       "job-1",
		},
	}
	require.NoError(t, bus.Publish(t.Context(), "wf-1", triggered))

	require.Eventually(t, func() bool {
		entries, err := p.ActivityRepository().ListByJob(t.Context(), "job-1")

		return err == nil && len(entries) == 1
	}, 2*time.Second, 20*time.Millisecond)

	entry := entriesForJob(t, p, "job-1")[0]
	assert.Equal(t, "workflow_triggered", entry.Kind)
	assert.Equal(t, "cand-1", entry.CandidateID)
	assert.Contains(t, entry.Message, "High-score fast track")
}

func TestProjector_RecordsAuditOutcome(t *testing.T) {
	_, p, bus := setupProjector(t)

	completed := events.AuditCompleted{
		BaseEvent: events.NewBaseEvent(events.AuditCompletedEvent),
		AuditID:   "audit-1",
		JobID:     "job-1",
		Compliant: false,
	}
	require.NoError(t, bus.Publish(t.Context(), "job-1", completed))

	require.Eventually(t, func() bool {
		entries, err := p.ActivityRepository().ListByJob(t.Context(), "job-1")

		return err == nil && len(entries) == 1
	}, 2*time.Second, 20*time.Millisecond)

	entry := entriesForJob(t, p, "job-1")[0]
	assert.Equal(t, "audit_completed", entry.Kind)
	assert.Contains(t, entry.Message, "adverse impact")
}
