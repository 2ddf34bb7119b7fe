// Package activity projects bus events into the per-job activity feed.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hireline/hireline/pkg/eventbus"
	"github.com/hireline/hireline/pkg/events"
	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence"
)

// Projector consumes workflow and audit events and records them as
// activity entries, so the feed reflects automation alongside the
// executor's own rows.
type Projector struct {
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	logger      *slog.Logger
	now         func() time.Time
}

func NewProjector(p persistence.Persistence, bus eventbus.EventBus, logger *slog.Logger) *Projector {
	return &Projector{
		persistence: p,
		eventBus:    bus,
		logger:      logger.With("module", "activity"),
		now:         time.Now,
	}
}

// Start registers the handlers and opens the subscription. The consume
// loop runs until ctx is cancelled.
func (p *Projector) Start(ctx context.Context) error {
	p.eventBus.Handle(events.WorkflowTriggeredEvent, p.handleWorkflowTriggered)
	p.eventBus.Handle(events.AuditCompletedEvent, p.handleAuditCompleted)

	if err := p.eventBus.Subscribe(ctx); err != nil {
		return fmt.Errorf("subscribe activity projector: %w", err)
	}

	return nil
}

func (p *Projector) handleWorkflowTriggered(ctx context.Context, event any) error {
	triggered, ok := event.(*events.WorkflowTriggered)
	if !ok {
		p.logger.ErrorContext(ctx, "Invalid event type for WorkflowTriggered")

		return nil
	}

	entry := &models.ActivityEntry{
		ID:          uuid.New().String(),
		JobID:       triggered.Context.JobID,
		CandidateID: triggered.Context.CandidateID,
		Kind:        "workflow_triggered",
		Message:     fmt.Sprintf("Workflow %q ran (%s)", triggered.WorkflowName, triggered.TriggerType),
		CreatedAt:   p.now().UTC(),
	}

	return p.persistence.ActivityRepository().Save(ctx, entry)
}

func (p *Projector) handleAuditCompleted(ctx context.Context, event any) error {
	completed, ok := event.(*events.AuditCompleted)
	if !ok {
		p.logger.ErrorContext(ctx, "Invalid event type for AuditCompleted")

		return nil
	}

	message := "Bias audit completed: four-fifths check passed"
	if !completed.Compliant {
		message = "Bias audit completed: adverse impact detected"
	}

	entry := &models.ActivityEntry{
		ID:        uuid.New().String(),
		JobID:     completed.JobID,
		Kind:      "audit_completed",
		Message:   message,
		CreatedAt: p.now().UTC(),
	}

	return p.persistence.ActivityRepository().Save(ctx, entry)
}
