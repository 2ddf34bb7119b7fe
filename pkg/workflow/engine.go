package workflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hireline/hireline/pkg/events"
	"github.com/hireline/hireline/pkg/eventbus"
	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/otelhelper"
	"github.com/hireline/hireline/pkg/persistence"
)

// Engine matches incoming trigger contexts against active workflows and runs
// the actions of every workflow that fires. A failing workflow never prevents
// the remaining workflows from running.
type Engine struct {
	persistence persistence.Persistence
	executor    *Executor
	eventBus    eventbus.EventBus
	tracer      trace.Tracer
	logger      *slog.Logger
	now         func() time.Time
}

func NewEngine(
	p persistence.Persistence,
	executor *Executor,
	bus eventbus.EventBus,
	tracer trace.Tracer,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		persistence: p,
		executor:    executor,
		eventBus:    bus,
		tracer:      tracer,
		logger:      logger.With("module", "workflow_engine"),
		now:         time.Now,
	}
}

// CheckTriggers loads the active workflows for triggerType, evaluates each
// one against tctx, and executes those that match. Every invocation
// re-evaluates and re-executes from scratch; callers that need at-most-once
// semantics must deduplicate upstream.
func (e *Engine) CheckTriggers(ctx context.Context, triggerType models.TriggerType, tctx events.TriggerContext) error {
	var span trace.Span

	if e.tracer != nil {
		ctx, span = otelhelper.StartSpan(ctx, e.tracer, "workflow.check_triggers",
			attribute.String(otelhelper.TriggerTypeKey, string(triggerType)),
			attribute.String(otelhelper.CandidateIDKey, tctx.CandidateID),
			attribute.String(otelhelper.JobIDKey, tctx.JobID),
		)
		defer span.End()
	}

	workflows, err := e.persistence.WorkflowRepository().ListActiveByTriggerType(ctx, triggerType)
	if err != nil {
		otelhelper.SetError(span, err)

		return err
	}

	now := e.now()

	var errs []error

	for _, wf := range workflows {
		if !wf.Scope.AppliesTo(tctx.JobID, tctx.Department) {
			continue
		}

		if !Matches(wf.Trigger, tctx, now) {
			continue
		}

		logger := e.logger.With("workflow_id", wf.ID, "trigger_type", triggerType)
		logger.InfoContext(ctx, "Workflow triggered", "candidate_id", tctx.CandidateID)

		if span != nil {
			span.AddEvent("workflow.matched", trace.WithAttributes(
				attribute.String(otelhelper.WorkflowIDKey, wf.ID),
			))
		}

		if err := e.executor.Execute(ctx, wf, tctx); err != nil {
			logger.ErrorContext(ctx, "Workflow execution failed", "error", err)
			errs = append(errs, err)

			continue
		}

		if err := e.persistence.WorkflowRepository().RecordTriggered(ctx, wf.ID, now); err != nil {
			logger.ErrorContext(ctx, "Failed to record workflow trigger", "error", err)
			errs = append(errs, err)

			continue
		}

		e.publishTriggered(ctx, wf, tctx)
	}

	err = errors.Join(errs...)
	otelhelper.SetError(span, err)

	return err
}

func (e *Engine) publishTriggered(ctx context.Context, wf *models.Workflow, tctx events.TriggerContext) {
	if e.eventBus == nil {
		return
	}

	event := events.WorkflowTriggered{
		BaseEvent:    events.NewBaseEvent(events.WorkflowTriggeredEvent),
		WorkflowID:   wf.ID,
		WorkflowName: wf.Name,
		TriggerType:  wf.Trigger.Type,
		Context:      tctx,
	}

	if err := e.eventBus.Publish(ctx, wf.ID, event); err != nil {
		e.logger.WarnContext(ctx, "Failed to publish workflow triggered event",
			"workflow_id", wf.ID, "error", err)
	}
}
