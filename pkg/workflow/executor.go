package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hireline/hireline/pkg/events"
	"github.com/hireline/hireline/pkg/eventbus"
	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence"
	"github.com/hireline/hireline/pkg/template"
)

// DelayQueue defers an action for later execution. When no queue is
// configured the executor logs a notice and runs the action immediately.
type DelayQueue interface {
	Enqueue(ctx context.Context, workflowID string, action models.Action, tctx events.TriggerContext, due time.Time) error
}

// Executor performs a workflow's actions in list order. Actions run
// sequentially with no transaction spanning the list: a failure partway
// leaves earlier effects committed.
type Executor struct {
	persistence persistence.Persistence
	bus         eventbus.EventBus
	delayQueue  DelayQueue
	logger      *slog.Logger
	now         func() time.Time
}

// NewExecutor creates an action executor. bus and delayQueue may be nil.
func NewExecutor(p persistence.Persistence, bus eventbus.EventBus, delayQueue DelayQueue, logger *slog.Logger) *Executor {
	return &Executor{
		persistence: p,
		bus:         bus,
		delayQueue:  delayQueue,
		logger:      logger.With("module", "action_executor"),
		now:         time.Now,
	}
}

// Execute runs every action of the workflow against the context, in order.
// The first failing action aborts the remainder of this workflow's list;
// isolation across workflows is the engine's job.
func (e *Executor) Execute(ctx context.Context, workflow *models.Workflow, tctx events.TriggerContext) error {
	for i, action := range workflow.Actions {
		if action.DelayMinutes > 0 {
			if e.delayQueue != nil {
				due := e.now().Add(time.Duration(action.DelayMinutes) * time.Minute)

				err := e.delayQueue.Enqueue(ctx, workflow.ID, action, tctx, due)
				if err != nil {
					return fmt.Errorf("failed to enqueue delayed action %d: %w", i, err)
				}

				continue
			}

			e.logger.InfoContext(ctx, "No delay queue configured, executing delayed action immediately",
				"workflow_id", workflow.ID,
				"action_type", action.Type,
				"delay_minutes", action.DelayMinutes)
		}

		err := e.ExecuteAction(ctx, workflow.ID, action, tctx)
		if err != nil {
			return fmt.Errorf("action %d (%s) failed: %w", i, action.Type, err)
		}
	}

	return nil
}

// ExecuteAction runs a single action. Unrecognized action types are a
// silent no-op.
func (e *Executor) ExecuteAction(ctx context.Context, workflowID string, action models.Action, tctx events.TriggerContext) error {
	switch action.Type {
	case models.ActionSendEmail:
		if action.SendEmail == nil {
			return nil
		}

		return e.sendEmail(ctx, *action.SendEmail, tctx)
	case models.ActionChangeStatus:
		if action.ChangeStatus == nil {
			return nil
		}

		return e.changeStatus(ctx, *action.ChangeStatus, tctx)
	case models.ActionAssignTask:
		if action.AssignTask == nil {
			return nil
		}

		return e.assignTask(ctx, *action.AssignTask, tctx)
	case models.ActionAddTag:
		if action.AddTag == nil {
			return nil
		}

		return e.addTag(ctx, *action.AddTag, tctx)
	case models.ActionNotifyTeam:
		if action.NotifyTeam == nil {
			return nil
		}

		return e.notifyTeam(ctx, *action.NotifyTeam, tctx)
	default:
		e.logger.WarnContext(ctx, "Unknown action type, skipping",
			"workflow_id", workflowID,
			"action_type", action.Type)

		return nil
	}
}

// sendEmail persists an outbound email iff a non-empty recipient address
// resolves; otherwise it completes without effect.
func (e *Executor) sendEmail(ctx context.Context, cfg models.SendEmailConfig, tctx events.TriggerContext) error {
	address, err := e.resolveRecipient(ctx, cfg.To, tctx)
	if err != nil {
		return err
	}

	if address == "" {
		e.logger.DebugContext(ctx, "No recipient resolved, skipping email",
			"to", cfg.To,
			"candidate_id", tctx.CandidateID)

		return nil
	}

	email := &models.EmailMessage{
		ID:          uuid.New().String(),
		CandidateID: tctx.CandidateID,
		JobID:       tctx.JobID,
		TemplateID:  cfg.TemplateID,
		To:          address,
		Subject:     template.Substitute(cfg.Subject, tctx),
		Body:        template.Substitute(cfg.Body, tctx),
		Status:      models.EmailStatusSent,
		SentAt:      e.now(),
	}

	return e.persistence.EmailRepository().Save(ctx, email)
}

func (e *Executor) resolveRecipient(ctx context.Context, to models.RecipientKind, tctx events.TriggerContext) (string, error) {
	switch to {
	case models.RecipientCandidate:
		candidate, err := e.persistence.CandidateRepository().GetByID(ctx, tctx.CandidateID)
		if err != nil {
			return "", err
		}

		return candidate.Email, nil
	case models.RecipientHiringManager:
		job, err := e.persistence.JobRepository().GetByID(ctx, tctx.JobID)
		if err != nil {
			return "", err
		}

		manager := job.PrimaryTeamMember(models.RoleHiringManager)
		if manager == nil {
			return "", nil
		}

		return manager.Email, nil
	default:
		return "", nil
	}
}

func (e *Executor) changeStatus(ctx context.Context, cfg models.ChangeStatusConfig, tctx events.TriggerContext) error {
	candidates := e.persistence.CandidateRepository()

	candidate, err := candidates.GetByID(ctx, tctx.CandidateID)
	if err != nil {
		return err
	}

	now := e.now()
	candidate.Status = cfg.NewStatus
	candidate.EnteredStage = &now
	candidate.UpdatedAt = now
	candidate.Timeline = append(candidate.Timeline, models.TimelineEntry{
		At:   now,
		Kind: "status_change",
		Note: fmt.Sprintf("Status changed to %q by workflow automation", cfg.NewStatus),
	})

	return candidates.Save(ctx, candidate)
}

// assignTask creates a task for the job's primary team member of the
// configured role; no task is created when none is configured.
func (e *Executor) assignTask(ctx context.Context, cfg models.AssignTaskConfig, tctx events.TriggerContext) error {
	job, err := e.persistence.JobRepository().GetByID(ctx, tctx.JobID)
	if err != nil {
		return err
	}

	assignee := job.PrimaryTeamMember(cfg.AssignTo)
	if assignee == nil {
		e.logger.DebugContext(ctx, "No primary team member for role, skipping task",
			"role", cfg.AssignTo,
			"job_id", tctx.JobID)

		return nil
	}

	now := e.now()
	task := &models.Task{
		ID:          uuid.New().String(),
		CandidateID: tctx.CandidateID,
		JobID:       tctx.JobID,
		TaskType:    cfg.TaskType,
		AssigneeID:  assignee.UserID,
		Title:       template.Substitute(cfg.Title, tctx),
		Description: template.Substitute(cfg.Description, tctx),
		Priority:    cfg.Priority,
		DueDate:     now.Add(time.Duration(cfg.DueDays) * 24 * time.Hour),
		CreatedAt:   now,
	}

	return e.persistence.TaskRepository().Save(ctx, task)
}

// addTag appends the tag with set semantics.
func (e *Executor) addTag(ctx context.Context, cfg models.AddTagConfig, tctx events.TriggerContext) error {
	candidates := e.persistence.CandidateRepository()

	candidate, err := candidates.GetByID(ctx, tctx.CandidateID)
	if err != nil {
		return err
	}

	if candidate.HasTag(cfg.Tag) {
		return nil
	}

	candidate.Tags = append(candidate.Tags, cfg.Tag)
	candidate.UpdatedAt = e.now()

	return candidates.Save(ctx, candidate)
}

// notifyTeam emits one notification plus one activity entry per hiring-team
// member whose role is listed, then publishes a team.notified event.
func (e *Executor) notifyTeam(ctx context.Context, cfg models.NotifyTeamConfig, tctx events.TriggerContext) error {
	job, err := e.persistence.JobRepository().GetByID(ctx, tctx.JobID)
	if err != nil {
		return err
	}

	message := template.Substitute(cfg.Message, tctx)
	members := job.MembersWithRoles(cfg.NotifyRoles)
	recipients := make([]string, 0, len(members))
	now := e.now()

	for _, member := range members {
		notification := &models.Notification{
			ID:          uuid.New().String(),
			UserID:      member.UserID,
			CandidateID: tctx.CandidateID,
			JobID:       tctx.JobID,
			Message:     message,
			CreatedAt:   now,
		}

		err := e.persistence.NotificationRepository().Save(ctx, notification)
		if err != nil {
			return err
		}

		entry := &models.ActivityEntry{
			ID:          uuid.New().String(),
			JobID:       tctx.JobID,
			CandidateID: tctx.CandidateID,
			UserID:      member.UserID,
			Kind:        "team_notification",
			Message:     message,
			CreatedAt:   now,
		}

		err = e.persistence.ActivityRepository().Save(ctx, entry)
		if err != nil {
			return err
		}

		recipients = append(recipients, member.UserID)
	}

	if e.bus != nil && len(recipients) > 0 {
		event := events.TeamNotified{
			BaseEvent:  events.NewBaseEvent(events.TeamNotifiedEvent),
			JobID:      tctx.JobID,
			Message:    message,
			Recipients: recipients,
		}

		err := e.bus.Publish(ctx, tctx.JobID, event)
		if err != nil {
			e.logger.WarnContext(ctx, "Failed to publish team notification event", "error", err)
		}
	}

	return nil
}
