package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hireline/hireline/pkg/events"
	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence"
	"github.com/hireline/hireline/pkg/workflow"
)

// WorkflowService validates and persists workflow definitions and raises
// trigger checks against the engine.
type WorkflowService struct {
	persistence persistence.Persistence
	engine      *workflow.Engine
	validator   *validator.Validate
	logger      *slog.Logger
}

func NewWorkflowService(p persistence.Persistence, engine *workflow.Engine, logger *slog.Logger) *WorkflowService {
	return &WorkflowService{
		persistence: p,
		engine:      engine,
		validator:   validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger.With("module", "workflow_service"),
	}
}

// Create validates and stores a new workflow. New workflows start active
// unless the definition says otherwise.
func (s *WorkflowService) Create(ctx context.Context, wf *models.Workflow) (*models.Workflow, error) {
	now := time.Now().UTC()
	wf.ID = uuid.New().String()
	wf.TriggerCount = 0
	wf.LastTriggered = nil
	wf.CreatedAt = now
	wf.UpdatedAt = now

	if err := s.validator.Struct(wf); err != nil {
		return nil, invalidInput(err)
	}

	if err := workflow.ValidateDefinition(wf); err != nil {
		return nil, invalidInput(err)
	}

	if err := s.persistence.WorkflowRepository().Save(ctx, wf); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Workflow created", "workflow_id", wf.ID, "name", wf.Name)

	return wf, nil
}

// CreateFromTemplate instantiates a catalog template and stores it.
func (s *WorkflowService) CreateFromTemplate(ctx context.Context, index int, scope models.Scope) (*models.Workflow, error) {
	wf, err := workflow.FromTemplate(index, scope)
	if err != nil {
		return nil, invalidInput(err)
	}

	if err := s.persistence.WorkflowRepository().Save(ctx, wf); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Workflow created from template",
		"workflow_id", wf.ID, "template_index", index)

	return wf, nil
}

// List returns all workflows, narrowed to those whose scope admits the
// given job and department when either filter is set.
func (s *WorkflowService) List(ctx context.Context, jobID, department string) ([]*models.Workflow, error) {
	workflows, err := s.persistence.WorkflowRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if jobID == "" && department == "" {
		return workflows, nil
	}

	matched := make([]*models.Workflow, 0, len(workflows))

	for _, wf := range workflows {
		if wf.Scope.AppliesTo(jobID, department) {
			matched = append(matched, wf)
		}
	}

	return matched, nil
}

func (s *WorkflowService) Get(ctx context.Context, id string) (*models.Workflow, error) {
	return s.persistence.WorkflowRepository().GetByID(ctx, id)
}

// SetActive toggles a workflow. Toggling preserves the trigger counter.
func (s *WorkflowService) SetActive(ctx context.Context, id string, active bool) (*models.Workflow, error) {
	wf, err := s.persistence.WorkflowRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wf.IsActive = active
	wf.UpdatedAt = time.Now().UTC()

	if err := s.persistence.WorkflowRepository().Save(ctx, wf); err != nil {
		return nil, err
	}

	return wf, nil
}

// Trigger enriches the context with candidate and job display fields when
// the caller omitted them, then runs a trigger check.
func (s *WorkflowService) Trigger(ctx context.Context, triggerType models.TriggerType, tctx events.TriggerContext) error {
	if tctx.CandidateID == "" {
		return invalidInput(errors.New("candidate_id is required"))
	}

	if tctx.Timestamp.IsZero() {
		tctx.Timestamp = time.Now().UTC()
	}

	s.enrich(ctx, &tctx)

	return s.engine.CheckTriggers(ctx, triggerType, tctx)
}

func (s *WorkflowService) enrich(ctx context.Context, tctx *events.TriggerContext) {
	if tctx.CandidateName == "" {
		candidate, err := s.persistence.CandidateRepository().GetByID(ctx, tctx.CandidateID)
		if err == nil {
			tctx.CandidateName = candidate.Name

			if tctx.JobID == "" {
				tctx.JobID = candidate.JobID
			}

			if tctx.EnteredStage == nil {
				tctx.EnteredStage = candidate.EnteredStage
			}
		}
	}

	if tctx.JobID == "" {
		return
	}

	if tctx.JobTitle == "" || tctx.Department == "" {
		job, err := s.persistence.JobRepository().GetByID(ctx, tctx.JobID)
		if err == nil {
			if tctx.JobTitle == "" {
				tctx.JobTitle = job.Title
			}

			if tctx.Department == "" {
				tctx.Department = job.Department
			}

			if tctx.CompanyName == "" {
				tctx.CompanyName = job.Company
			}
		}
	}
}
