package file

import (
	"context"
	"time"

	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence"
)

const workflowsTable = "workflows"

type workflowRepository struct {
	fp *Persistence
}

func (r *workflowRepository) GetAll(ctx context.Context) ([]*models.Workflow, error) {
	return listDocs[models.Workflow](r.fp, workflowsTable)
}

func (r *workflowRepository) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	return readDoc[models.Workflow](r.fp, workflowsTable, id, persistence.ErrWorkflowNotFound)
}

func (r *workflowRepository) Save(ctx context.Context, workflow *models.Workflow) error {
	return writeDoc(r.fp, workflowsTable, workflow.ID, workflow)
}

func (r *workflowRepository) ListActiveByTriggerType(ctx context.Context, triggerType models.TriggerType) ([]*models.Workflow, error) {
	all, err := listDocs[models.Workflow](r.fp, workflowsTable)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Workflow, 0)

	for _, w := range all {
		if w.IsActive && w.Trigger.Type == triggerType {
			matched = append(matched, w)
		}
	}

	return matched, nil
}

func (r *workflowRepository) RecordTriggered(ctx context.Context, id string, at time.Time) error {
	r.fp.mu.Lock()
	defer r.fp.mu.Unlock()

	workflow, err := readDocLocked[models.Workflow](r.fp, workflowsTable, id, persistence.ErrWorkflowNotFound)
	if err != nil {
		return err
	}

	workflow.TriggerCount++
	workflow.LastTriggered = &at
	workflow.UpdatedAt = at

	return writeDocLocked(r.fp, workflowsTable, id, workflow)
}
