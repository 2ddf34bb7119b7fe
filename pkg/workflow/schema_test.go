package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireline/hireline/pkg/models"
)

func validWorkflow() *models.Workflow {
	return &models.Workflow{
		Name: "Auto reject stale",
		Trigger: models.Trigger{
			Type:          models.TriggerStageDuration,
			StageDuration: &models.StageDurationCondition{MaxDays: 30},
		},
		Actions: []models.Action{
			{
				Type:         models.ActionChangeStatus,
				ChangeStatus: &models.ChangeStatusConfig{NewStatus: "rejected"},
			},
		},
	}
}

func TestValidateDefinition_Valid(t *testing.T) {
	assert.NoError(t, ValidateDefinition(validWorkflow()))
}

func TestValidateDefinition_ShortName(t *testing.T) {
	wf := validWorkflow()
	wf.Name = "ab"

	assert.Error(t, ValidateDefinition(wf))
}

func TestValidateDefinition_NoActions(t *testing.T) {
	wf := validWorkflow()
	wf.Actions = nil

	assert.Error(t, ValidateDefinition(wf))
}

func TestValidateDefinition_UnknownTriggerType(t *testing.T) {
	wf := validWorkflow()
	wf.Trigger = models.Trigger{Type: "webhook"}

	assert.Error(t, ValidateDefinition(wf))
}

func TestValidateDefinition_MissingVariantPayload(t *testing.T) {
	wf := validWorkflow()
	wf.Trigger = models.Trigger{Type: models.TriggerScoreThreshold}

	err := ValidateDefinition(wf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score_threshold")
}

func TestValidateDefinition_ActionVariantMismatch(t *testing.T) {
	wf := validWorkflow()
	wf.Actions = []models.Action{
		{
			Type:   models.ActionSendEmail,
			AddTag: &models.AddTagConfig{Tag: "oops"},
		},
	}

	assert.Error(t, ValidateDefinition(wf))
}
