package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireline/hireline/pkg/models"
)

func TestTemplates_CatalogIsComplete(t *testing.T) {
	templates := Templates()
	require.Len(t, templates, 4)

	for _, tpl := range templates {
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Actions)
		assert.NoError(t, validateTrigger(tpl.Trigger))

		for _, action := range tpl.Actions {
			assert.NoError(t, validateAction(action))
		}
	}
}

func TestFromTemplate_HighScoreFastTrack(t *testing.T) {
	scope := models.Scope{JobIDs: []string{"job-1"}}

	wf, err := FromTemplate(2, scope)
	require.NoError(t, err)

	assert.NotEmpty(t, wf.ID)
	assert.Equal(t, "High-score fast track", wf.Name)
	assert.True(t, wf.IsActive)
	assert.Equal(t, scope, wf.Scope)

	require.Equal(t, models.TriggerScoreThreshold, wf.Trigger.Type)
	require.NotNil(t, wf.Trigger.ScoreThreshold)
	assert.InEpsilon(t, 90.0, wf.Trigger.ScoreThreshold.MinScore, 0.0001)

	require.Len(t, wf.Actions, 3)
	require.NotNil(t, wf.Actions[0].ChangeStatus)
	assert.Equal(t, "interview", wf.Actions[0].ChangeStatus.NewStatus)
	require.NotNil(t, wf.Actions[1].AddTag)
	assert.Equal(t, "high_potential", wf.Actions[1].AddTag.Tag)
	assert.Equal(t, models.ActionNotifyTeam, wf.Actions[2].Type)
}

func TestFromTemplate_DistinctInstances(t *testing.T) {
	first, err := FromTemplate(0, models.Scope{})
	require.NoError(t, err)

	second, err := FromTemplate(0, models.Scope{})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestFromTemplate_UnknownIndex(t *testing.T) {
	_, err := FromTemplate(4, models.Scope{})
	assert.Error(t, err)

	_, err = FromTemplate(-1, models.Scope{})
	assert.Error(t, err)
}
