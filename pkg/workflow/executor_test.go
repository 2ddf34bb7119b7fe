package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hireline/hireline/pkg/events"
	"github.com/hireline/hireline/pkg/log"
	"github.com/hireline/hireline/pkg/mocks"
	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence/file"
)

func seedPipeline(t *testing.T, p *file.Persistence) {
	t.Helper()

	job := &models.Job{
		ID:         "job-1",
		Title:      "Backend Engineer",
		Department: "engineering",
		Company:    "Acme",
		HiringTeam: []models.TeamMember{
			{UserID: "u-recruiter", Name: "Rae", Email: "rae@acme.test", Role: models.RoleRecruiter, IsPrimary: true},
			{UserID: "u-manager", Name: "Max", Email: "max@acme.test", Role: models.RoleHiringManager, IsPrimary: true},
		},
	}
	require.NoError(t, p.JobRepository().Save(t.Context(), job))

	candidate := &models.Candidate{
		ID:     "cand-1",
		JobID:  "job-1",
		Name:   "Jordan Low",
		Email:  "jordan@example.test",
		Status: "screening",
	}
	require.NoError(t, p.CandidateRepository().Save(t.Context(), candidate))
}

func testContext() events.TriggerContext {
	return events.TriggerContext{
		CandidateID:   "cand-1",
		JobID:         "job-1",
		Department:    "engineering",
		Timestamp:     time.Now().UTC(),
		CandidateName: "Jordan Low",
		JobTitle:      "Backend Engineer",
		CompanyName:   "Acme",
	}
}

func TestExecutor_ChangeStatusAndAddTag(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	seedPipeline(t, p)

	executor := NewExecutor(p, nil, nil, log.WithModule("test"))

	wf := &models.Workflow{
		ID: "wf-1",
		Actions: []models.Action{
			{Type: models.ActionChangeStatus, ChangeStatus: &models.ChangeStatusConfig{NewStatus: "interview"}},
			{Type: models.ActionAddTag, AddTag: &models.AddTagConfig{Tag: "high_potential"}},
		},
	}

	require.NoError(t, executor.Execute(t.Context(), wf, testContext()))

	candidate, err := p.CandidateRepository().GetByID(t.Context(), "cand-1")
	require.NoError(t, err)

	assert.Equal(t, "interview", candidate.Status)
	assert.NotNil(t, candidate.EnteredStage)
	assert.Contains(t, candidate.Tags, "high_potential")
	require.NotEmpty(t, candidate.Timeline)
	assert.Equal(t, "status_change", candidate.Timeline[len(candidate.Timeline)-1].Kind)
}

func TestExecutor_AddTagIsSetSemantics(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	seedPipeline(t, p)

	executor := NewExecutor(p, nil, nil, log.WithModule("test"))
	action := models.Action{Type: models.ActionAddTag, AddTag: &models.AddTagConfig{Tag: "referred"}}

	require.NoError(t, executor.ExecuteAction(t.Context(), "wf-1", action, testContext()))
	require.NoError(t, executor.ExecuteAction(t.Context(), "wf-1", action, testContext()))

	candidate, err := p.CandidateRepository().GetByID(t.Context(), "cand-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"referred"}, candidate.Tags)
}

func TestExecutor_SendEmailSubstitutesPlaceholders(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	seedPipeline(t, p)

	executor := NewExecutor(p, nil, nil, log.WithModule("test"))
	action := models.Action{
		Type: models.ActionSendEmail,
		SendEmail: &models.SendEmailConfig{
			To:      models.RecipientCandidate,
			Subject: "Update on {{jobTitle}}",
			Body:    "Hi {{candidateName}}, thanks for applying to {{companyName}}.",
		},
	}

	require.NoError(t, executor.ExecuteAction(t.Context(), "wf-1", action, testContext()))

	emails, err := p.EmailRepository().ListByCandidate(t.Context(), "cand-1")
	require.NoError(t, err)
	require.Len(t, emails, 1)

	assert.Equal(t, "jordan@example.test", emails[0].To)
	assert.Equal(t, "Update on Backend Engineer", emails[0].Subject)
	assert.Equal(t, "Hi Jordan Low, thanks for applying to Acme.", emails[0].Body)
	assert.Equal(t, models.EmailStatusSent, emails[0].Status)
}

func TestExecutor_AssignTaskToPrimaryMember(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	seedPipeline(t, p)

	executor := NewExecutor(p, nil, nil, log.WithModule("test"))
	action := models.Action{
		Type: models.ActionAssignTask,
		AssignTask: &models.AssignTaskConfig{
			TaskType: "review_application",
			AssignTo: models.RoleRecruiter,
			Title:    "Review {{candidateName}}",
			DueDays:  2,
		},
	}

	require.NoError(t, executor.ExecuteAction(t.Context(), "wf-1", action, testContext()))

	tasks, err := p.TaskRepository().ListByCandidate(t.Context(), "cand-1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, "u-recruiter", tasks[0].AssigneeID)
	assert.Equal(t, "review_application", tasks[0].TaskType)
	assert.Equal(t, "Review Jordan Low", tasks[0].Title)
	assert.WithinDuration(t, time.Now().Add(48*time.Hour), tasks[0].DueDate, time.Minute)
}

func seedUnstaffedPipeline(t *testing.T, p *file.Persistence) {
	t.Helper()

	job := &models.Job{
		ID:    "job-2",
		Title: "Data Analyst",
		HiringTeam: []models.TeamMember{
			{UserID: "u-backup", Name: "Sam", Email: "sam@acme.test", Role: models.RoleRecruiter, IsPrimary: false},
		},
	}
	require.NoError(t, p.JobRepository().Save(t.Context(), job))

	candidate := &models.Candidate{
		ID:     "cand-2",
		JobID:  "job-2",
		Name:   "Avery North",
		Email:  "avery@example.test",
		Status: "screening",
	}
	require.NoError(t, p.CandidateRepository().Save(t.Context(), candidate))
}

func unstaffedContext() events.TriggerContext {
	return events.TriggerContext{
		CandidateID:   "cand-2",
		JobID:         "job-2",
		Timestamp:     time.Now().UTC(),
		CandidateName: "Avery North",
		JobTitle:      "Data Analyst",
	}
}

func TestExecutor_AssignTaskWithoutPrimaryMemberIsNoOp(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	seedUnstaffedPipeline(t, p)

	executor := NewExecutor(p, nil, nil, log.WithModule("test"))
	action := models.Action{
		Type: models.ActionAssignTask,
		AssignTask: &models.AssignTaskConfig{
			TaskType: "collect_feedback",
			AssignTo: models.RoleRecruiter,
			Title:    "Collect feedback",
			DueDays:  2,
		},
	}

	// No primary recruiter on the job: nothing is created and no error
	// is reported.
	require.NoError(t, executor.ExecuteAction(t.Context(), "wf-1", action, unstaffedContext()))

	tasks, err := p.TaskRepository().ListByCandidate(t.Context(), "cand-2")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestExecutor_SendEmailWithoutHiringManagerIsNoOp(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	seedUnstaffedPipeline(t, p)

	executor := NewExecutor(p, nil, nil, log.WithModule("test"))
	action := models.Action{
		Type: models.ActionSendEmail,
		SendEmail: &models.SendEmailConfig{
			To:      models.RecipientHiringManager,
			Subject: "New applicant",
			Body:    "{{candidateName}} applied.",
		},
	}

	require.NoError(t, executor.ExecuteAction(t.Context(), "wf-1", action, unstaffedContext()))

	emails, err := p.EmailRepository().ListByCandidate(t.Context(), "cand-2")
	require.NoError(t, err)
	assert.Empty(t, emails)
}

func TestExecutor_NotifyTeamFansOutAndPublishes(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	seedPipeline(t, p)

	bus := &mocks.MockEventBus{}
	bus.On("Publish", mock.Anything, "job-1", mock.AnythingOfType("events.TeamNotified")).Return(nil)

	executor := NewExecutor(p, bus, nil, log.WithModule("test"))
	action := models.Action{
		Type: models.ActionNotifyTeam,
		NotifyTeam: &models.NotifyTeamConfig{
			Message:     "{{candidateName}} applied for {{jobTitle}}",
			NotifyRoles: []models.TeamRole{models.RoleRecruiter, models.RoleHiringManager},
		},
	}

	require.NoError(t, executor.ExecuteAction(t.Context(), "wf-1", action, testContext()))

	activity, err := p.ActivityRepository().ListByJob(t.Context(), "job-1")
	require.NoError(t, err)
	assert.Len(t, activity, 2)
	assert.Equal(t, "Jordan Low applied for Backend Engineer", activity[0].Message)

	bus.AssertExpectations(t)
}

func TestExecutor_UnknownActionTypeIsNoOp(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	seedPipeline(t, p)

	executor := NewExecutor(p, nil, nil, log.WithModule("test"))
	action := models.Action{Type: "post_webhook"}

	assert.NoError(t, executor.ExecuteAction(t.Context(), "wf-1", action, testContext()))
}

func TestExecutor_DelayWithoutQueueRunsImmediately(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	seedPipeline(t, p)

	executor := NewExecutor(p, nil, nil, log.WithModule("test"))

	wf := &models.Workflow{
		ID: "wf-1",
		Actions: []models.Action{
			{
				Type:         models.ActionAddTag,
				DelayMinutes: 15,
				AddTag:       &models.AddTagConfig{Tag: "follow_up"},
			},
		},
	}

	require.NoError(t, executor.Execute(t.Context(), wf, testContext()))

	candidate, err := p.CandidateRepository().GetByID(t.Context(), "cand-1")
	require.NoError(t, err)
	assert.Contains(t, candidate.Tags, "follow_up")
}
