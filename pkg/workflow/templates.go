package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hireline/hireline/pkg/models"
)

// Template is a prebuilt workflow definition operators instantiate instead of
// authoring trigger and action payloads by hand.
type Template struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Trigger     models.Trigger  `json:"trigger"`
	Actions     []models.Action `json:"actions"`
}

var templateCatalog = []Template{
	{
		Name:        "Auto-reject stale applications",
		Description: "Rejects candidates who have sat in their current stage for 30 days and sends a closing email.",
		Trigger: models.Trigger{
			Type:          models.TriggerStageDuration,
			StageDuration: &models.StageDurationCondition{MaxDays: 30},
		},
		Actions: []models.Action{
			{
				Type:         models.ActionChangeStatus,
				ChangeStatus: &models.ChangeStatusConfig{NewStatus: "rejected"},
			},
			{
				Type: models.ActionSendEmail,
				SendEmail: &models.SendEmailConfig{
					TemplateID: "rejection",
					To:         models.RecipientCandidate,
					Subject:    "Update on your application for {{jobTitle}}",
					Body:       "Hi {{candidateName}},\n\nThank you for your interest in {{jobTitle}} at {{companyName}}. After {{days}} days we have decided not to move forward with your application.",
				},
			},
		},
	},
	{
		Name:        "Post-interview follow-up",
		Description: "Thanks the candidate after an interview and reminds the recruiter to collect feedback.",
		Trigger: models.Trigger{
			Type: models.TriggerStatusChange,
			StatusChange: &models.StatusChangeCondition{
				FromStatus: strPtr("interview"),
				ToStatus:   strPtr("interview_complete"),
			},
		},
		Actions: []models.Action{
			{
				Type: models.ActionSendEmail,
				SendEmail: &models.SendEmailConfig{
					TemplateID: "interview_follow_up",
					To:         models.RecipientCandidate,
					Subject:    "Thank you for interviewing with {{companyName}}",
					Body:       "Hi {{candidateName}},\n\nThank you for taking the time to interview for {{jobTitle}}. We will be in touch with next steps shortly.",
				},
			},
			{
				Type: models.ActionAssignTask,
				AssignTask: &models.AssignTaskConfig{
					TaskType:    "collect_feedback",
					AssignTo:    models.RoleRecruiter,
					Title:       "Collect interview feedback for {{candidateName}}",
					Description: "Gather scorecards from the interview panel for {{jobTitle}}.",
					Priority:    "high",
					DueDays:     2,
				},
			},
		},
	},
	{
		Name:        "High-score fast track",
		Description: "Moves candidates scoring 90 or above straight to the interview stage and flags them for the team.",
		Trigger: models.Trigger{
			Type:           models.TriggerScoreThreshold,
			ScoreThreshold: &models.ScoreThresholdCondition{MinScore: 90},
		},
		Actions: []models.Action{
			{
				Type:         models.ActionChangeStatus,
				ChangeStatus: &models.ChangeStatusConfig{NewStatus: "interview"},
			},
			{
				Type:   models.ActionAddTag,
				AddTag: &models.AddTagConfig{Tag: "high_potential"},
			},
			{
				Type: models.ActionNotifyTeam,
				NotifyTeam: &models.NotifyTeamConfig{
					Message:     "{{candidateName}} scored in the top band for {{jobTitle}} and was fast-tracked to interview.",
					NotifyRoles: []models.TeamRole{models.RoleRecruiter, models.RoleHiringManager},
				},
			},
		},
	},
	{
		Name:        "New application notification",
		Description: "Tells the hiring team whenever a new application arrives.",
		Trigger: models.Trigger{
			Type: models.TriggerStatusChange,
			StatusChange: &models.StatusChangeCondition{
				ToStatus: strPtr("applied"),
			},
		},
		Actions: []models.Action{
			{
				Type: models.ActionNotifyTeam,
				NotifyTeam: &models.NotifyTeamConfig{
					Message:     "{{candidateName}} just applied for {{jobTitle}}.",
					NotifyRoles: []models.TeamRole{models.RoleRecruiter},
				},
			},
		},
	},
}

// Templates returns the catalog. Callers must not mutate the returned slice.
func Templates() []Template {
	return templateCatalog
}

// FromTemplate instantiates the catalog entry at index as a fresh, active
// workflow restricted to scope.
func FromTemplate(index int, scope models.Scope) (*models.Workflow, error) {
	if index < 0 || index >= len(templateCatalog) {
		return nil, fmt.Errorf("unknown workflow template index %d", index)
	}

	tpl := templateCatalog[index]
	now := time.Now().UTC()

	actions := make([]models.Action, len(tpl.Actions))
	copy(actions, tpl.Actions)

	return &models.Workflow{
		ID:          uuid.New().String(),
		Name:        tpl.Name,
		Description: tpl.Description,
		Trigger:     tpl.Trigger,
		Actions:     actions,
		Scope:       scope,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func strPtr(s string) *string {
	return &s
}
