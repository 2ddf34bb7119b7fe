package web

import (
	"time"

	"github.com/hireline/hireline/pkg/events"
	"github.com/hireline/hireline/pkg/models"
)

// TriggerRequest raises one trigger check.
type TriggerRequest struct {
	Type    models.TriggerType    `json:"type"    validate:"required,oneof=status_change time_based score_threshold stage_duration"`
	Context events.TriggerContext `json:"context"`
}

// CreateWorkflowRequest is the definition payload for a new workflow.
type CreateWorkflowRequest struct {
	Name        string          `json:"name"        validate:"required,min=3"`
	Description string          `json:"description"`
	Trigger     models.Trigger  `json:"trigger"     validate:"required"`
	Actions     []models.Action `json:"actions"     validate:"required,min=1"`
	Scope       models.Scope    `json:"scope"`
	IsActive    *bool           `json:"is_active"`
}

// FromTemplateRequest instantiates a catalog template.
type FromTemplateRequest struct {
	TemplateIndex *int         `json:"template_index" validate:"required"`
	Scope         models.Scope `json:"scope"`
}

// RunAuditRequest starts a bias audit. An empty job ID audits every job; a
// missing period defaults to the trailing 30 days.
type RunAuditRequest struct {
	JobID       string     `json:"job_id"`
	PeriodStart *time.Time `json:"period_start"`
	PeriodEnd   *time.Time `json:"period_end"`
}

// ReviewRequest attaches a human review to an AI decision.
type ReviewRequest struct {
	ReviewerID     string `json:"reviewer_id" validate:"required"`
	Agrees         bool   `json:"agrees"`
	OverrideReason string `json:"override_reason"`
}
