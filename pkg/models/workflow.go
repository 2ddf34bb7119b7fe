// Package models defines the core domain models for hiring workflow automation
// and EEOC compliance reporting.
package models

import "time"

// TriggerType enumerates the events that can activate a workflow.
type TriggerType string

const (
	TriggerStatusChange   TriggerType = "status_change"
	TriggerTimeBased      TriggerType = "time_based"
	TriggerScoreThreshold TriggerType = "score_threshold"
	TriggerStageDuration  TriggerType = "stage_duration"
)

// StatusChangeCondition matches a candidate status transition. A nil
// FromStatus or ToStatus matches only a context where the corresponding
// field is also absent.
type StatusChangeCondition struct {
	FromStatus *string `json:"from_status"`
	ToStatus   *string `json:"to_status"`
}

// TimeBasedCondition matches once the given number of minutes has elapsed
// since the context timestamp.
type TimeBasedCondition struct {
	AfterMinutes int `json:"after_minutes" validate:"min=1"`
}

// ScoreThresholdCondition matches when the context score reaches MinScore.
type ScoreThresholdCondition struct {
	MinScore float64 `json:"min_score"`
}

// StageDurationCondition matches once a candidate has sat in the current
// stage for at least MaxDays days.
type StageDurationCondition struct {
	MaxDays int `json:"max_days" validate:"min=1"`
}

// Trigger is a tagged union: Type selects which condition variant is set.
// Exactly one variant pointer should be non-nil.
type Trigger struct {
	Type           TriggerType              `json:"type"                      validate:"required"`
	StatusChange   *StatusChangeCondition   `json:"status_change,omitempty"`
	TimeBased      *TimeBasedCondition      `json:"time_based,omitempty"`
	ScoreThreshold *ScoreThresholdCondition `json:"score_threshold,omitempty"`
	StageDuration  *StageDurationCondition  `json:"stage_duration,omitempty"`
}

// Scope restricts which jobs and departments a workflow considers. Empty
// slices mean unrestricted.
type Scope struct {
	JobIDs      []string `json:"job_ids,omitempty"`
	Departments []string `json:"departments,omitempty"`
}

// AppliesTo reports whether the scope admits the given job and department.
func (s Scope) AppliesTo(jobID, department string) bool {
	if len(s.JobIDs) > 0 {
		found := false

		for _, id := range s.JobIDs {
			if id == jobID {
				found = true

				break
			}
		}

		if !found {
			return false
		}
	}

	if len(s.Departments) > 0 {
		found := false

		for _, d := range s.Departments {
			if d == department {
				found = true

				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// Workflow is an operator-configured automation rule: a trigger plus an
// ordered list of actions. Workflows are toggled active/inactive and their
// trigger counters are patched on every match; they are never deleted.
type Workflow struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"           validate:"required,min=3"`
	Description   string     `json:"description"`
	Trigger       Trigger    `json:"trigger"        validate:"required"`
	Actions       []Action   `json:"actions"        validate:"required,min=1"`
	Scope         Scope      `json:"scope"`
	IsActive      bool       `json:"is_active"`
	TriggerCount  int64      `json:"trigger_count"`
	LastTriggered *time.Time `json:"last_triggered,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
