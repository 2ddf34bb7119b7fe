package models

import "time"

// GroupRate is the selection rate computed for one demographic group.
type GroupRate struct {
	Category      DemographicCategory `json:"category"`
	Group         string              `json:"group"`
	Total         int                 `json:"total"`
	Approved      int                 `json:"approved"`
	SelectionRate float64             `json:"selection_rate"`
}

// ImpactRatio compares one group's selection rate against the reference
// group (the highest-rate group within the same category).
type ImpactRatio struct {
	Category         DemographicCategory `json:"category"`
	Group            string              `json:"group"`
	ReferenceGroup   string              `json:"reference_group"`
	Ratio            float64             `json:"ratio"`
	PassesFourFifths bool                `json:"passes_four_fifths"`
}

// BiasAuditStatus is the review state of a persisted audit.
type BiasAuditStatus string

const (
	BiasAuditDraft     BiasAuditStatus = "draft"
	BiasAuditPublished BiasAuditStatus = "published"
)

// BiasAudit is a persisted snapshot of one compliance computation.
type BiasAudit struct {
	ID                   string          `json:"id"`
	JobID                string          `json:"job_id"`
	PeriodStart          time.Time       `json:"period_start"`
	PeriodEnd            time.Time       `json:"period_end"`
	TotalApplicants      int             `json:"total_applicants"`
	OverallSelectionRate float64         `json:"overall_selection_rate"`
	GroupRates           []GroupRate     `json:"group_rates"`
	ImpactRatios         []ImpactRatio   `json:"impact_ratios"`
	FourFifthsCompliant  bool            `json:"four_fifths_compliant"`
	Recommendations      []string        `json:"recommendations"`
	Status               BiasAuditStatus `json:"status"`
	CreatedAt            time.Time       `json:"created_at"`
}

// HumanReview annotates an AI decision once. At most one review exists per
// decision.
type HumanReview struct {
	ReviewerID     string    `json:"reviewer_id" validate:"required"`
	ReviewedAt     time.Time `json:"reviewed_at"`
	Agrees         bool      `json:"agrees"`
	OverrideReason string    `json:"override_reason,omitempty"`
}

// AIDecision is an immutable audit record of one automated scoring or
// ranking decision. AttributesMasked confirms protected attributes were
// removed from the model input.
type AIDecision struct {
	ID               string       `json:"id"`
	CandidateID      string       `json:"candidate_id" validate:"required"`
	JobID            string       `json:"job_id"       validate:"required"`
	DecisionType     string       `json:"decision_type" validate:"required"`
	Model            string       `json:"model"        validate:"required"`
	ModelVersion     string       `json:"model_version"`
	Input            string       `json:"input"`
	Output           string       `json:"output"`
	Score            *float64     `json:"score,omitempty"`
	Reasoning        string       `json:"reasoning"`
	AttributesMasked bool         `json:"attributes_masked"`
	Review           *HumanReview `json:"review,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}
