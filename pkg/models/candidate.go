package models

import "time"

// TimelineEntry records one event in a candidate's history.
type TimelineEntry struct {
	At   time.Time `json:"at"`
	Kind string    `json:"kind"`
	Note string    `json:"note"`
}

// Candidate is a person in the hiring pipeline for one job.
type Candidate struct {
	ID           string          `json:"id"`
	JobID        string          `json:"job_id"`
	Name         string          `json:"name"  validate:"required"`
	Email        string          `json:"email" validate:"omitempty,email"`
	Status       string          `json:"status"`
	Tags         []string        `json:"tags,omitempty"`
	Timeline     []TimelineEntry `json:"timeline,omitempty"`
	EnteredStage *time.Time      `json:"entered_stage,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// HasTag reports whether the candidate already carries the tag.
func (c *Candidate) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

// TeamMember is one member of a job's hiring team.
type TeamMember struct {
	UserID    string   `json:"user_id"`
	Name      string   `json:"name"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Role      TeamRole `json:"role"`
	IsPrimary bool     `json:"is_primary"`
}

// Job is an open position with a hiring team.
type Job struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"      validate:"required"`
	Department string       `json:"department"`
	Company    string       `json:"company"`
	HiringTeam []TeamMember `json:"hiring_team,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// PrimaryTeamMember returns the team member marked primary for the role,
// or nil when none is configured.
func (j *Job) PrimaryTeamMember(role TeamRole) *TeamMember {
	for i := range j.HiringTeam {
		m := &j.HiringTeam[i]
		if m.Role == role && m.IsPrimary {
			return m
		}
	}

	return nil
}

// MembersWithRoles returns every hiring-team member whose role is listed.
func (j *Job) MembersWithRoles(roles []TeamRole) []TeamMember {
	members := make([]TeamMember, 0)

	for _, m := range j.HiringTeam {
		for _, r := range roles {
			if m.Role == r {
				members = append(members, m)

				break
			}
		}
	}

	return members
}

// ApplicationStatus values used by the compliance pipeline. "approved" is
// the selection outcome the four-fifths computation counts.
const (
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
	ApplicationPending  = "pending"
)

// Application links a candidate to a job with an outcome.
type Application struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate_id" validate:"required"`
	JobID       string    `json:"job_id"       validate:"required"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}
