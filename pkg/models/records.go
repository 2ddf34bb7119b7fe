package models

import "time"

// EmailStatus values for persisted outbound email.
const (
	EmailStatusSent   = "sent"
	EmailStatusQueued = "queued"
)

// EmailMessage is an outbound email persisted by the send_email action.
type EmailMessage struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate_id"`
	JobID       string    `json:"job_id"`
	TemplateID  string    `json:"template_id"`
	To          string    `json:"to"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Status      string    `json:"status"`
	SentAt      time.Time `json:"sent_at"`
}

// Task is a work item created by the assign_task action.
type Task struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate_id"`
	JobID       string    `json:"job_id"`
	TaskType    string    `json:"task_type"`
	AssigneeID  string    `json:"assignee_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notification is a per-member message created by the notify_team action.
type Notification struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CandidateID string    `json:"candidate_id"`
	JobID       string    `json:"job_id"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityEntry is one row in a job's activity feed.
type ActivityEntry struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	UserID      string    `json:"user_id,omitempty"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}
