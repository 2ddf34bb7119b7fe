// Package events defines event types published on the internal bus and the
// typed context raised with every trigger check.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/hireline/hireline/pkg/models"
)

type EventType string

// Bus topic shared by all hireline events.
const Topic = "hireline.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	WorkflowTriggeredEvent EventType = "workflow.triggered"
	TeamNotifiedEvent      EventType = "team.notified"
	AuditCompletedEvent    EventType = "audit.completed"
)

// Event is anything publishable on the bus.
type Event interface {
	GetType() EventType
}

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}

// TriggerContext carries the fields a trigger condition and action configs
// read. Pointer fields are absent when the raising caller has no value for
// them; the evaluator fails closed on a missing field it needs.
type TriggerContext struct {
	CandidateID   string     `json:"candidate_id"`
	JobID         string     `json:"job_id"`
	Department    string     `json:"department,omitempty"`
	FromStatus    *string    `json:"from_status,omitempty"`
	ToStatus      *string    `json:"to_status,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
	Score         *float64   `json:"score,omitempty"`
	EnteredStage  *time.Time `json:"entered_stage,omitempty"`
	CandidateName string     `json:"candidate_name,omitempty"`
	JobTitle      string     `json:"job_title,omitempty"`
	CompanyName   string     `json:"company_name,omitempty"`
	Days          int        `json:"days,omitempty"`
}

// WorkflowTriggered is published for every workflow whose trigger matched.
type WorkflowTriggered struct {
	BaseEvent

	WorkflowID   string             `json:"workflow_id"`
	WorkflowName string             `json:"workflow_name"`
	TriggerType  models.TriggerType `json:"trigger_type"`
	Context      TriggerContext     `json:"context"`
}

func (w WorkflowTriggered) GetType() EventType {
	return WorkflowTriggeredEvent
}

// TeamNotified is published once per notify_team action run.
type TeamNotified struct {
	BaseEvent

	JobID      string   `json:"job_id"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

func (t TeamNotified) GetType() EventType {
	return TeamNotifiedEvent
}

// AuditCompleted is published when a bias audit run is persisted.
type AuditCompleted struct {
	BaseEvent

	AuditID   string `json:"audit_id"`
	JobID     string `json:"job_id"`
	Compliant bool   `json:"compliant"`
}

func (a AuditCompleted) GetType() EventType {
	return AuditCompletedEvent
}
