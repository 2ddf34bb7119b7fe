// Package persistence provides the data storage abstraction consumed by the
// workflow engine and the compliance analyzer.
package persistence

import (
	"context"
	"time"

	"github.com/hireline/hireline/pkg/models"
)

// Persistence exposes one typed repository per table plus lifecycle hooks.
// Every call operates within the adapter's own write-serialization; there is
// no transaction spanning multiple repository calls.
type Persistence interface {
	WorkflowRepository() WorkflowRepository
	CandidateRepository() CandidateRepository
	JobRepository() JobRepository
	ApplicationRepository() ApplicationRepository
	EEORepository() EEORepository
	EmailRepository() EmailRepository
	TaskRepository() TaskRepository
	NotificationRepository() NotificationRepository
	ActivityRepository() ActivityRepository
	DecisionRepository() DecisionRepository
	AuditRepository() AuditRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

type WorkflowRepository interface {
	GetAll(ctx context.Context) ([]*models.Workflow, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	Save(ctx context.Context, workflow *models.Workflow) error

	// ListActiveByTriggerType returns active workflows whose trigger type
	// matches. Scope filtering happens in the engine, not here.
	ListActiveByTriggerType(ctx context.Context, triggerType models.TriggerType) ([]*models.Workflow, error)

	// RecordTriggered increments the workflow's trigger counter and sets its
	// last-triggered timestamp. Last patch wins under concurrent checks.
	RecordTriggered(ctx context.Context, id string, at time.Time) error
}

type CandidateRepository interface {
	GetAll(ctx context.Context) ([]*models.Candidate, error)
	GetByID(ctx context.Context, id string) (*models.Candidate, error)
	Save(ctx context.Context, candidate *models.Candidate) error
}

type JobRepository interface {
	GetAll(ctx context.Context) ([]*models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Save(ctx context.Context, job *models.Job) error
}

type ApplicationRepository interface {
	Save(ctx context.Context, application *models.Application) error

	// ListByJob returns applications for the job whose applied-at timestamp
	// falls inside [from, to].
	ListByJob(ctx context.Context, jobID string, from, to time.Time) ([]*models.Application, error)
}

type EEORepository interface {
	// GetByCandidate returns ErrEEORecordNotFound when the candidate never
	// filed a voluntary self-report. Callers treat that as an absent record,
	// not a failure.
	GetByCandidate(ctx context.Context, candidateID string) (*models.EEORecord, error)
	Save(ctx context.Context, record *models.EEORecord) error
}

type EmailRepository interface {
	Save(ctx context.Context, email *models.EmailMessage) error
	ListByCandidate(ctx context.Context, candidateID string) ([]*models.EmailMessage, error)
}

type TaskRepository interface {
	Save(ctx context.Context, task *models.Task) error
	ListByCandidate(ctx context.Context, candidateID string) ([]*models.Task, error)
}

type NotificationRepository interface {
	Save(ctx context.Context, notification *models.Notification) error
}

type ActivityRepository interface {
	Save(ctx context.Context, entry *models.ActivityEntry) error
	ListByJob(ctx context.Context, jobID string) ([]*models.ActivityEntry, error)
}

type DecisionRepository interface {
	GetByID(ctx context.Context, id string) (*models.AIDecision, error)
	Save(ctx context.Context, decision *models.AIDecision) error

	// SaveReview attaches the single human review allowed per decision;
	// a second review returns ErrReviewAlreadyExists.
	SaveReview(ctx context.Context, decisionID string, review *models.HumanReview) error
}

type AuditRepository interface {
	Save(ctx context.Context, audit *models.BiasAudit) error

	// LatestByJob returns the most recent audit for the job, or the most
	// recent audit overall when jobID is empty.
	LatestByJob(ctx context.Context, jobID string) (*models.BiasAudit, error)
}
