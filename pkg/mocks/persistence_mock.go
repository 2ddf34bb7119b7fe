// Package mocks provides testify mocks for the persistence and event bus
// interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence"
)

// MockPersistence is a mock implementation of persistence.Persistence. Each
// repository accessor returns the corresponding field, so tests wire only
// the repositories they touch.
type MockPersistence struct {
	mock.Mock

	Workflows     *MockWorkflowRepository
	Candidates    *MockCandidateRepository
	Jobs          *MockJobRepository
	Applications  *MockApplicationRepository
	EEORecords    *MockEEORepository
	Emails        *MockEmailRepository
	Tasks         *MockTaskRepository
	Notifications *MockNotificationRepository
	Activity      *MockActivityRepository
	Decisions     *MockDecisionRepository
	Audits        *MockAuditRepository
}

// NewMockPersistence creates a MockPersistence with every repository mock
// initialized.
func NewMockPersistence() *MockPersistence {
	return &MockPersistence{
		Workflows:     &MockWorkflowRepository{},
		Candidates:    &MockCandidateRepository{},
		Jobs:          &MockJobRepository{},
		Applications:  &MockApplicationRepository{},
		EEORecords:    &MockEEORepository{},
		Emails:        &MockEmailRepository{},
		Tasks:         &MockTaskRepository{},
		Notifications: &MockNotificationRepository{},
		Activity:      &MockActivityRepository{},
		Decisions:     &MockDecisionRepository{},
		Audits:        &MockAuditRepository{},
	}
}

func (m *MockPersistence) WorkflowRepository() persistence.WorkflowRepository {
	return m.Workflows
}

func (m *MockPersistence) CandidateRepository() persistence.CandidateRepository {
	return m.Candidates
}

func (m *MockPersistence) JobRepository() persistence.JobRepository {
	return m.Jobs
}

func (m *MockPersistence) ApplicationRepository() persistence.ApplicationRepository {
	return m.Applications
}

func (m *MockPersistence) EEORepository() persistence.EEORepository {
	return m.EEORecords
}

func (m *MockPersistence) EmailRepository() persistence.EmailRepository {
	return m.Emails
}

func (m *MockPersistence) TaskRepository() persistence.TaskRepository {
	return m.Tasks
}

func (m *MockPersistence) NotificationRepository() persistence.NotificationRepository {
	return m.Notifications
}

func (m *MockPersistence) ActivityRepository() persistence.ActivityRepository {
	return m.Activity
}

func (m *MockPersistence) DecisionRepository() persistence.DecisionRepository {
	return m.Decisions
}

func (m *MockPersistence) AuditRepository() persistence.AuditRepository {
	return m.Audits
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

type MockWorkflowRepository struct {
	mock.Mock
}

func (m *MockWorkflowRepository) GetAll(ctx context.Context) ([]*models.Workflow, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Workflow), args.Error(1)
}

func (m *MockWorkflowRepository) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Workflow), args.Error(1)
}

func (m *MockWorkflowRepository) Save(ctx context.Context, workflow *models.Workflow) error {
	args := m.Called(ctx, workflow)

	return args.Error(0)
}

func (m *MockWorkflowRepository) ListActiveByTriggerType(ctx context.Context, triggerType models.TriggerType) ([]*models.Workflow, error) {
	args := m.Called(ctx, triggerType)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Workflow), args.Error(1)
}

func (m *MockWorkflowRepository) RecordTriggered(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)

	return args.Error(0)
}

type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) GetAll(ctx context.Context) ([]*models.Candidate, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) Save(ctx context.Context, candidate *models.Candidate) error {
	args := m.Called(ctx, candidate)

	return args.Error(0)
}

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) GetAll(ctx context.Context) ([]*models.Job, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Job), args.Error(1)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) Save(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)

	return args.Error(0)
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Save(ctx context.Context, application *models.Application) error {
	args := m.Called(ctx, application)

	return args.Error(0)
}

func (m *MockApplicationRepository) ListByJob(ctx context.Context, jobID string, from, to time.Time) ([]*models.Application, error) {
	args := m.Called(ctx, jobID, from, to)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Application), args.Error(1)
}

type MockEEORepository struct {
	mock.Mock
}

func (m *MockEEORepository) GetByCandidate(ctx context.Context, candidateID string) (*models.EEORecord, error) {
	args := m.Called(ctx, candidateID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.EEORecord), args.Error(1)
}

func (m *MockEEORepository) Save(ctx context.Context, record *models.EEORecord) error {
	args := m.Called(ctx, record)

	return args.Error(0)
}

type MockEmailRepository struct {
	mock.Mock
}

func (m *MockEmailRepository) Save(ctx context.Context, email *models.EmailMessage) error {
	args := m.Called(ctx, email)

	return args.Error(0)
}

func (m *MockEmailRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*models.EmailMessage, error) {
	args := m.Called(ctx, candidateID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.EmailMessage), args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Save(ctx context.Context, task *models.Task) error {
	args := m.Called(ctx, task)

	return args.Error(0)
}

func (m *MockTaskRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*models.Task, error) {
	args := m.Called(ctx, candidateID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Task), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Save(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)

	return args.Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Save(ctx context.Context, entry *models.ActivityEntry) error {
	args := m.Called(ctx, entry)

	return args.Error(0)
}

func (m *MockActivityRepository) ListByJob(ctx context.Context, jobID string) ([]*models.ActivityEntry, error) {
	args := m.Called(ctx, jobID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.ActivityEntry), args.Error(1)
}

type MockDecisionRepository struct {
	mock.Mock
}

func (m *MockDecisionRepository) GetByID(ctx context.Context, id string) (*models.AIDecision, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.AIDecision), args.Error(1)
}

func (m *MockDecisionRepository) Save(ctx context.Context, decision *models.AIDecision) error {
	args := m.Called(ctx, decision)

	return args.Error(0)
}

func (m *MockDecisionRepository) SaveReview(ctx context.Context, decisionID string, review *models.HumanReview) error {
	args := m.Called(ctx, decisionID, review)

	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Save(ctx context.Context, audit *models.BiasAudit) error {
	args := m.Called(ctx, audit)

	return args.Error(0)
}

func (m *MockAuditRepository) LatestByJob(ctx context.Context, jobID string) (*models.BiasAudit, error) {
	args := m.Called(ctx, jobID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.BiasAudit), args.Error(1)
}
