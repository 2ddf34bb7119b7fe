package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/hireline/hireline/pkg/compliance"
	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence"
)

// ComplianceService fronts the bias analyzer, EEO self-reports, and the
// AI-decision audit trail.
type ComplianceService struct {
	persistence persistence.Persistence
	analyzer    *compliance.Analyzer
	validator   *validator.Validate
	logger      *slog.Logger
}

func NewComplianceService(p persistence.Persistence, analyzer *compliance.Analyzer, logger *slog.Logger) *ComplianceService {
	return &ComplianceService{
		persistence: p,
		analyzer:    analyzer,
		validator:   validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger.With("module", "compliance_service"),
	}
}

func (s *ComplianceService) RunAudit(ctx context.Context, jobID string, periodStart, periodEnd time.Time) (*models.BiasAudit, error) {
	return s.analyzer.Run(ctx, jobID, periodStart, periodEnd)
}

func (s *ComplianceService) LatestAudit(ctx context.Context, jobID string) (*models.BiasAudit, error) {
	return s.analyzer.LatestAudit(ctx, jobID)
}

// SaveEEORecord upserts a candidate's voluntary self-report.
func (s *ComplianceService) SaveEEORecord(ctx context.Context, record *models.EEORecord) (*models.EEORecord, error) {
	if err := s.validator.Struct(record); err != nil {
		return nil, invalidInput(err)
	}

	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	record.UpdatedAt = now

	if err := s.persistence.EEORepository().Save(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// RecordDecision stores an immutable AI-decision audit entry.
func (s *ComplianceService) RecordDecision(ctx context.Context, decision *models.AIDecision) (*models.AIDecision, error) {
	decision.ID = uuid.New().String()
	decision.Review = nil
	decision.CreatedAt = time.Now().UTC()

	if err := s.validator.Struct(decision); err != nil {
		return nil, invalidInput(err)
	}

	if err := s.persistence.DecisionRepository().Save(ctx, decision); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "AI decision recorded",
		"decision_id", decision.ID,
		"candidate_id", decision.CandidateID,
		"attributes_masked", decision.AttributesMasked)

	return decision, nil
}

func (s *ComplianceService) GetDecision(ctx context.Context, id string) (*models.AIDecision, error) {
	return s.persistence.DecisionRepository().GetByID(ctx, id)
}

// ReviewDecision attaches the one allowed human review to a decision.
func (s *ComplianceService) ReviewDecision(ctx context.Context, decisionID string, review *models.HumanReview) (*models.AIDecision, error) {
	review.ReviewedAt = time.Now().UTC()

	if err := s.validator.Struct(review); err != nil {
		return nil, invalidInput(err)
	}

	if err := s.persistence.DecisionRepository().SaveReview(ctx, decisionID, review); err != nil {
		return nil, err
	}

	return s.persistence.DecisionRepository().GetByID(ctx, decisionID)
}
