package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence"
)

type eeoRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *eeoRepository) GetByCandidate(ctx context.Context, candidateID string) (*models.EEORecord, error) {
	query := `
		SELECT candidate_id, race, gender, veteran_status, disability_status, created_at, updated_at
		FROM eeo_records
		WHERE candidate_id = $1
	`

	var record models.EEORecord

	err := r.db.QueryRowContext(ctx, query, candidateID).Scan(
		&record.CandidateID,
		&record.Race,
		&record.Gender,
		&record.VeteranStatus,
		&record.DisabilityStatus,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("GetByCandidate", "eeo_records", candidateID, persistence.ErrEEORecordNotFound)
		}

		return nil, fmt.Errorf("failed to query eeo record %s: %w", candidateID, err)
	}

	return &record, nil
}

func (r *eeoRepository) Save(ctx context.Context, record *models.EEORecord) error {
	query := `
		INSERT INTO eeo_records (candidate_id, race, gender, veteran_status, disability_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (candidate_id) DO UPDATE SET
			race = EXCLUDED.race
		  , gender = EXCLUDED.gender
		  , veteran_status = EXCLUDED.veteran_status
		  , disability_status = EXCLUDED.disability_status
		  , updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		record.CandidateID,
		record.Race,
		record.Gender,
		record.VeteranStatus,
		record.DisabilityStatus,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return persistence.NewStoreError("Save", "eeo_records", record.CandidateID, err)
	}

	return nil
}

type decisionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *decisionRepository) GetByID(ctx context.Context, id string) (*models.AIDecision, error) {
	query := `
		SELECT id, candidate_id, job_id, decision_type, model, model_version, input, output, score, reasoning, attributes_masked, review, created_at
		FROM ai_decisions
		WHERE id = $1
	`

	var (
		decision   models.AIDecision
		reviewJSON []byte
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&decision.ID,
		&decision.CandidateID,
		&decision.JobID,
		&decision.DecisionType,
		&decision.Model,
		&decision.ModelVersion,
		&decision.Input,
		&decision.Output,
		&decision.Score,
		&decision.Reasoning,
		&decision.AttributesMasked,
		&reviewJSON,
		&decision.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("GetByID", "ai_decisions", id, persistence.ErrDecisionNotFound)
		}

		return nil, fmt.Errorf("failed to query decision %s: %w", id, err)
	}

	if len(reviewJSON) > 0 {
		if err := json.Unmarshal(reviewJSON, &decision.Review); err != nil {
			return nil, fmt.Errorf("failed to unmarshal review: %w", err)
		}
	}

	return &decision, nil
}

func (r *decisionRepository) Save(ctx context.Context, decision *models.AIDecision) error {
	// Decisions are immutable audit records; re-inserting the same ID is a
	// caller bug surfaced as a constraint error.
	query := `
		INSERT INTO ai_decisions (id, candidate_id, job_id, decision_type, model, model_version, input, output, score, reasoning, attributes_masked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		decision.ID,
		decision.CandidateID,
		decision.JobID,
		decision.DecisionType,
		decision.Model,
		decision.ModelVersion,
		decision.Input,
		decision.Output,
		decision.Score,
		decision.Reasoning,
		decision.AttributesMasked,
		decision.CreatedAt,
	)
	if err != nil {
		return persistence.NewStoreError("Save", "ai_decisions", decision.ID, err)
	}

	return nil
}

func (r *decisionRepository) SaveReview(ctx context.Context, decisionID string, review *models.HumanReview) error {
	reviewJSON, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("failed to marshal review: %w", err)
	}

	query := `UPDATE ai_decisions SET review = $2 WHERE id = $1 AND review IS NULL`

	result, err := r.db.ExecContext(ctx, query, decisionID, reviewJSON)
	if err != nil {
		return persistence.NewStoreError("SaveReview", "ai_decisions", decisionID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewStoreError("SaveReview", "ai_decisions", decisionID, err)
	}

	if affected == 0 {
		// Distinguish a missing decision from one already reviewed.
		if _, err := r.GetByID(ctx, decisionID); err != nil {
			return err
		}

		return persistence.NewStoreError("SaveReview", "ai_decisions", decisionID, persistence.ErrReviewAlreadyExists)
	}

	return nil
}

type auditRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *auditRepository) Save(ctx context.Context, audit *models.BiasAudit) error {
	ratesJSON, err := json.Marshal(audit.GroupRates)
	if err != nil {
		return fmt.Errorf("failed to marshal group rates: %w", err)
	}

	ratiosJSON, err := json.Marshal(audit.ImpactRatios)
	if err != nil {
		return fmt.Errorf("failed to marshal impact ratios: %w", err)
	}

	recsJSON, err := json.Marshal(audit.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	query := `
		INSERT INTO bias_audits (id, job_id, period_start, period_end, total_applicants, overall_selection_rate, group_rates, impact_ratios, four_fifths_compliant, recommendations, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.db.ExecContext(ctx, query,
		audit.ID,
		audit.JobID,
		audit.PeriodStart,
		audit.PeriodEnd,
		audit.TotalApplicants,
		audit.OverallSelectionRate,
		ratesJSON,
		ratiosJSON,
		audit.FourFifthsCompliant,
		recsJSON,
		string(audit.Status),
		audit.CreatedAt,
	)
	if err != nil {
		return persistence.NewStoreError("Save", "bias_audits", audit.ID, err)
	}

	return nil
}

func (r *auditRepository) LatestByJob(ctx context.Context, jobID string) (*models.BiasAudit, error) {
	query := `
		SELECT id, job_id, period_start, period_end, total_applicants, overall_selection_rate, group_rates, impact_ratios, four_fifths_compliant, recommendations, status, created_at
		FROM bias_audits
		WHERE ($1 = '' OR job_id = $1)
		ORDER BY created_at DESC
		LIMIT 1
	`

	var (
		audit      models.BiasAudit
		ratesJSON  []byte
		ratiosJSON []byte
		recsJSON   []byte
	)

	err := r.db.QueryRowContext(ctx, query, jobID).Scan(
		&audit.ID,
		&audit.JobID,
		&audit.PeriodStart,
		&audit.PeriodEnd,
		&audit.TotalApplicants,
		&audit.OverallSelectionRate,
		&ratesJSON,
		&ratiosJSON,
		&audit.FourFifthsCompliant,
		&recsJSON,
		&audit.Status,
		&audit.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("LatestByJob", "bias_audits", jobID, persistence.ErrAuditNotFound)
		}

		return nil, fmt.Errorf("failed to query latest audit: %w", err)
	}

	if len(ratesJSON) > 0 {
		if err := json.Unmarshal(ratesJSON, &audit.GroupRates); err != nil {
			return nil, fmt.Errorf("failed to unmarshal group rates: %w", err)
		}
	}

	if len(ratiosJSON) > 0 {
		if err := json.Unmarshal(ratiosJSON, &audit.ImpactRatios); err != nil {
			return nil, fmt.Errorf("failed to unmarshal impact ratios: %w", err)
		}
	}

	if len(recsJSON) > 0 {
		if err := json.Unmarshal(recsJSON, &audit.Recommendations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recommendations: %w", err)
		}
	}

	return &audit, nil
}
