package file

import (
	"context"

	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence"
)

const (
	eeoTable       = "eeo_records"
	decisionsTable = "ai_decisions"
	auditsTable    = "bias_audits"
)

type eeoRepository struct {
	fp *Persistence
}

// EEO records are keyed by candidate, one document per candidate. Save is
// an upsert.
func (r *eeoRepository) GetByCandidate(ctx context.Context, candidateID string) (*models.EEORecord, error) {
	return readDoc[models.EEORecord](r.fp, eeoTable, candidateID, persistence.ErrEEORecordNotFound)
}

func (r *eeoRepository) Save(ctx context.Context, record *models.EEORecord) error {
	return writeDoc(r.fp, eeoTable, record.CandidateID, record)
}

type decisionRepository struct {
	fp *Persistence
}

func (r *decisionRepository) GetByID(ctx context.Context, id string) (*models.AIDecision, error) {
	return readDoc[models.AIDecision](r.fp, decisionsTable, id, persistence.ErrDecisionNotFound)
}

func (r *decisionRepository) Save(ctx context.Context, decision *models.AIDecision) error {
	return writeDoc(r.fp, decisionsTable, decision.ID, decision)
}

func (r *decisionRepository) SaveReview(ctx context.Context, decisionID string, review *models.HumanReview) error {
	r.fp.mu.Lock()
	defer r.fp.mu.Unlock()

	decision, err := readDocLocked[models.AIDecision](r.fp, decisionsTable, decisionID, persistence.ErrDecisionNotFound)
	if err != nil {
		return err
	}

	if decision.Review != nil {
		return persistence.NewStoreError("SaveReview", decisionsTable, decisionID, persistence.ErrReviewAlreadyExists)
	}

	decision.Review = review

	return writeDocLocked(r.fp, decisionsTable, decisionID, decision)
}

type auditRepository struct {
	fp *Persistence
}

func (r *auditRepository) Save(ctx context.Context, audit *models.BiasAudit) error {
	return writeDoc(r.fp, auditsTable, audit.ID, audit)
}

func (r *auditRepository) LatestByJob(ctx context.Context, jobID string) (*models.BiasAudit, error) {
	all, err := listDocs[models.BiasAudit](r.fp, auditsTable)
	if err != nil {
		return nil, err
	}

	var latest *models.BiasAudit

	for _, a := range all {
		if jobID != "" && a.JobID != jobID {
			continue
		}

		if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
			latest = a
		}
	}

	if latest == nil {
		return nil, persistence.NewStoreError("LatestByJob", auditsTable, jobID, persistence.ErrAuditNotFound)
	}

	return latest, nil
}
