package file

import (
	"context"
	"time"

	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence"
)

const (
	candidatesTable   = "candidates"
	jobsTable         = "jobs"
	applicationsTable = "applications"
)

type candidateRepository struct {
	fp *Persistence
}

func (r *candidateRepository) GetAll(ctx context.Context) ([]*models.Candidate, error) {
	return listDocs[models.Candidate](r.fp, candidatesTable)
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	return readDoc[models.Candidate](r.fp, candidatesTable, id, persistence.ErrCandidateNotFound)
}

func (r *candidateRepository) Save(ctx context.Context, candidate *models.Candidate) error {
	return writeDoc(r.fp, candidatesTable, candidate.ID, candidate)
}

type jobRepository struct {
	fp *Persistence
}

func (r *jobRepository) GetAll(ctx context.Context) ([]*models.Job, error) {
	return listDocs[models.Job](r.fp, jobsTable)
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	return readDoc[models.Job](r.fp, jobsTable, id, persistence.ErrJobNotFound)
}

func (r *jobRepository) Save(ctx context.Context, job *models.Job) error {
	return writeDoc(r.fp, jobsTable, job.ID, job)
}

type applicationRepository struct {
	fp *Persistence
}

func (r *applicationRepository) Save(ctx context.Context, application *models.Application) error {
	return writeDoc(r.fp, applicationsTable, application.ID, application)
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string, from, to time.Time) ([]*models.Application, error) {
	all, err := listDocs[models.Application](r.fp, applicationsTable)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Application, 0)

	for _, a := range all {
		if a.JobID != jobID {
			continue
		}

		if a.AppliedAt.Before(from) || a.AppliedAt.After(to) {
			continue
		}

		matched = append(matched, a)
	}

	return matched, nil
}
