package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence"
)

type candidateRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *candidateRepository) GetAll(ctx context.Context) ([]*models.Candidate, error) {
	query := `
		SELECT id, job_id, name, email, status, tags, timeline, entered_stage, created_at, updated_at
		FROM candidates
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	defer closeRows(ctx, r.logger, rows)

	candidates := make([]*models.Candidate, 0)

	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}

	return candidates, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	query := `
		SELECT id, job_id, name, email, status, tags, timeline, entered_stage, created_at, updated_at
		FROM candidates
		WHERE id = $1
	`

	candidate, err := scanCandidate(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("GetByID", "candidates", id, persistence.ErrCandidateNotFound)
		}

		return nil, fmt.Errorf("failed to query candidate %s: %w", id, err)
	}

	return candidate, nil
}

func scanCandidate(row rowScanner) (*models.Candidate, error) {
	var (
		candidate    models.Candidate
		tagsJSON     []byte
		timelineJSON []byte
	)

	err := row.Scan(
		&candidate.ID,
		&candidate.JobID,
		&candidate.Name,
		&candidate.Email,
		&candidate.Status,
		&tagsJSON,
		&timelineJSON,
		&candidate.EnteredStage,
		&candidate.CreatedAt,
		&candidate.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &candidate.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}

	if len(timelineJSON) > 0 {
		if err := json.Unmarshal(timelineJSON, &candidate.Timeline); err != nil {
			return nil, fmt.Errorf("failed to unmarshal timeline: %w", err)
		}
	}

	return &candidate, nil
}

func (r *candidateRepository) Save(ctx context.Context, candidate *models.Candidate) error {
	tagsJSON, err := json.Marshal(candidate.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	timelineJSON, err := json.Marshal(candidate.Timeline)
	if err != nil {
		return fmt.Errorf("failed to marshal timeline: %w", err)
	}

	query := `
		INSERT INTO candidates (id, job_id, name, email, status, tags, timeline, entered_stage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			job_id = EXCLUDED.job_id
		  , name = EXCLUDED.name
		  , email = EXCLUDED.email
		  , status = EXCLUDED.status
		  , tags = EXCLUDED.tags
		  , timeline = EXCLUDED.timeline
		  , entered_stage = EXCLUDED.entered_stage
		  , updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		candidate.ID,
		candidate.JobID,
		candidate.Name,
		candidate.Email,
		candidate.Status,
		tagsJSON,
		timelineJSON,
		candidate.EnteredStage,
		candidate.CreatedAt,
		candidate.UpdatedAt,
	)
	if err != nil {
		return persistence.NewStoreError("Save", "candidates", candidate.ID, err)
	}

	return nil
}

type jobRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *jobRepository) GetAll(ctx context.Context) ([]*models.Job, error) {
	query := `
		SELECT id, title, department, company, hiring_team, created_at, updated_at
		FROM jobs
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}

	defer closeRows(ctx, r.logger, rows)

	jobs := make([]*models.Job, 0)

	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return jobs, nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	query := `
		SELECT id, title, department, company, hiring_team, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`

	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewStoreError("GetByID", "jobs", id, persistence.ErrJobNotFound)
		}

		return nil, fmt.Errorf("failed to query job %s: %w", id, err)
	}

	return job, nil
}

func (r *jobRepository) Save(ctx context.Context, job *models.Job) error {
	teamJSON, err := json.Marshal(job.HiringTeam)
	if err != nil {
		return fmt.Errorf("failed to marshal hiring team: %w", err)
	}

	query := `
		INSERT INTO jobs (id, title, department, company, hiring_team, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title
		  , department = EXCLUDED.department
		  , company = EXCLUDED.company
		  , hiring_team = EXCLUDED.hiring_team
		  , updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Department,
		job.Company,
		teamJSON,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return persistence.NewStoreError("Save", "jobs", job.ID, err)
	}

	return nil
}

func scanJob(row rowScanner) (*models.Job, error) {
	var (
		job      models.Job
		teamJSON []byte
	)

	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Department,
		&job.Company,
		&teamJSON,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(teamJSON) > 0 {
		if err := json.Unmarshal(teamJSON, &job.HiringTeam); err != nil {
			return nil, fmt.Errorf("failed to unmarshal hiring team: %w", err)
		}
	}

	return &job, nil
}

type applicationRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *applicationRepository) Save(ctx context.Context, application *models.Application) error {
	query := `
		INSERT INTO applications (id, candidate_id, job_id, status, applied_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status
	`

	_, err := r.db.ExecContext(ctx, query,
		application.ID,
		application.CandidateID,
		application.JobID,
		application.Status,
		application.AppliedAt,
	)
	if err != nil {
		return persistence.NewStoreError("Save", "applications", application.ID, err)
	}

	return nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string, from, to time.Time) ([]*models.Application, error) {
	query := `
		SELECT id, candidate_id, job_id, status, applied_at
		FROM applications
		WHERE job_id = $1 AND applied_at >= $2 AND applied_at <= $3
		ORDER BY applied_at
	`

	rows, err := r.db.QueryContext(ctx, query, jobID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}

	defer closeRows(ctx, r.logger, rows)

	applications := make([]*models.Application, 0)

	for rows.Next() {
		var application models.Application

		err := rows.Scan(
			&application.ID,
			&application.CandidateID,
			&application.JobID,
			&application.Status,
			&application.AppliedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}

		applications = append(applications, &application)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return applications, nil
}
