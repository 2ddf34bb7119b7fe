package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence"
)

type emailRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *emailRepository) Save(ctx context.Context, email *models.EmailMessage) error {
	query := `
		INSERT INTO emails (id, candidate_id, job_id, template_id, recipient, subject, body, status, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		email.ID,
		email.CandidateID,
		email.JobID,
		email.TemplateID,
		email.To,
		email.Subject,
		email.Body,
		email.Status,
		email.SentAt,
	)
	if err != nil {
		return persistence.NewStoreError("Save", "emails", email.ID, err)
	}

	return nil
}

func (r *emailRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*models.EmailMessage, error) {
	query := `
		SELECT id, candidate_id, job_id, template_id, recipient, subject, body, status, sent_at
		FROM emails
		WHERE candidate_id = $1
		ORDER BY sent_at
	`

	rows, err := r.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query emails: %w", err)
	}

	defer closeRows(ctx, r.logger, rows)

	emails := make([]*models.EmailMessage, 0)

	for rows.Next() {
		var email models.EmailMessage

		err := rows.Scan(
			&email.ID,
			&email.CandidateID,
			&email.JobID,
			&email.TemplateID,
			&email.To,
			&email.Subject,
			&email.Body,
			&email.Status,
			&email.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email: %w", err)
		}

		emails = append(emails, &email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate emails: %w", err)
	}

	return emails, nil
}

type taskRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *taskRepository) Save(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, candidate_id, job_id, task_type, assignee_id, title, description, priority, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.CandidateID,
		task.JobID,
		task.TaskType,
		task.AssigneeID,
		task.Title,
		task.Description,
		task.Priority,
		task.DueDate,
		task.CreatedAt,
	)
	if err != nil {
		return persistence.NewStoreError("Save", "tasks", task.ID, err)
	}

	return nil
}

func (r *taskRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*models.Task, error) {
	query := `
		SELECT id, candidate_id, job_id, task_type, assignee_id, title, description, priority, due_date, created_at
		FROM tasks
		WHERE candidate_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}

	defer closeRows(ctx, r.logger, rows)

	tasks := make([]*models.Task, 0)

	for rows.Next() {
		var task models.Task

		err := rows.Scan(
			&task.ID,
			&task.CandidateID,
			&task.JobID,
			&task.TaskType,
			&task.AssigneeID,
			&task.Title,
			&task.Description,
			&task.Priority,
			&task.DueDate,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

type notificationRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *notificationRepository) Save(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, candidate_id, job_id, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		notification.ID,
		notification.UserID,
		notification.CandidateID,
		notification.JobID,
		notification.Message,
		notification.Read,
		notification.CreatedAt,
	)
	if err != nil {
		return persistence.NewStoreError("Save", "notifications", notification.ID, err)
	}

	return nil
}

type activityRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *activityRepository) Save(ctx context.Context, entry *models.ActivityEntry) error {
	query := `
		INSERT INTO activity (id, job_id, candidate_id, user_id, kind, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.JobID,
		entry.CandidateID,
		entry.UserID,
		entry.Kind,
		entry.Message,
		entry.CreatedAt,
	)
	if err != nil {
		return persistence.NewStoreError("Save", "activity", entry.ID, err)
	}

	return nil
}

func (r *activityRepository) ListByJob(ctx context.Context, jobID string) ([]*models.ActivityEntry, error) {
	query := `
		SELECT id, job_id, candidate_id, user_id, kind, message, created_at
		FROM activity
		WHERE job_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}

	defer closeRows(ctx, r.logger, rows)

	entries := make([]*models.ActivityEntry, 0)

	for rows.Next() {
		var entry models.ActivityEntry

		err := rows.Scan(
			&entry.ID,
			&entry.JobID,
			&entry.CandidateID,
			&entry.UserID,
			&entry.Kind,
			&entry.Message,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity: %w", err)
	}

	return entries, nil
}
