package file

import (
	"context"
	"sort"

	"github.com/hireline/hireline/pkg/models"
)

const (
	emailsTable        = "emails"
	tasksTable         = "tasks"
	notificationsTable = "notifications"
	activityTable      = "activity"
)

type emailRepository struct {
	fp *Persistence
}

func (r *emailRepository) Save(ctx context.Context, email *models.EmailMessage) error {
	return writeDoc(r.fp, emailsTable, email.ID, email)
}

func (r *emailRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*models.EmailMessage, error) {
	all, err := listDocs[models.EmailMessage](r.fp, emailsTable)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.EmailMessage, 0)

	for _, e := range all {
		if e.CandidateID == candidateID {
			matched = append(matched, e)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].SentAt.Before(matched[j].SentAt)
	})

	return matched, nil
}

type taskRepository struct {
	fp *Persistence
}

func (r *taskRepository) Save(ctx context.Context, task *models.Task) error {
	return writeDoc(r.fp, tasksTable, task.ID, task)
}

func (r *taskRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*models.Task, error) {
	all, err := listDocs[models.Task](r.fp, tasksTable)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Task, 0)

	for _, task := range all {
		if task.CandidateID == candidateID {
			matched = append(matched, task)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	return matched, nil
}

type notificationRepository struct {
	fp *Persistence
}

func (r *notificationRepository) Save(ctx context.Context, notification *models.Notification) error {
	return writeDoc(r.fp, notificationsTable, notification.ID, notification)
}

type activityRepository struct {
	fp *Persistence
}

func (r *activityRepository) Save(ctx context.Context, entry *models.ActivityEntry) error {
	return writeDoc(r.fp, activityTable, entry.ID, entry)
}

func (r *activityRepository) ListByJob(ctx context.Context, jobID string) ([]*models.ActivityEntry, error) {
	all, err := listDocs[models.ActivityEntry](r.fp, activityTable)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.ActivityEntry, 0)

	for _, e := range all {
		if e.JobID == jobID {
			matched = append(matched, e)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	return matched, nil
}
