// Package postgresql provides PostgreSQL persistence for the hiring
// workflow and compliance tables.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq" // postgres driver

	"github.com/hireline/hireline/pkg/persistence"
	"github.com/hireline/hireline/pkg/persistence/sqlbase"
)

// Persistence implements the persistence layer for PostgreSQL.
type Persistence struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPersistence connects, runs migrations, and returns the adapter.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{db: database, logger: logger}, nil
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (p *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return &workflowRepository{db: p.db, logger: p.logger}
}

func (p *Persistence) CandidateRepository() persistence.CandidateRepository {
	return &candidateRepository{db: p.db, logger: p.logger}
}

func (p *Persistence) JobRepository() persistence.JobRepository {
	return &jobRepository{db: p.db, logger: p.logger}
}

func (p *Persistence) ApplicationRepository() persistence.ApplicationRepository {
	return &applicationRepository{db: p.db, logger: p.logger}
}

func (p *Persistence) EEORepository() persistence.EEORepository {
	return &eeoRepository{db: p.db, logger: p.logger}
}

func (p *Persistence) EmailRepository() persistence.EmailRepository {
	return &emailRepository{db: p.db, logger: p.logger}
}

func (p *Persistence) TaskRepository() persistence.TaskRepository {
	return &taskRepository{db: p.db, logger: p.logger}
}

func (p *Persistence) NotificationRepository() persistence.NotificationRepository {
	return &notificationRepository{db: p.db, logger: p.logger}
}

func (p *Persistence) ActivityRepository() persistence.ActivityRepository {
	return &activityRepository{db: p.db, logger: p.logger}
}

func (p *Persistence) DecisionRepository() persistence.DecisionRepository {
	return &decisionRepository{db: p.db, logger: p.logger}
}

func (p *Persistence) AuditRepository() persistence.AuditRepository {
	return &auditRepository{db: p.db, logger: p.logger}
}
