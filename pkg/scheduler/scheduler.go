// Package scheduler drives the time-derived parts of the system on cron
// cadences: time-based and stage-duration trigger sweeps, delayed-action
// draining, and the nightly bias audit.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hireline/hireline/pkg/compliance"
	"github.com/hireline/hireline/pkg/delayqueue"
	"github.com/hireline/hireline/pkg/events"
	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence"
	"github.com/hireline/hireline/pkg/workflow"
)

// Config holds the cron expressions for each recurring job. Zero values fall
// back to the defaults.
type Config struct {
	SweepCron string
	DrainCron string
	AuditCron string
}

const (
	defaultSweepCron = "*/5 * * * *"
	defaultDrainCron = "* * * * *"
	defaultAuditCron = "0 2 * * *"
)

// Scheduler owns the cron runner. Queue and runner are optional; without
// them the drain job is not registered.
type Scheduler struct {
	engine      *workflow.Engine
	analyzer    *compliance.Analyzer
	persistence persistence.Persistence
	queue       *delayqueue.Queue
	runner      delayqueue.ActionRunner
	config      Config
	logger      *slog.Logger
	cron        *cron.Cron
	now         func() time.Time
}

func NewScheduler(
	engine *workflow.Engine,
	analyzer *compliance.Analyzer,
	p persistence.Persistence,
	queue *delayqueue.Queue,
	runner delayqueue.ActionRunner,
	config Config,
	logger *slog.Logger,
) *Scheduler {
	if config.SweepCron == "" {
		config.SweepCron = defaultSweepCron
	}

	if config.DrainCron == "" {
		config.DrainCron = defaultDrainCron
	}

	if config.AuditCron == "" {
		config.AuditCron = defaultAuditCron
	}

	return &Scheduler{
		engine:      engine,
		analyzer:    analyzer,
		persistence: p,
		queue:       queue,
		runner:      runner,
		config:      config,
		logger:      logger.With("module", "scheduler"),
		now:         time.Now,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))

	jobs := []struct {
		name string
		expr string
		run  func()
	}{
		{"trigger_sweep", s.config.SweepCron, func() { s.sweep(ctx) }},
		{"nightly_audit", s.config.AuditCron, func() { s.runAudit(ctx) }},
	}

	if s.queue != nil && s.runner != nil {
		jobs = append(jobs, struct {
			name string
			expr string
			run  func()
		}{"delay_drain", s.config.DrainCron, func() { s.drain(ctx) }})
	}

	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.expr, job.run); err != nil {
			return fmt.Errorf("failed to add cron job %s: %w", job.name, err)
		}

		s.logger.Info("Registered cron job", "job", job.name, "cron", job.expr)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	return nil
}

func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cron != nil {
		stopCtx := s.cron.Stop()
		select {
		case <-stopCtx.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.logger.Info("Scheduler stopped")

	return nil
}

// sweep raises time_based and stage_duration trigger checks for every
// candidate in the pipeline. Per-candidate failures are logged and the sweep
// continues.
func (s *Scheduler) sweep(ctx context.Context) {
	candidates, err := s.persistence.CandidateRepository().GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Trigger sweep failed to list candidates", "error", err)

		return
	}

	jobs, err := s.persistence.JobRepository().GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Trigger sweep failed to list jobs", "error", err)

		return
	}

	jobsByID := make(map[string]*models.Job, len(jobs))
	for _, job := range jobs {
		jobsByID[job.ID] = job
	}

	now := s.now().UTC()

	for _, candidate := range candidates {
		tctx := s.triggerContext(candidate, jobsByID[candidate.JobID], now)

		if err := s.engine.CheckTriggers(ctx, models.TriggerTimeBased, tctx); err != nil {
			s.logger.ErrorContext(ctx, "Time-based trigger check failed",
				"candidate_id", candidate.ID, "error", err)
		}

		if candidate.EnteredStage == nil {
			continue
		}

		if err := s.engine.CheckTriggers(ctx, models.TriggerStageDuration, tctx); err != nil {
			s.logger.ErrorContext(ctx, "Stage-duration trigger check failed",
				"candidate_id", candidate.ID, "error", err)
		}
	}
}

func (s *Scheduler) triggerContext(candidate *models.Candidate, job *models.Job, now time.Time) events.TriggerContext {
	tctx := events.TriggerContext{
		CandidateID:   candidate.ID,
		JobID:         candidate.JobID,
		Timestamp:     candidate.UpdatedAt,
		EnteredStage:  candidate.EnteredStage,
		CandidateName: candidate.Name,
	}

	if candidate.EnteredStage != nil {
		tctx.Days = int(now.Sub(*candidate.EnteredStage).Hours() / 24)
	}

	if job != nil {
		tctx.Department = job.Department
		tctx.JobTitle = job.Title
		tctx.CompanyName = job.Company
	}

	return tctx
}

func (s *Scheduler) runAudit(ctx context.Context) {
	audit, err := s.analyzer.Run(ctx, "", time.Time{}, time.Time{})
	if err != nil {
		s.logger.ErrorContext(ctx, "Nightly bias audit failed", "error", err)

		return
	}

	s.logger.InfoContext(ctx, "Nightly bias audit stored",
		"audit_id", audit.ID, "compliant", audit.FourFifthsCompliant)
}

func (s *Scheduler) drain(ctx context.Context) {
	if err := s.queue.DrainDue(ctx, s.now(), s.runner); err != nil {
		s.logger.ErrorContext(ctx, "Delay queue drain failed", "error", err)
	}
}
