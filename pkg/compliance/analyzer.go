package compliance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hireline/hireline/pkg/events"
	"github.com/hireline/hireline/pkg/eventbus"
	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/otelhelper"
	"github.com/hireline/hireline/pkg/persistence"
)

// DefaultAuditWindowDays is the audit period applied when the caller gives
// no explicit window.
const DefaultAuditWindowDays = 30

// Analyzer runs the four-fifths computation over a job's (or all jobs')
// application outcomes and persists the result as a draft bias audit.
type Analyzer struct {
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	tracer      trace.Tracer
	logger      *slog.Logger
	now         func() time.Time
}

func NewAnalyzer(p persistence.Persistence, bus eventbus.EventBus, tracer trace.Tracer, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		persistence: p,
		eventBus:    bus,
		tracer:      tracer,
		logger:      logger.With("module", "compliance_analyzer"),
		now:         time.Now,
	}
}

// Run computes and persists a bias audit for jobID over [periodStart,
// periodEnd]. An empty jobID audits every job; a zero period defaults to the
// trailing 30 days. The audit is stored as a draft.
func (a *Analyzer) Run(ctx context.Context, jobID string, periodStart, periodEnd time.Time) (*models.BiasAudit, error) {
	var span trace.Span

	if a.tracer != nil {
		ctx, span = otelhelper.StartSpan(ctx, a.tracer, "compliance.run_audit",
			attribute.String(otelhelper.JobIDKey, jobID),
		)
		defer span.End()
	}

	if periodEnd.IsZero() {
		periodEnd = a.now().UTC()
	}

	if periodStart.IsZero() {
		periodStart = periodEnd.AddDate(0, 0, -DefaultAuditWindowDays)
	}

	applications, err := a.collectApplications(ctx, jobID, periodStart, periodEnd)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	samples := make([]Sample, 0, len(applications))
	approvedTotal := 0

	for _, application := range applications {
		record, err := a.persistence.EEORepository().GetByCandidate(ctx, application.CandidateID)
		if err != nil && !errors.Is(err, persistence.ErrEEORecordNotFound) {
			otelhelper.SetError(span, err)

			return nil, err
		}

		approved := application.Status == models.ApplicationApproved
		if approved {
			approvedTotal++
		}

		samples = append(samples, Sample{Approved: approved, Record: record})
	}

	rates := GroupRates(samples)
	ratios := ImpactRatios(rates)

	audit := &models.BiasAudit{
		ID:                   uuid.New().String(),
		JobID:                jobID,
		PeriodStart:          periodStart,
		PeriodEnd:            periodEnd,
		TotalApplicants:      len(applications),
		OverallSelectionRate: selectionRate(approvedTotal, len(applications)),
		GroupRates:           rates,
		ImpactRatios:         ratios,
		FourFifthsCompliant:  Compliant(ratios),
		Recommendations:      Recommendations(ratios),
		Status:               models.BiasAuditDraft,
		CreatedAt:            a.now().UTC(),
	}

	if err := a.persistence.AuditRepository().Save(ctx, audit); err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	if span != nil {
		span.SetAttributes(attribute.String(otelhelper.AuditIDKey, audit.ID))
	}

	a.logger.InfoContext(ctx, "Bias audit completed",
		"audit_id", audit.ID,
		"job_id", jobID,
		"total_applicants", audit.TotalApplicants,
		"compliant", audit.FourFifthsCompliant)

	a.publishCompleted(ctx, audit)

	return audit, nil
}

// LatestAudit returns the most recent audit for jobID, or overall when
// jobID is empty.
func (a *Analyzer) LatestAudit(ctx context.Context, jobID string) (*models.BiasAudit, error) {
	return a.persistence.AuditRepository().LatestByJob(ctx, jobID)
}

func (a *Analyzer) collectApplications(ctx context.Context, jobID string, from, to time.Time) ([]*models.Application, error) {
	if jobID != "" {
		return a.persistence.ApplicationRepository().ListByJob(ctx, jobID, from, to)
	}

	jobs, err := a.persistence.JobRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	applications := make([]*models.Application, 0)

	for _, job := range jobs {
		jobApplications, err := a.persistence.ApplicationRepository().ListByJob(ctx, job.ID, from, to)
		if err != nil {
			return nil, err
		}

		applications = append(applications, jobApplications...)
	}

	return applications, nil
}

func (a *Analyzer) publishCompleted(ctx context.Context, audit *models.BiasAudit) {
	if a.eventBus == nil {
		return
	}

	event := events.AuditCompleted{
		BaseEvent: events.NewBaseEvent(events.AuditCompletedEvent),
		AuditID:   audit.ID,
		JobID:     audit.JobID,
		Compliant: audit.FourFifthsCompliant,
	}

	if err := a.eventBus.Publish(ctx, audit.ID, event); err != nil {
		a.logger.WarnContext(ctx, "Failed to publish audit completed event",
			"audit_id", audit.ID, "error", err)
	}
}
