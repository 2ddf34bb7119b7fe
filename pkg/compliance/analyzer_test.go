package compliance

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hireline/hireline/pkg/log"
	"github.com/hireline/hireline/pkg/mocks"
	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence/file"
)

func seedApplications(t *testing.T, p *file.Persistence, jobID, gender string, total, approved int) {
	t.Helper()

	for i := 0; i < total; i++ {
		candidateID := fmt.Sprintf("%s-%s-%d", jobID, gender, i)

		status := models.ApplicationRejected
		if i < approved {
			status = models.ApplicationApproved
		}

		require.NoError(t, p.ApplicationRepository().Save(t.Context(), &models.Application{
			ID:          "app-" + candidateID,
			CandidateID: candidateID,
			JobID:       jobID,
			Status:      status,
			AppliedAt:   time.Now().UTC().Add(-24 * time.Hour),
		}))

		require.NoError(t, p.EEORepository().Save(t.Context(), &models.EEORecord{
			CandidateID: candidateID,
			Gender:      gender,
		}))
	}
}

func TestAnalyzer_Run_AdverseImpact(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	require.NoError(t, p.JobRepository().Save(t.Context(), &models.Job{ID: "job-1", Title: "SRE"}))

	seedApplications(t, p, "job-1", models.GenderMale, 10, 5)
	seedApplications(t, p, "job-1", models.GenderFemale, 10, 3)

	analyzer := NewAnalyzer(p, nil, nil, log.WithModule("test"))

	audit, err := analyzer.Run(t.Context(), "job-1", time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 20, audit.TotalApplicants)
	assert.InEpsilon(t, 0.4, audit.OverallSelectionRate, 0.0001)
	assert.False(t, audit.FourFifthsCompliant)
	assert.Equal(t, models.BiasAuditDraft, audit.Status)
	assert.NotEmpty(t, audit.Recommendations)

	female := ratioFor(t, audit.ImpactRatios, models.GenderFemale)
	assert.InEpsilon(t, 0.6, female.Ratio, 0.0001)
	assert.False(t, female.PassesFourFifths)

	// The audit is persisted and retrievable as the latest for the job.
	latest, err := analyzer.LatestAudit(t.Context(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, audit.ID, latest.ID)
}

func TestAnalyzer_Run_CompliantWhenBalanced(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	require.NoError(t, p.JobRepository().Save(t.Context(), &models.Job{ID: "job-1", Title: "SRE"}))

	seedApplications(t, p, "job-1", models.GenderMale, 10, 5)
	seedApplications(t, p, "job-1", models.GenderFemale, 10, 4)

	analyzer := NewAnalyzer(p, nil, nil, log.WithModule("test"))

	audit, err := analyzer.Run(t.Context(), "job-1", time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.True(t, audit.FourFifthsCompliant)
	assert.Equal(t, generalRecommendations, audit.Recommendations)
}

func TestAnalyzer_Run_DefaultWindowExcludesOldApplications(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	require.NoError(t, p.JobRepository().Save(t.Context(), &models.Job{ID: "job-1", Title: "SRE"}))

	require.NoError(t, p.ApplicationRepository().Save(t.Context(), &models.Application{
		ID:          "app-old",
		CandidateID: "cand-old",
		JobID:       "job-1",
		Status:      models.ApplicationApproved,
		AppliedAt:   time.Now().UTC().Add(-60 * 24 * time.Hour),
	}))

	analyzer := NewAnalyzer(p, nil, nil, log.WithModule("test"))

	audit, err := analyzer.Run(t.Context(), "job-1", time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Zero(t, audit.TotalApplicants)
	assert.Zero(t, audit.OverallSelectionRate)
	assert.True(t, audit.FourFifthsCompliant)
}

func TestAnalyzer_Run_MissingEEORecordsAreExcluded(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	require.NoError(t, p.JobRepository().Save(t.Context(), &models.Job{ID: "job-1", Title: "SRE"}))

	// One application with no self-report still counts toward the overall
	// rate but joins no group.
	require.NoError(t, p.ApplicationRepository().Save(t.Context(), &models.Application{
		ID:          "app-1",
		CandidateID: "cand-1",
		JobID:       "job-1",
		Status:      models.ApplicationApproved,
		AppliedAt:   time.Now().UTC().Add(-time.Hour),
	}))

	analyzer := NewAnalyzer(p, nil, nil, log.WithModule("test"))

	audit, err := analyzer.Run(t.Context(), "job-1", time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 1, audit.TotalApplicants)
	assert.InEpsilon(t, 1.0, audit.OverallSelectionRate, 0.0001)
	assert.Empty(t, audit.GroupRates)
}

func TestAnalyzer_Run_GlobalAuditSpansJobs(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	require.NoError(t, p.JobRepository().Save(t.Context(), &models.Job{ID: "job-1", Title: "SRE"}))
	require.NoError(t, p.JobRepository().Save(t.Context(), &models.Job{ID: "job-2", Title: "PM"}))

	seedApplications(t, p, "job-1", models.GenderMale, 3, 1)
	seedApplications(t, p, "job-2", models.GenderFemale, 3, 1)

	analyzer := NewAnalyzer(p, nil, nil, log.WithModule("test"))

	audit, err := analyzer.Run(t.Context(), "", time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 6, audit.TotalApplicants)
	assert.Empty(t, audit.JobID)
}

func TestAnalyzer_Run_PublishesCompletionEvent(t *testing.T) {
	p := file.NewPersistence(t.TempDir())
	require.NoError(t, p.JobRepository().Save(t.Context(), &models.Job{ID: "job-1", Title: "SRE"}))

	bus := &mocks.MockEventBus{}
	bus.On("Publish", mock.Anything, mock.Anything, mock.AnythingOfType("events.AuditCompleted")).Return(nil)

	analyzer := NewAnalyzer(p, bus, nil, log.WithModule("test"))

	_, err := analyzer.Run(t.Context(), "job-1", time.Time{}, time.Time{})
	require.NoError(t, err)

	bus.AssertExpectations(t)
}
