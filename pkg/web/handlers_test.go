package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireline/hireline/pkg/compliance"
	"github.com/hireline/hireline/pkg/events"
	"github.com/hireline/hireline/pkg/log"
	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/persistence/file"
	"github.com/hireline/hireline/pkg/services"
	"github.com/hireline/hireline/pkg/web"
	"github.com/hireline/hireline/pkg/workflow"
)

func setupTestApp(t *testing.T) (*fiber.App, *file.Persistence) {
	t.Helper()

	p := file.NewPersistence(t.TempDir())
	logger := log.WithModule("test")

	executor := workflow.NewExecutor(p, nil, nil, logger)
	engine := workflow.NewEngine(p, executor, nil, nil, logger)
	analyzer := compliance.NewAnalyzer(p, nil, nil, logger)

	workflowService := services.NewWorkflowService(p, engine, logger)
	complianceService := services.NewComplianceService(p, analyzer, logger)

	handlers := web.NewAPIHandlers(workflowService, complianceService, nil)

	app := fiber.New()
	handlers.Register(app)

	return app, p
}

func doRequest(t *testing.T, app *fiber.App, method, path string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader

	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)

		body = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	responseBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, responseBody
}

func createWorkflowRequest() web.CreateWorkflowRequest {
	return web.CreateWorkflowRequest{
		Name: "High-score fast track",
		Trigger: models.Trigger{
			Type:           models.TriggerScoreThreshold,
			ScoreThreshold: &models.ScoreThresholdCondition{MinScore: 90},
		},
		Actions: []models.Action{
			{Type: models.ActionAddTag, AddTag: &models.AddTagConfig{Tag: "high_potential"}},
		},
	}
}

func TestCreateWorkflow(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/workflows", createWorkflowRequest())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Workflow
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Zero(t, created.TriggerCount)
}

func TestCreateWorkflow_InvalidDefinition(t *testing.T) {
	app, _ := setupTestApp(t)

	req := createWorkflowRequest()
	req.Trigger = models.Trigger{Type: "webhook"}

	resp, _ := doRequest(t, app, http.MethodPost, "/workflows", req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateWorkflow_MissingActions(t *testing.T) {
	app, _ := setupTestApp(t)

	req := createWorkflowRequest()
	req.Actions = nil

	resp, _ := doRequest(t, app, http.MethodPost, "/workflows", req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetWorkflow_NotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/workflows/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestActivateDeactivateWorkflow(t *testing.T) {
	app, _ := setupTestApp(t)

	_, body := doRequest(t, app, http.MethodPost, "/workflows", createWorkflowRequest())

	var created models.Workflow
	require.NoError(t, json.Unmarshal(body, &created))

	resp, body := doRequest(t, app, http.MethodPost, "/workflows/"+created.ID+"/deactivate", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Workflow
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.False(t, updated.IsActive)

	resp, body = doRequest(t, app, http.MethodPost, "/workflows/"+created.ID+"/activate", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.Unmarshal(body, &updated))
	assert.True(t, updated.IsActive)
}

func TestListTemplates(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/templates", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Templates []workflow.Template `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Len(t, result.Templates, 4)
}

func TestCreateWorkflowFromTemplate(t *testing.T) {
	app, _ := setupTestApp(t)

	index := 2
	resp, body := doRequest(t, app, http.MethodPost, "/workflows/from-template", web.FromTemplateRequest{
		TemplateIndex: &index,
		Scope:         models.Scope{JobIDs: []string{"job-1"}},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Workflow
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "High-score fast track", created.Name)
	assert.Equal(t, []string{"job-1"}, created.Scope.JobIDs)
}

func TestCreateWorkflowFromTemplate_UnknownIndex(t *testing.T) {
	app, _ := setupTestApp(t)

	index := 9
	resp, _ := doRequest(t, app, http.MethodPost, "/workflows/from-template", web.FromTemplateRequest{
		TemplateIndex: &index,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRaiseTrigger_ExecutesMatchingWorkflow(t *testing.T) {
	app, p := setupTestApp(t)

	require.NoError(t, p.JobRepository().Save(t.Context(), &models.Job{
		ID: "job-1", Title: "Backend Engineer", Department: "engineering", Company: "Acme",
	}))
	require.NoError(t, p.CandidateRepository().Save(t.Context(), &models.Candidate{
		ID: "cand-1", JobID: "job-1", Name: "Jordan", Status: "screening",
	}))

	_, body := doRequest(t, app, http.MethodPost, "/workflows", createWorkflowRequest())

	var created models.Workflow
	require.NoError(t, json.Unmarshal(body, &created))

	score := 95.0
	resp, _ := doRequest(t, app, http.MethodPost, "/triggers", web.TriggerRequest{
		Type: models.TriggerScoreThreshold,
		Context: events.TriggerContext{
			CandidateID: "cand-1",
			JobID:       "job-1",
			Score:       &score,
		},
	})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	candidate, err := p.CandidateRepository().GetByID(t.Context(), "cand-1")
	require.NoError(t, err)
	assert.Contains(t, candidate.Tags, "high_potential")
}

func TestRaiseTrigger_MissingCandidate(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/triggers", map[string]any{
		"type":    "score_threshold",
		"context": map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestComplianceReportLifecycle(t *testing.T) {
	app, p := setupTestApp(t)

	require.NoError(t, p.JobRepository().Save(t.Context(), &models.Job{ID: "job-1", Title: "SRE"}))

	for i, gender := range []string{models.GenderMale, models.GenderMale, models.GenderFemale, models.GenderFemale} {
		candidateID := []string{"c1", "c2", "c3", "c4"}[i]

		status := models.ApplicationRejected
		if i == 0 || i == 1 {
			status = models.ApplicationApproved
		}

		require.NoError(t, p.ApplicationRepository().Save(t.Context(), &models.Application{
			ID: "app-" + candidateID, CandidateID: candidateID, JobID: "job-1",
			Status: status, AppliedAt: time.Now().UTC().Add(-time.Hour),
		}))

		resp, _ := doRequest(t, app, http.MethodPost, "/eeo-records", models.EEORecord{
			CandidateID: candidateID,
			Gender:      gender,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doRequest(t, app, http.MethodPost, "/compliance/reports", web.RunAuditRequest{JobID: "job-1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var audit models.BiasAudit
	require.NoError(t, json.Unmarshal(body, &audit))
	assert.Equal(t, 4, audit.TotalApplicants)
	assert.False(t, audit.FourFifthsCompliant)

	resp, body = doRequest(t, app, http.MethodGet, "/compliance/reports?job_id=job-1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var latest models.BiasAudit
	require.NoError(t, json.Unmarshal(body, &latest))
	assert.Equal(t, audit.ID, latest.ID)
}

func TestLatestComplianceReport_NoneYet(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/compliance/reports", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDecisionReviewLifecycle(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/decisions", models.AIDecision{
		CandidateID:      "cand-1",
		JobID:            "job-1",
		DecisionType:     "resume_score",
		Model:            "screener-v2",
		AttributesMasked: true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var decision models.AIDecision
	require.NoError(t, json.Unmarshal(body, &decision))
	require.NotEmpty(t, decision.ID)
	assert.Nil(t, decision.Review)

	resp, body = doRequest(t, app, http.MethodPost, "/decisions/"+decision.ID+"/review", web.ReviewRequest{
		ReviewerID:     "user-1",
		Agrees:         false,
		OverrideReason: "Score ignored relevant open-source work",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reviewed models.AIDecision
	require.NoError(t, json.Unmarshal(body, &reviewed))
	require.NotNil(t, reviewed.Review)
	assert.Equal(t, "user-1", reviewed.Review.ReviewerID)

	// A second review conflicts.
	resp, _ = doRequest(t, app, http.MethodPost, "/decisions/"+decision.ID+"/review", web.ReviewRequest{
		ReviewerID: "user-2",
		Agrees:     true,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestReviewDecision_NotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/decisions/missing/review", web.ReviewRequest{
		ReviewerID: "user-1",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
