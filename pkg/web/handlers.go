// Package web provides the REST API for workflow management, trigger
// ingestion, and compliance reporting.
package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/hireline/hireline/pkg/models"
	"github.com/hireline/hireline/pkg/services"
	"github.com/hireline/hireline/pkg/workflow"
)

type APIHandlers struct {
	workflowService   *services.WorkflowService
	complianceService *services.ComplianceService
	validator         *validator.Validate
	healthCheck       func(c fiber.Ctx) error
}

func NewAPIHandlers(
	workflowService *services.WorkflowService,
	complianceService *services.ComplianceService,
	healthCheck func(c fiber.Ctx) error,
) *APIHandlers {
	return &APIHandlers{
		workflowService:   workflowService,
		complianceService: complianceService,
		validator:         validator.New(validator.WithRequiredStructEnabled()),
		healthCheck:       healthCheck,
	}
}

// Register mounts every route on the app.
func (h *APIHandlers) Register(app *fiber.App) {
	app.Get("/health", h.HealthCheck)

	app.Post("/triggers", h.RaiseTrigger)

	app.Get("/workflows", h.ListWorkflows)
	app.Post("/workflows", h.CreateWorkflow)
	app.Post("/workflows/from-template", h.CreateWorkflowFromTemplate)
	app.Get("/workflows/:id", h.GetWorkflow)
	app.Post("/workflows/:id/activate", h.ActivateWorkflow)
	app.Post("/workflows/:id/deactivate", h.DeactivateWorkflow)

	app.Get("/templates", h.ListTemplates)

	app.Get("/compliance/reports", h.LatestComplianceReport)
	app.Post("/compliance/reports", h.RunComplianceReport)
	app.Post("/eeo-records", h.SaveEEORecord)

	app.Post("/decisions", h.RecordDecision)
	app.Get("/decisions/:id", h.GetDecision)
	app.Post("/decisions/:id/review", h.ReviewDecision)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	if h.healthCheck != nil {
		return h.healthCheck(c)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// RaiseTrigger runs a trigger check. Re-raising the same context re-runs
// every matching workflow; deduplication is the caller's responsibility.
func (h *APIHandlers) RaiseTrigger(c fiber.Ctx) error {
	var req TriggerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.workflowService.Trigger(c.Context(), req.Type, req.Context); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusAccepted)
}

func (h *APIHandlers) ListWorkflows(c fiber.Ctx) error {
	workflows, err := h.workflowService.List(c.Context(), c.Query("job_id"), c.Query("department"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"workflows":   workflows,
		"total_count": len(workflows),
	})
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	wf := &models.Workflow{
		Name:        req.Name,
		Description: req.Description,
		Trigger:     req.Trigger,
		Actions:     req.Actions,
		Scope:       req.Scope,
		IsActive:    active,
	}

	created, err := h.workflowService.Create(c.Context(), wf)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) CreateWorkflowFromTemplate(c fiber.Ctx) error {
	var req FromTemplateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.workflowService.CreateFromTemplate(c.Context(), *req.TemplateIndex, req.Scope)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	wf, err := h.workflowService.Get(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(wf)
}

func (h *APIHandlers) ActivateWorkflow(c fiber.Ctx) error {
	return h.setWorkflowActive(c, true)
}

func (h *APIHandlers) DeactivateWorkflow(c fiber.Ctx) error {
	return h.setWorkflowActive(c, false)
}

func (h *APIHandlers) setWorkflowActive(c fiber.Ctx, active bool) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	wf, err := h.workflowService.SetActive(c.Context(), id, active)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(wf)
}

func (h *APIHandlers) ListTemplates(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"templates": workflow.Templates(),
	})
}

func (h *APIHandlers) RunComplianceReport(c fiber.Ctx) error {
	var req RunAuditRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	var periodStart, periodEnd time.Time
	if req.PeriodStart != nil {
		periodStart = *req.PeriodStart
	}

	if req.PeriodEnd != nil {
		periodEnd = *req.PeriodEnd
	}

	audit, err := h.complianceService.RunAudit(c.Context(), req.JobID, periodStart, periodEnd)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(audit)
}

func (h *APIHandlers) LatestComplianceReport(c fiber.Ctx) error {
	audit, err := h.complianceService.LatestAudit(c.Context(), c.Query("job_id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(audit)
}

func (h *APIHandlers) SaveEEORecord(c fiber.Ctx) error {
	var record models.EEORecord
	if err := c.Bind().JSON(&record); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	saved, err := h.complianceService.SaveEEORecord(c.Context(), &record)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *APIHandlers) RecordDecision(c fiber.Ctx) error {
	var decision models.AIDecision
	if err := c.Bind().JSON(&decision); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	recorded, err := h.complianceService.RecordDecision(c.Context(), &decision)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(recorded)
}

func (h *APIHandlers) GetDecision(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Decision ID is required")
	}

	decision, err := h.complianceService.GetDecision(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(decision)
}

func (h *APIHandlers) ReviewDecision(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Decision ID is required")
	}

	var req ReviewRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	review := &models.HumanReview{
		ReviewerID:     req.ReviewerID,
		Agrees:         req.Agrees,
		OverrideReason: req.OverrideReason,
	}

	decision, err := h.complianceService.ReviewDecision(c.Context(), id, review)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(decision)
}
