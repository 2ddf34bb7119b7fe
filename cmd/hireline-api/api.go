// Package main provides the Hireline API server implementation.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"go.opentelemetry.io/otel/trace"

	"github.com/hireline/hireline/pkg/activity"
	"github.com/hireline/hireline/pkg/compliance"
	"github.com/hireline/hireline/pkg/delayqueue"
	"github.com/hireline/hireline/pkg/eventbus"
	"github.com/hireline/hireline/pkg/otelhelper"
	"github.com/hireline/hireline/pkg/persistence"
	"github.com/hireline/hireline/pkg/services"
	"github.com/hireline/hireline/pkg/web"
	"github.com/hireline/hireline/pkg/workflow"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	queue       *delayqueue.Queue
	tracer      trace.Tracer
}

func NewAPI(
	ctx context.Context,
	logger *slog.Logger,
	p persistence.Persistence,
	eventBus eventbus.EventBus,
	queue *delayqueue.Queue,
) *API {
	var tracer trace.Tracer

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		t, err := otelhelper.NewTracer(ctx, "hireline-api")
		if err != nil {
			logger.WarnContext(ctx, "Failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			tracer = t
		}
	}

	return &API{
		logger:      logger,
		persistence: p,
		eventBus:    eventBus,
		queue:       queue,
		tracer:      tracer,
	}
}

func (a *API) App() *fiber.App {
	var dq workflow.DelayQueue
	if a.queue != nil {
		dq = a.queue
	}

	executor := workflow.NewExecutor(a.persistence, a.eventBus, dq, a.logger)
	engine := workflow.NewEngine(a.persistence, executor, a.eventBus, a.tracer, a.logger)
	analyzer := compliance.NewAnalyzer(a.persistence, a.eventBus, a.tracer, a.logger)

	workflowService := services.NewWorkflowService(a.persistence, engine, a.logger)
	complianceService := services.NewComplianceService(a.persistence, analyzer, a.logger)

	handlers := web.NewAPIHandlers(workflowService, complianceService, a.healthCheck)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Hireline API")
	})

	handlers.Register(app)

	return app
}

func (a *API) healthCheck(c fiber.Ctx) error {
	status := "healthy"
	message := "Hireline API is healthy"
	httpStatus := http.StatusOK

	err := a.persistence.HealthCheck(c.Context())
	if err != nil {
		status = "unhealthy"
		message = "Hireline API is unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"timestamp": time.Now().UTC(),
	})
}

func (a *API) Start(ctx context.Context, port int) error {
	projector := activity.NewProjector(a.persistence, a.eventBus, a.logger)
	if err := projector.Start(ctx); err != nil {
		return err
	}

	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
