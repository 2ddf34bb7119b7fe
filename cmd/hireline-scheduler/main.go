// Package main provides the Hireline scheduler daemon: trigger sweeps,
// delayed-action draining, and nightly bias audits.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/trace"

	"github.com/hireline/hireline/pkg/activity"
	"github.com/hireline/hireline/pkg/cmd"
	"github.com/hireline/hireline/pkg/compliance"
	"github.com/hireline/hireline/pkg/log"
	"github.com/hireline/hireline/pkg/otelhelper"
	"github.com/hireline/hireline/pkg/scheduler"
	"github.com/hireline/hireline/pkg/workflow"
)

func main() {
	logger := log.WithModule("scheduler")

	command := &cli.Command{
		Name:                  "hireline-scheduler",
		Usage:                 "Run time-based trigger sweeps, delayed actions, and nightly bias audits",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis URL for the delayed-action queue (optional)",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "sweep-cron",
				Usage:   "Cron expression for trigger sweeps",
				Sources: cli.EnvVars("SWEEP_CRON"),
			},
			&cli.StringFlag{
				Name:    "audit-cron",
				Usage:   "Cron expression for the nightly bias audit",
				Sources: cli.EnvVars("AUDIT_CRON"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Hireline scheduler")

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), logger)

			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			queue := cmd.NewDelayQueue(command.String("redis-url"), logger)

			var tracer trace.Tracer

			if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
				t, err := otelhelper.NewTracer(ctx, "hireline-scheduler")
				if err != nil {
					logger.WarnContext(ctx, "Failed to initialize tracer, continuing without tracing", "error", err)
				} else {
					tracer = t
				}
			}

			var dq workflow.DelayQueue
			if queue != nil {
				dq = queue
			}

			executor := workflow.NewExecutor(persistence, eventBus, dq, logger)
			engine := workflow.NewEngine(persistence, executor, eventBus, tracer, logger)
			analyzer := compliance.NewAnalyzer(persistence, eventBus, tracer, logger)

			projector := activity.NewProjector(persistence, eventBus, logger)
			if err := projector.Start(ctx); err != nil {
				return err
			}

			sched := scheduler.NewScheduler(
				engine,
				analyzer,
				persistence,
				queue,
				executor,
				scheduler.Config{
					SweepCron: command.String("sweep-cron"),
					AuditCron: command.String("audit-cron"),
				},
				logger,
			)

			if err := sched.Start(ctx); err != nil {
				return err
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case <-stop:
			case <-ctx.Done():
			}

			logger.InfoContext(ctx, "Shutting down scheduler")

			return sched.Stop(ctx)
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
