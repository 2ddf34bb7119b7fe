// Package delayqueue defers workflow actions on a redis sorted set scored by
// due time. The scheduler drains due entries on a fixed cadence.
package delayqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hireline/hireline/pkg/events"
	"github.com/hireline/hireline/pkg/models"
)

const queueKey = "hireline:delayed_actions"

// ActionRunner executes one deferred action once it comes due.
type ActionRunner interface {
	ExecuteAction(ctx context.Context, workflowID string, action models.Action, tctx events.TriggerContext) error
}

// Entry is the serialized form of one deferred action.
type Entry struct {
	ID         string                `json:"id"`
	WorkflowID string                `json:"workflow_id"`
	Action     models.Action         `json:"action"`
	Context    events.TriggerContext `json:"context"`
	DueAt      time.Time             `json:"due_at"`
}

// Queue stores deferred actions in redis. Entries are claimed with ZREM
// before execution so concurrent drains never run the same entry twice.
type Queue struct {
	client *redis.Client
	logger *slog.Logger
}

func NewQueue(redisURL string, logger *slog.Logger) (*Queue, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	return &Queue{
		client: redis.NewClient(options),
		logger: logger.With("module", "delay_queue"),
	}, nil
}

// Enqueue schedules the action for execution at due.
func (q *Queue) Enqueue(ctx context.Context, workflowID string, action models.Action, tctx events.TriggerContext, due time.Time) error {
	entry := Entry{
		ID:         uuid.New().String(),
		WorkflowID: workflowID,
		Action:     action,
		Context:    tctx,
		DueAt:      due,
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal delayed action: %w", err)
	}

	err = q.client.ZAdd(ctx, queueKey, redis.Z{
		Score:  float64(due.UnixMilli()),
		Member: payload,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to enqueue delayed action: %w", err)
	}

	q.logger.DebugContext(ctx, "Delayed action enqueued",
		"workflow_id", workflowID,
		"action_type", action.Type,
		"due_at", due)

	return nil
}

// DrainDue runs every entry due at or before now. A failing entry is logged
// and dropped; one bad entry never blocks the rest of the queue.
func (q *Queue) DrainDue(ctx context.Context, now time.Time, runner ActionRunner) error {
	members, err := q.client.ZRangeByScore(ctx, queueKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to read delayed actions: %w", err)
	}

	for _, member := range members {
		removed, err := q.client.ZRem(ctx, queueKey, member).Result()
		if err != nil {
			return fmt.Errorf("failed to claim delayed action: %w", err)
		}

		if removed == 0 {
			continue
		}

		var entry Entry

		if err := json.Unmarshal([]byte(member), &entry); err != nil {
			q.logger.ErrorContext(ctx, "Dropping undecodable delayed action", "error", err)

			continue
		}

		if err := runner.ExecuteAction(ctx, entry.WorkflowID, entry.Action, entry.Context); err != nil {
			q.logger.ErrorContext(ctx, "Delayed action failed",
				"workflow_id", entry.WorkflowID,
				"action_type", entry.Action.Type,
				"error", err)
		}
	}

	return nil
}

func (q *Queue) Close() error {
	return q.client.Close()
}
