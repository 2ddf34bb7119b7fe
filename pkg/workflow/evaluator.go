// Package workflow implements the trigger/condition/action automation
// engine over hiring pipeline entities.
package workflow

import (
	"time"

	"github.com/hireline/hireline/pkg/events"
	"github.com/hireline/hireline/pkg/models"
)

// Matches reports whether a trigger condition matches the event context at
// the given wall-clock instant. It is pure and total: an unrecognized
// trigger type, a missing condition payload, or a missing context field the
// condition needs all evaluate to false.
//
// Time-based conditions compare against now, not the event time, so a
// non-matching check can flip to matching on a later re-invocation.
func Matches(trigger models.Trigger, tctx events.TriggerContext, now time.Time) bool {
	switch trigger.Type {
	case models.TriggerStatusChange:
		cond := trigger.StatusChange
		if cond == nil {
			return false
		}

		return statusEqual(cond.FromStatus, tctx.FromStatus) && statusEqual(cond.ToStatus, tctx.ToStatus)

	case models.TriggerTimeBased:
		cond := trigger.TimeBased
		if cond == nil || tctx.Timestamp.IsZero() {
			return false
		}

		return now.Sub(tctx.Timestamp) >= time.Duration(cond.AfterMinutes)*time.Minute

	case models.TriggerScoreThreshold:
		cond := trigger.ScoreThreshold
		if cond == nil || tctx.Score == nil {
			return false
		}

		return *tctx.Score >= cond.MinScore

	case models.TriggerStageDuration:
		cond := trigger.StageDuration
		if cond == nil || tctx.EnteredStage == nil {
			return false
		}

		return now.Sub(*tctx.EnteredStage) >= time.Duration(cond.MaxDays)*24*time.Hour

	default:
		return false
	}
}

// statusEqual treats a nil condition value as "the context field must also
// be absent", never as a wildcard.
func statusEqual(condition, context *string) bool {
	if condition == nil || context == nil {
		return condition == nil && context == nil
	}

	return *condition == *context
}
