package workflow

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/hireline/hireline/pkg/models"
)

var workflowSchema = map[string]any{
	"type":     "object",
	"required": []any{"name", "trigger", "actions"},
	"properties": map[string]any{
		"name": map[string]any{
			"type":      "string",
			"minLength": 3,
		},
		"description": map[string]any{"type": "string"},
		"trigger": map[string]any{
			"type":     "object",
			"required": []any{"type"},
			"properties": map[string]any{
				"type": map[string]any{
					"type": "string",
					"enum": []any{"status_change", "time_based", "score_threshold", "stage_duration"},
				},
			},
		},
		"actions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"type"},
				"properties": map[string]any{
					"type": map[string]any{
						"type": "string",
						"enum": []any{"send_email", "change_status", "assign_task", "add_tag", "notify_team"},
					},
					"delay_minutes": map[string]any{
						"type":    "integer",
						"minimum": 0,
					},
				},
			},
		},
		"scope": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"job_ids":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"departments": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
		},
	},
}

// ValidateDefinition checks a workflow definition structurally against the
// JSON schema and then enforces tagged-union consistency: the trigger and
// every action must carry exactly the payload variant its type names.
func ValidateDefinition(workflow *models.Workflow) error {
	schemaLoader := gojsonschema.NewGoLoader(workflowSchema)
	documentLoader := gojsonschema.NewGoLoader(workflow)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate workflow definition: %w", err)
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, resultError := range result.Errors() {
			messages = append(messages, resultError.String())
		}

		return fmt.Errorf("invalid workflow definition: %s", strings.Join(messages, "; "))
	}

	if err := validateTrigger(workflow.Trigger); err != nil {
		return err
	}

	for i, action := range workflow.Actions {
		if err := validateAction(action); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}

	return nil
}

func validateTrigger(trigger models.Trigger) error {
	switch trigger.Type {
	case models.TriggerStatusChange:
		if trigger.StatusChange == nil {
			return fmt.Errorf("trigger %q requires a status_change condition", trigger.Type)
		}
	case models.TriggerTimeBased:
		if trigger.TimeBased == nil || trigger.TimeBased.AfterMinutes < 1 {
			return fmt.Errorf("trigger %q requires a time_based condition with after_minutes >= 1", trigger.Type)
		}
	case models.TriggerScoreThreshold:
		if trigger.ScoreThreshold == nil {
			return fmt.Errorf("trigger %q requires a score_threshold condition", trigger.Type)
		}
	case models.TriggerStageDuration:
		if trigger.StageDuration == nil || trigger.StageDuration.MaxDays < 1 {
			return fmt.Errorf("trigger %q requires a stage_duration condition with max_days >= 1", trigger.Type)
		}
	default:
		return fmt.Errorf("unknown trigger type %q", trigger.Type)
	}

	return nil
}

func validateAction(action models.Action) error {
	switch action.Type {
	case models.ActionSendEmail:
		if action.SendEmail == nil {
			return fmt.Errorf("action %q requires a send_email config", action.Type)
		}
	case models.ActionChangeStatus:
		if action.ChangeStatus == nil {
			return fmt.Errorf("action %q requires a change_status config", action.Type)
		}
	case models.ActionAssignTask:
		if action.AssignTask == nil {
			return fmt.Errorf("action %q requires an assign_task config", action.Type)
		}
	case models.ActionAddTag:
		if action.AddTag == nil {
			return fmt.Errorf("action %q requires an add_tag config", action.Type)
		}
	case models.ActionNotifyTeam:
		if action.NotifyTeam == nil {
			return fmt.Errorf("action %q requires a notify_team config", action.Type)
		}
	default:
		return fmt.Errorf("unknown action type %q", action.Type)
	}

	return nil
}
