package models

// ActionType enumerates the side effects a workflow can perform.
type ActionType string

const (
	ActionSendEmail    ActionType = "send_email"
	ActionChangeStatus ActionType = "change_status"
	ActionAssignTask   ActionType = "assign_task"
	ActionAddTag       ActionType = "add_tag"
	ActionNotifyTeam   ActionType = "notify_team"
)

// RecipientKind resolves to a concrete email address at execution time.
type RecipientKind string

const (
	RecipientCandidate     RecipientKind = "candidate"
	RecipientHiringManager RecipientKind = "hiring_manager"
)

// TeamRole identifies a hiring-team role used for task assignment and
// notification fan-out.
type TeamRole string

const (
	RoleRecruiter     TeamRole = "recruiter"
	RoleHiringManager TeamRole = "hiring_manager"
	RoleInterviewer   TeamRole = "interviewer"
)

// SendEmailConfig persists an outbound email with placeholders substituted.
// No email is created when the recipient cannot be resolved.
type SendEmailConfig struct {
	TemplateID string        `json:"template_id"`
	To         RecipientKind `json:"to"      validate:"required,oneof=candidate hiring_manager"`
	Subject    string        `json:"subject" validate:"required"`
	Body       string        `json:"body"    validate:"required"`
}

// ChangeStatusConfig patches the candidate status and records a timeline entry.
type ChangeStatusConfig struct {
	NewStatus string `json:"new_status" validate:"required"`
}

// AssignTaskConfig creates a task for the job's primary team member of the
// given role. The due date is computed as now plus DueDays days.
type AssignTaskConfig struct {
	TaskType    string   `json:"task_type"`
	AssignTo    TeamRole `json:"assign_to" validate:"required,oneof=recruiter hiring_manager"`
	Title       string   `json:"title"     validate:"required"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	DueDays     int      `json:"due_days"  validate:"min=0"`
}

// AddTagConfig appends a tag to the candidate's tag set.
type AddTagConfig struct {
	Tag string `json:"tag" validate:"required"`
}

// NotifyTeamConfig emits one notification and one activity entry per
// hiring-team member whose role is listed.
type NotifyTeamConfig struct {
	Message     string     `json:"message"      validate:"required"`
	NotifyRoles []TeamRole `json:"notify_roles" validate:"required,min=1"`
}

// Action is a tagged union: Type selects which config variant is set.
// DelayMinutes is accepted but deferred execution requires an external
// delay queue; without one the action runs immediately with a log notice.
type Action struct {
	Type         ActionType          `json:"type"                    validate:"required"`
	DelayMinutes int                 `json:"delay_minutes,omitempty" validate:"min=0"`
	SendEmail    *SendEmailConfig    `json:"send_email,omitempty"`
	ChangeStatus *ChangeStatusConfig `json:"change_status,omitempty"`
	AssignTask   *AssignTaskConfig   `json:"assign_task,omitempty"`
	AddTag       *AddTagConfig       `json:"add_tag,omitempty"`
	NotifyTeam   *NotifyTeamConfig   `json:"notify_team,omitempty"`
}
