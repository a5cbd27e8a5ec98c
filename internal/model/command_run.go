package model

import "time"

type RunStatus string

const (
	RunProcessing         RunStatus = "processing"
	RunNeedsClarification RunStatus = "needs_clarification"
	RunNeedsConfirmation  RunStatus = "needs_confirmation"
	RunReadOnlyResponse   RunStatus = "read_only_response"
	RunExecuted           RunStatus = "executed"
	RunFailed             RunStatus = "failed"
)

var runTransitions = map[RunStatus][]RunStatus{
	RunProcessing: {
		RunNeedsClarification,
		RunNeedsConfirmation,
		RunReadOnlyResponse,
		RunFailed,
	},
	RunNeedsConfirmation: {RunExecuted, RunFailed},
}

// CanTransition reports whether a run may move from one status to another.
// needs_clarification, read_only_response, executed and failed are terminal.
func CanTransition(from, to RunStatus) bool {
	for _, s := range runTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s RunStatus) Terminal() bool {
	return len(runTransitions[s]) == 0
}

type ActionStatus string

const (
	ActionPlanned   ActionStatus = "planned"
	ActionValidated ActionStatus = "validated"
	ActionExecuted  ActionStatus = "executed"
	ActionFailed    ActionStatus = "failed"
)

// CommandRun is one assistant request and its outcome.
type CommandRun struct {
	ID               string     `db:"id" json:"id"`
	WorkspaceID      string     `db:"workspace_id" json:"workspace_id"`
	UserID           string     `db:"user_id" json:"user_id"`
	ConversationID   *string    `db:"conversation_id" json:"conversation_id"`
	Prompt           string     `db:"prompt" json:"prompt"`
	Model            string     `db:"model" json:"model"`
	Status           RunStatus  `db:"status" json:"status"`
	AssistantMessage string     `db:"assistant_message" json:"assistant_message"`
	Clarification    JSON       `db:"clarification" json:"clarification"`
	ExecutionResult  JSON       `db:"execution_result" json:"execution_result"`
	NormalizedIntent JSON       `db:"normalized_intent" json:"normalized_intent"`
	Error            *string    `db:"error" json:"error,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
	ConfirmedAt      *time.Time `db:"confirmed_at" json:"confirmed_at"`
	ExecutedAt       *time.Time `db:"executed_at" json:"executed_at"`
}

type CommandAction struct {
	ID              string       `db:"id" json:"id"`
	RunID           string       `db:"run_id" json:"run_id"`
	WorkspaceID     string       `db:"workspace_id" json:"workspace_id"`
	UserID          string       `db:"user_id" json:"user_id"`
	ActionIndex     int          `db:"action_index" json:"action_index"`
	Kind            string       `db:"kind" json:"kind"`
	ActionPayload   JSON         `db:"action_payload" json:"action_payload"`
	ResolvedPayload JSON         `db:"resolved_payload" json:"resolved_payload"`
	Status          ActionStatus `db:"status" json:"status"`
	Error           *string      `db:"error" json:"error,omitempty"`
	Result          JSON         `db:"result" json:"result"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`
}
