package dto

import (
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/action"
	"github.com/fekuna/omnipos-assistant-service/internal/assistant/executor"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
)

// Reason codes attached to plan requests rejected before a run exists.
const (
	CodeEmptyPrompt         = "EMPTY_PROMPT"
	CodePromptTooLong       = "PROMPT_TOO_LONG"
	CodeConversationTooLong = "CONVERSATION_ID_TOO_LONG"
	CodeRateLimited         = "RATE_LIMITED"
	CodeRunInitFailed       = "RUN_INIT_FAILED"
)

type PlanInput struct {
	WorkspaceID    string
	UserID         string
	Message        string
	ConversationID string
}

type PlanOutput struct {
	RunID            string                `json:"run_id,omitempty"`
	Status           model.RunStatus       `json:"status"`
	AssistantMessage string                `json:"assistant_message"`
	ActionPreview    *ActionPreview        `json:"action_preview,omitempty"`
	Clarification    *action.Clarification `json:"clarification,omitempty"`
	ReadResult       *executor.ReadResult  `json:"read_result,omitempty"`
}

// ActionPreview is what the user confirms before execution.
type ActionPreview struct {
	Kind     action.Kind `json:"kind"`
	Summary  string      `json:"summary"`
	Warnings []string    `json:"warnings"`
}

type ExecuteInput struct {
	WorkspaceID string
	UserID      string
	RunID       string
}

type ExecuteOutput struct {
	RunID            string          `json:"run_id"`
	Status           model.RunStatus `json:"status"`
	AssistantMessage string          `json:"assistant_message"`
	Execution        *Execution      `json:"execution,omitempty"`
}

type Execution struct {
	Succeeded bool           `json:"succeeded"`
	Kind      action.Kind    `json:"kind,omitempty"`
	Message   string         `json:"message,omitempty"`
	Affected  map[string]any `json:"affected,omitempty"`
}

// ExecutionRecord is the execution_result stored on an executed run.
type ExecutionRecord struct {
	Kind     action.Kind    `json:"kind"`
	Message  string         `json:"message"`
	Affected map[string]any `json:"affected"`
}

type RunView struct {
	Run     *model.CommandRun     `json:"run"`
	Actions []model.CommandAction `json:"actions"`
}
