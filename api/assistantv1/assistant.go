// Package assistantv1 holds the request and response messages of the
// omnipos.assistant.v1.AssistantService. Messages are plain structs carried by
// the JSON codec in pkg/codec.
package assistantv1

import (
	"encoding/json"
	"time"
)

type PlanRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type PlanResponse struct {
	RunID            string         `json:"run_id"`
	Status           string         `json:"status"`
	AssistantMessage string         `json:"assistant_message"`
	ActionPreview    *ActionPreview `json:"action_preview,omitempty"`
	Clarification    *Clarification `json:"clarification,omitempty"`
	ReadResult       *ReadResult    `json:"read_result,omitempty"`
}

type ActionPreview struct {
	Kind     string   `json:"kind"`
	Summary  string   `json:"summary"`
	Warnings []string `json:"warnings,omitempty"`
}

type Clarification struct {
	Reason  string   `json:"reason"`
	Options []Option `json:"options,omitempty"`
}

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ReadResult struct {
	Message   string          `json:"message"`
	Rows      json.RawMessage `json:"rows"`
	ChartData *Chart          `json:"chart_data,omitempty"`
}

type Chart struct {
	Type  string          `json:"type"`
	Label string          `json:"label"`
	Data  json.RawMessage `json:"data"`
}

type ExecuteRequest struct {
	RunID string `json:"run_id"`
}

type ExecuteResponse struct {
	RunID            string     `json:"run_id"`
	Status           string     `json:"status"`
	AssistantMessage string     `json:"assistant_message"`
	Execution        *Execution `json:"execution,omitempty"`
}

type Execution struct {
	Succeeded bool           `json:"succeeded"`
	Kind      string         `json:"kind"`
	Message   string         `json:"message"`
	Affected  map[string]any `json:"affected,omitempty"`
}

type GetRunRequest struct {
	RunID string `json:"run_id"`
}

type GetRunResponse struct {
	Run     *Run      `json:"run"`
	Actions []*Action `json:"actions"`
}

type Run struct {
	ID               string          `json:"id"`
	ConversationID   string          `json:"conversation_id,omitempty"`
	Prompt           string          `json:"prompt"`
	Model            string          `json:"model"`
	Status           string          `json:"status"`
	AssistantMessage string          `json:"assistant_message"`
	Clarification    json.RawMessage `json:"clarification,omitempty"`
	ExecutionResult  json.RawMessage `json:"execution_result,omitempty"`
	NormalizedIntent json.RawMessage `json:"normalized_intent,omitempty"`
	Error            string          `json:"error,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	ConfirmedAt      *time.Time      `json:"confirmed_at,omitempty"`
	ExecutedAt       *time.Time      `json:"executed_at,omitempty"`
}

type Action struct {
	ID              string          `json:"id"`
	Index           int             `json:"index"`
	Kind            string          `json:"kind"`
	Status          string          `json:"status"`
	ActionPayload   json.RawMessage `json:"action_payload"`
	ResolvedPayload json.RawMessage `json:"resolved_payload,omitempty"`
	Result          json.RawMessage `json:"result,omitempty"`
	Error           string          `json:"error,omitempty"`
}
