package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
)

// ErrStaleTransition is returned when a run is no longer in the status a
// transition expects, meaning another request already moved it.
var ErrStaleTransition = errors.New("run status changed concurrently")

// Transition moves a run from one status to another. Actions are inserted and
// ActionUpdate is applied in the same database transaction as the status change.
type Transition struct {
	RunID            string
	From             model.RunStatus
	To               model.RunStatus
	AssistantMessage string
	Clarification    model.JSON
	ExecutionResult  model.JSON
	NormalizedIntent model.JSON
	Error            *string
	ExecutedAt       *time.Time

	Actions      []model.CommandAction
	ActionUpdate *ActionUpdate
}

type ActionUpdate struct {
	ID     string
	Status model.ActionStatus
	Error  *string
	Result model.JSON
}

type Repository interface {
	CreateRun(ctx context.Context, run *model.CommandRun) error

	// CountRecentRuns counts runs the user started at or after since.
	CountRecentRuns(ctx context.Context, userID string, since time.Time) (int, error)

	// Transition returns ErrStaleTransition when the run is not in t.From.
	Transition(ctx context.Context, t *Transition) error

	// ClaimRun marks a needs_confirmation run as confirmed. Only the first
	// caller gets true.
	ClaimRun(ctx context.Context, runID string, at time.Time) (bool, error)

	GetRun(ctx context.Context, workspaceID, runID string) (*model.CommandRun, error)
	ListActions(ctx context.Context, runID string) ([]model.CommandAction, error)

	// ExecutableAction returns the lowest-index action carrying a resolved payload.
	ExecutableAction(ctx context.Context, runID string) (*model.CommandAction, error)
}

// RunCache holds views of runs that reached a terminal status.
type RunCache interface {
	Get(ctx context.Context, runID string) (*dto.RunView, error)
	Set(ctx context.Context, view *dto.RunView) error
}
