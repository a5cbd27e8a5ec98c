package assistant

import (
	"context"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant/dto"
)

type UseCase interface {
	Plan(ctx context.Context, input *dto.PlanInput) (*dto.PlanOutput, error)
	Execute(ctx context.Context, input *dto.ExecuteInput) (*dto.ExecuteOutput, error)
	GetRun(ctx context.Context, workspaceID, runID string) (*dto.RunView, error)
}
