package location

import (
	"context"

	"github.com/fekuna/omnipos-assistant-service/internal/location/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
)

type UseCase interface {
	CreateLocation(ctx context.Context, input *dto.CreateLocationInput) (*model.Location, error)
	GetLocation(ctx context.Context, workspaceID, id string) (*model.Location, error)
	ListLocations(ctx context.Context, workspaceID string) ([]model.Location, error)
	UpdateLocation(ctx context.Context, input *dto.UpdateLocationInput) (*model.Location, error)
	DeactivateLocation(ctx context.Context, workspaceID, id string) (*model.Location, error)
}
