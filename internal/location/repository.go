package location

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
)

var ErrNotFound = errors.New("location not found")

type Repository interface {
	Create(ctx context.Context, location *model.Location) error
	FindByID(ctx context.Context, workspaceID, id string) (*model.Location, error)
	FindAll(ctx context.Context, workspaceID string) ([]model.Location, error)
	Update(ctx context.Context, location *model.Location) error
}
