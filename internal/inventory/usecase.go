package inventory

import (
	"context"

	"github.com/fekuna/omnipos-assistant-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
)

type UseCase interface {
	GetItem(ctx context.Context, workspaceID, productID, locationID string) (*model.InventoryItem, error)

	// EnsureItem provisions an empty row. It returns ErrAlreadyExists when one is present.
	EnsureItem(ctx context.Context, input *dto.EntryInput) (*model.InventoryItem, error)
	CreateEntry(ctx context.Context, input *dto.EntryInput) (*model.InventoryItem, error)
	SetQuantity(ctx context.Context, input *dto.EntryInput) (*model.InventoryItem, error)

	ListInventory(ctx context.Context, workspaceID string) ([]model.InventoryRow, error)
}
