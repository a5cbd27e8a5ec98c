package inventory

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
)

var (
	// ErrAlreadyExists is returned by Insert when the (product, location) row exists.
	ErrAlreadyExists     = errors.New("inventory item already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Repository interface {
	GetItem(ctx context.Context, workspaceID, productID, locationID string) (*model.InventoryItem, error)

	// Insert-or-ignore; never overwrites an existing row.
	Insert(ctx context.Context, item *model.InventoryItem) error
	Upsert(ctx context.Context, item *model.InventoryItem) error

	// Inventory joined with product and location, for reporting
	ListWithRelations(ctx context.Context, workspaceID string) ([]model.InventoryRow, error)
}
