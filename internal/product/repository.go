package product

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrSKUExists = errors.New("product sku already exists")
)

type Repository interface {
	// Create returns ErrSKUExists when the workspace already has the SKU.
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, workspaceID, id string) (*model.Product, error)
	FindAll(ctx context.Context, workspaceID string) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error

	// Archive marks the product inactive and removes its inventory rows in one transaction.
	Archive(ctx context.Context, workspaceID, id string) error

	// Case-insensitive SKU uniqueness check
	IsSKUUnique(ctx context.Context, workspaceID, sku, excludeID string) (bool, error)
}
