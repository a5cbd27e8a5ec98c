package order

import (
	"context"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
)

type Repository interface {
	// CreateWithEffects inserts the order and applies its inventory effect in one
	// transaction. Sales and transfers fail with inventory.ErrInsufficientStock
	// when the source row holds less than the order quantity.
	CreateWithEffects(ctx context.Context, order *model.Order, threshold int) (*model.OrderResult, error)
}
