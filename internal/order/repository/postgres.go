package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-assistant-service/internal/inventory"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateWithEffects(ctx context.Context, o *model.Order, threshold int) (*model.OrderResult, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result := &model.OrderResult{OrderID: o.ID}

	// 1. Apply stock movement
	switch o.Type {
	case model.OrderSale:
		after, err := decrement(ctx, tx, o, o.LocationID)
		if err != nil {
			return nil, err
		}
		result.Quantity = after
		result.InventoryBefore = after + o.Quantity
	case model.OrderRestock:
		after, err := increment(ctx, tx, o, o.LocationID, threshold)
		if err != nil {
			return nil, err
		}
		result.Quantity = after
		result.InventoryBefore = after - o.Quantity
	case model.OrderTransfer:
		if o.ToLocationID == nil || *o.ToLocationID == o.LocationID {
			return nil, fmt.Errorf("transfer requires a distinct destination")
		}
		after, err := decrement(ctx, tx, o, o.LocationID)
		if err != nil {
			return nil, err
		}
		toAfter, err := increment(ctx, tx, o, *o.ToLocationID, threshold)
		if err != nil {
			return nil, err
		}
		result.Quantity = after
		result.InventoryBefore = after + o.Quantity
		result.ToQuantity = toAfter
	default:
		return nil, fmt.Errorf("unsupported order type %q", o.Type)
	}

	// 2. Record order
	query := `
        INSERT INTO orders (
            id, workspace_id, product_id, location_id, to_location_id,
            type, quantity, source, note, created_at
        )
        VALUES (
            :id, :workspace_id, :product_id, :location_id, :to_location_id,
            :type, :quantity, :source, :note, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, o); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

func decrement(ctx context.Context, tx *sqlx.Tx, o *model.Order, locationID string) (int, error) {
	var after int
	err := tx.GetContext(ctx, &after, tx.Rebind(`
        UPDATE inventory_items
        SET quantity = quantity - ?, updated_at = ?
        WHERE workspace_id = ? AND product_id = ? AND location_id = ? AND quantity >= ?
        RETURNING quantity
    `), o.Quantity, o.CreatedAt, o.WorkspaceID, o.ProductID, locationID, o.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, inventory.ErrInsufficientStock
		}
		return 0, fmt.Errorf("failed to decrement inventory: %w", err)
	}
	return after, nil
}

func increment(ctx context.Context, tx *sqlx.Tx, o *model.Order, locationID string, threshold int) (int, error) {
	var after int
	err := tx.GetContext(ctx, &after, tx.Rebind(`
        INSERT INTO inventory_items (id, workspace_id, product_id, location_id, quantity, threshold, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (product_id, location_id)
        DO UPDATE SET
            quantity = inventory_items.quantity + EXCLUDED.quantity,
            updated_at = EXCLUDED.updated_at
        RETURNING quantity
    `), uuid.New().String(), o.WorkspaceID, o.ProductID, locationID, o.Quantity, threshold, o.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to increment inventory: %w", err)
	}
	return after, nil
}
