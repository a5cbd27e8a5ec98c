package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-assistant-service/internal/inventory"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

const itemColumns = `id, workspace_id, product_id, location_id, quantity, threshold, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetItem(ctx context.Context, workspaceID, productID, locationID string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	query := r.DB.Rebind(`
        SELECT ` + itemColumns + ` FROM inventory_items
        WHERE workspace_id = ? AND product_id = ? AND location_id = ?
    `)
	err := r.DB.GetContext(ctx, &item, query, workspaceID, productID, locationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) Insert(ctx context.Context, item *model.InventoryItem) error {
	query := `
        INSERT INTO inventory_items (` + itemColumns + `)
        VALUES (:id, :workspace_id, :product_id, :location_id, :quantity, :threshold, :updated_at)
        ON CONFLICT (product_id, location_id) DO NOTHING
    `
	res, err := r.DB.NamedExecContext(ctx, query, item)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return inventory.ErrAlreadyExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return inventory.ErrAlreadyExists
	}
	return nil
}

func (r *PGRepository) Upsert(ctx context.Context, item *model.InventoryItem) error {
	query := `
        INSERT INTO inventory_items (` + itemColumns + `)
        VALUES (:id, :workspace_id, :product_id, :location_id, :quantity, :threshold, :updated_at)
        ON CONFLICT (product_id, location_id)
        DO UPDATE SET
            quantity = EXCLUDED.quantity,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *PGRepository) ListWithRelations(ctx context.Context, workspaceID string) ([]model.InventoryRow, error) {
	rows := []model.InventoryRow{}
	query := r.DB.Rebind(`
        SELECT
            i.product_id, i.location_id, i.quantity, i.threshold,
            p.name AS product_name, p.sku, p.category,
            l.name AS location_name, l.type AS location_type, l.city
        FROM inventory_items i
        JOIN products p ON p.id = i.product_id
        JOIN locations l ON l.id = i.location_id
        WHERE i.workspace_id = ?
        ORDER BY p.name, l.name
    `)
	if err := r.DB.SelectContext(ctx, &rows, query, workspaceID); err != nil {
		return nil, err
	}
	return rows, nil
}
