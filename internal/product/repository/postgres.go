package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/internal/product"
	"github.com/fekuna/omnipos-assistant-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, workspace_id, name, sku, category, threshold, is_active, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (` + productColumns + `)
        VALUES (
            :id, :workspace_id, :name, :sku, :category, :threshold, :is_active, :created_at, :updated_at
        )
        ON CONFLICT DO NOTHING
    `
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return product.ErrSKUExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return product.ErrSKUExists
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, workspaceID, id string) (*model.Product, error) {
	var p model.Product
	query := r.DB.Rebind(`SELECT ` + productColumns + ` FROM products WHERE workspace_id = ? AND id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &p, query, workspaceID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, workspaceID string) ([]model.Product, error) {
	products := []model.Product{}
	query := r.DB.Rebind(`SELECT ` + productColumns + ` FROM products WHERE workspace_id = ? ORDER BY name, id`)
	if err := r.DB.SelectContext(ctx, &products, query, workspaceID); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            sku = :sku,
            category = :category,
            threshold = :threshold,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND workspace_id = :workspace_id
    `
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return product.ErrSKUExists
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (r *PGRepository) Archive(ctx context.Context, workspaceID, id string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Deactivate
	res, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE products SET is_active = ?, updated_at = ? WHERE workspace_id = ? AND id = ?`),
		false, time.Now().UTC(), workspaceID, id)
	if err != nil {
		return fmt.Errorf("failed to archive product: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return product.ErrNotFound
	}

	// 2. Drop stock rows
	_, err = tx.ExecContext(ctx,
		tx.Rebind(`DELETE FROM inventory_items WHERE workspace_id = ? AND product_id = ?`),
		workspaceID, id)
	if err != nil {
		return fmt.Errorf("failed to remove inventory: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, workspaceID, sku, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE workspace_id = ? AND lower(sku) = lower(?)`
	args := []interface{}{workspaceID, sku}
	if excludeID != "" {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}

	err := r.DB.GetContext(ctx, &count, r.DB.Rebind(query), args...)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
