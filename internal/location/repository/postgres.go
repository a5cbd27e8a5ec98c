package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-assistant-service/internal/location"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const locationColumns = `id, workspace_id, name, type, city, is_active, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, l *model.Location) error {
	query := `
        INSERT INTO locations (` + locationColumns + `)
        VALUES (:id, :workspace_id, :name, :type, :city, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, l)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, workspaceID, id string) (*model.Location, error) {
	var l model.Location
	query := r.DB.Rebind(`SELECT ` + locationColumns + ` FROM locations WHERE workspace_id = ? AND id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &l, query, workspaceID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *PGRepository) FindAll(ctx context.Context, workspaceID string) ([]model.Location, error) {
	locations := []model.Location{}
	query := r.DB.Rebind(`SELECT ` + locationColumns + ` FROM locations WHERE workspace_id = ? ORDER BY name, id`)
	if err := r.DB.SelectContext(ctx, &locations, query, workspaceID); err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *PGRepository) Update(ctx context.Context, l *model.Location) error {
	query := `
        UPDATE locations
        SET name = :name,
            type = :type,
            city = :city,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND workspace_id = :workspace_id
    `
	res, err := r.DB.NamedExecContext(ctx, query, l)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return location.ErrNotFound
	}
	return nil
}
