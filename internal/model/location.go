package model

import "time"

type LocationType string

const (
	LocationWarehouse LocationType = "warehouse"
	LocationStore     LocationType = "store"
	LocationOnline    LocationType = "online"
)

func (t LocationType) Valid() bool {
	switch t {
	case LocationWarehouse, LocationStore, LocationOnline:
		return true
	}
	return false
}

type Location struct {
	ID          string       `db:"id" json:"id"`
	WorkspaceID string       `db:"workspace_id" json:"workspace_id"`
	Name        string       `db:"name" json:"name"`
	Type        LocationType `db:"type" json:"type"`
	City        string       `db:"city" json:"city"`
	IsActive    bool         `db:"is_active" json:"is_active"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}
