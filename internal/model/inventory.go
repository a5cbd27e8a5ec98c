package model

import "time"

// MaxQuantity caps any stock quantity or threshold so it fits an INTEGER column.
const MaxQuantity = 1_000_000_000

// InventoryItem is the stock of one product at one location. At most one row
// exists per (product, location).
type InventoryItem struct {
	ID          string    `db:"id"`
	WorkspaceID string    `db:"workspace_id"`
	ProductID   string    `db:"product_id"`
	LocationID  string    `db:"location_id"`
	Quantity    int       `db:"quantity"`
	Threshold   int       `db:"threshold"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// InventoryRow is an inventory item joined with its product and location.
type InventoryRow struct {
	ProductID    string       `db:"product_id"`
	LocationID   string       `db:"location_id"`
	Quantity     int          `db:"quantity"`
	Threshold    int          `db:"threshold"`
	ProductName  string       `db:"product_name"`
	SKU          string       `db:"sku"`
	Category     string       `db:"category"`
	LocationName string       `db:"location_name"`
	LocationType LocationType `db:"location_type"`
	City         string       `db:"city"`
}
