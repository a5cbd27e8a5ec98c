package model

import "time"

type OrderType string

const (
	OrderSale     OrderType = "sale"
	OrderRestock  OrderType = "restock"
	OrderTransfer OrderType = "transfer"
)

type OrderSource string

const (
	SourceManual OrderSource = "manual"
	SourceAI     OrderSource = "ai"
)

// Order is append-only. Corrections are made with compensating orders.
type Order struct {
	ID           string      `db:"id"`
	WorkspaceID  string      `db:"workspace_id"`
	ProductID    string      `db:"product_id"`
	LocationID   string      `db:"location_id"`
	ToLocationID *string     `db:"to_location_id"`
	Type         OrderType   `db:"type"`
	Quantity     int         `db:"quantity"`
	Source       OrderSource `db:"source"`
	Note         string      `db:"note"`
	CreatedAt    time.Time   `db:"created_at"`
}

// OrderResult reports the order id and the inventory levels after it was applied.
type OrderResult struct {
	OrderID         string
	Quantity        int // resulting quantity at LocationID
	ToQuantity      int // resulting quantity at ToLocationID, transfers only
	InventoryBefore int
}
