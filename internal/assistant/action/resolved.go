package action

import "github.com/fekuna/omnipos-assistant-service/internal/model"

// Resolved is an action whose references are bound to catalog ids. It is
// stored verbatim on the run and decoded again at execution time.
type Resolved interface {
	Kind() Kind
	Info() *Meta
	isResolved()
}

// Meta is the human-facing description carried by every resolved action.
type Meta struct {
	Summary  string   `json:"summary"`
	Warnings []string `json:"warnings"`
}

func (m *Meta) Info() *Meta { return m }

type ResolvedProductCreate struct {
	Name      string `json:"name"`
	SKU       string `json:"sku,omitempty"`
	Category  string `json:"category"`
	Threshold int    `json:"threshold"`
	Meta
}

type ResolvedProductUpdate struct {
	ProductID string  `json:"product_id"`
	Name      *string `json:"name,omitempty"`
	SKU       *string `json:"sku,omitempty"`
	Category  *string `json:"category,omitempty"`
	Threshold *int    `json:"threshold,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	Meta
}

type ResolvedProductArchive struct {
	ProductID string `json:"product_id"`
	Meta
}

type ResolvedLocationCreate struct {
	Name string             `json:"name"`
	Type model.LocationType `json:"type"`
	City string             `json:"city"`
	Meta
}

type ResolvedLocationUpdate struct {
	LocationID string              `json:"location_id"`
	Name       *string             `json:"name,omitempty"`
	Type       *model.LocationType `json:"type,omitempty"`
	City       *string             `json:"city,omitempty"`
	IsActive   *bool               `json:"is_active,omitempty"`
	Meta
}

type ResolvedLocationDeactivate struct {
	LocationID string `json:"location_id"`
	Meta
}

type StockLine struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
}

type ResolvedInventoryCreateEntry struct {
	StockLine
	Meta
}

type ResolvedInventorySetQuantity struct {
	StockLine
	Meta
}

type ResolvedOrderSale struct {
	StockLine
	Note string `json:"note"`
	Meta
}

type ResolvedOrderRestock struct {
	StockLine
	Note string `json:"note"`
	Meta
}

type ResolvedOrderTransfer struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int    `json:"quantity"`
	Note           string `json:"note"`
	Meta
}

type ResolvedReadQuery struct {
	Intent     ReadIntent `json:"intent"`
	ProductID  string     `json:"product_id,omitempty"`
	LocationID string     `json:"location_id,omitempty"`
	Meta
}

func (*ResolvedProductCreate) Kind() Kind        { return KindProductCreate }
func (*ResolvedProductUpdate) Kind() Kind        { return KindProductUpdate }
func (*ResolvedProductArchive) Kind() Kind       { return KindProductArchive }
func (*ResolvedLocationCreate) Kind() Kind       { return KindLocationCreate }
func (*ResolvedLocationUpdate) Kind() Kind       { return KindLocationUpdate }
func (*ResolvedLocationDeactivate) Kind() Kind   { return KindLocationDeactivate }
func (*ResolvedInventoryCreateEntry) Kind() Kind { return KindInventoryCreateEntry }
func (*ResolvedInventorySetQuantity) Kind() Kind { return KindInventorySetQuantity }
func (*ResolvedOrderSale) Kind() Kind            { return KindOrderCreateSale }
func (*ResolvedOrderRestock) Kind() Kind         { return KindOrderCreateRestock }
func (*ResolvedOrderTransfer) Kind() Kind        { return KindOrderCreateTransfer }
func (*ResolvedReadQuery) Kind() Kind            { return KindReadQuery }

func (*ResolvedProductCreate) isResolved()        {}
func (*ResolvedProductUpdate) isResolved()        {}
func (*ResolvedProductArchive) isResolved()       {}
func (*ResolvedLocationCreate) isResolved()       {}
func (*ResolvedLocationUpdate) isResolved()       {}
func (*ResolvedLocationDeactivate) isResolved()   {}
func (*ResolvedInventoryCreateEntry) isResolved() {}
func (*ResolvedInventorySetQuantity) isResolved() {}
func (*ResolvedOrderSale) isResolved()            {}
func (*ResolvedOrderRestock) isResolved()         {}
func (*ResolvedOrderTransfer) isResolved()        {}
func (*ResolvedReadQuery) isResolved()            {}
