package action

// Action is a structurally valid action as proposed by the model. References
// are still free text.
type Action interface {
	Kind() Kind
	isAction()
}

type ProductCreate struct {
	Name      string   `json:"name" validate:"required"`
	Category  string   `json:"category" validate:"required"`
	SKU       string   `json:"sku,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

type ProductUpdate struct {
	ProductRef string   `json:"product_ref" validate:"required"`
	Name       string   `json:"name,omitempty"`
	SKU        string   `json:"sku,omitempty"`
	Category   string   `json:"category,omitempty"`
	Threshold  *float64 `json:"threshold,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
}

type ProductArchive struct {
	ProductRef string `json:"product_ref" validate:"required"`
}

type LocationCreate struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=warehouse store online"`
	City string `json:"city" validate:"required"`
}

type LocationUpdate struct {
	LocationRef string `json:"location_ref" validate:"required"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty" validate:"omitempty,oneof=warehouse store online"`
	City        string `json:"city,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type LocationDeactivate struct {
	LocationRef string `json:"location_ref" validate:"required"`
}

// StockRef is the product/location/quantity triple shared by inventory and
// single-location order actions.
type StockRef struct {
	ProductRef  string   `json:"product_ref" validate:"required"`
	LocationRef string   `json:"location_ref" validate:"required"`
	Quantity    *float64 `json:"quantity" validate:"required"`
}

type InventoryCreateEntry struct {
	StockRef
}

type InventorySetQuantity struct {
	StockRef
}

type OrderCreateSale struct {
	StockRef
	Note string `json:"note,omitempty"`
}

type OrderCreateRestock struct {
	StockRef
	Note string `json:"note,omitempty"`
}

type OrderCreateTransfer struct {
	ProductRef      string   `json:"product_ref" validate:"required"`
	FromLocationRef string   `json:"from_location_ref" validate:"required"`
	ToLocationRef   string   `json:"to_location_ref" validate:"required"`
	Quantity        *float64 `json:"quantity" validate:"required"`
	Note            string   `json:"note,omitempty"`
}

type ReadQuery struct {
	Intent      ReadIntent `json:"intent" validate:"required,oneof=low_stock inventory_summary stock_by_product location_snapshot"`
	ProductRef  string     `json:"product_ref,omitempty"`
	LocationRef string     `json:"location_ref,omitempty"`
}

func (*ProductCreate) Kind() Kind        { return KindProductCreate }
func (*ProductUpdate) Kind() Kind        { return KindProductUpdate }
func (*ProductArchive) Kind() Kind       { return KindProductArchive }
func (*LocationCreate) Kind() Kind       { return KindLocationCreate }
func (*LocationUpdate) Kind() Kind       { return KindLocationUpdate }
func (*LocationDeactivate) Kind() Kind   { return KindLocationDeactivate }
func (*InventoryCreateEntry) Kind() Kind { return KindInventoryCreateEntry }
func (*InventorySetQuantity) Kind() Kind { return KindInventorySetQuantity }
func (*OrderCreateSale) Kind() Kind      { return KindOrderCreateSale }
func (*OrderCreateRestock) Kind() Kind   { return KindOrderCreateRestock }
func (*OrderCreateTransfer) Kind() Kind  { return KindOrderCreateTransfer }
func (*ReadQuery) Kind() Kind            { return KindReadQuery }

func (*ProductCreate) isAction()        {}
func (*ProductUpdate) isAction()        {}
func (*ProductArchive) isAction()       {}
func (*LocationCreate) isAction()       {}
func (*LocationUpdate) isAction()       {}
func (*LocationDeactivate) isAction()   {}
func (*InventoryCreateEntry) isAction() {}
func (*InventorySetQuantity) isAction() {}
func (*OrderCreateSale) isAction()      {}
func (*OrderCreateRestock) isAction()   {}
func (*OrderCreateTransfer) isAction()  {}
func (*ReadQuery) isAction()            {}
