// Package action defines the assistant's action vocabulary: the raw actions
// parsed from a model plan and the resolved actions that are executed.
package action

type Kind string

const (
	KindProductCreate        Kind = "product.create"
	KindProductUpdate        Kind = "product.update"
	KindProductArchive       Kind = "product.archive"
	KindLocationCreate       Kind = "location.create"
	KindLocationUpdate       Kind = "location.update"
	KindLocationDeactivate   Kind = "location.deactivate"
	KindInventoryCreateEntry Kind = "inventory.create_entry"
	KindInventorySetQuantity Kind = "inventory.set_quantity"
	KindOrderCreateSale      Kind = "order.create_sale"
	KindOrderCreateRestock   Kind = "order.create_restock"
	KindOrderCreateTransfer  Kind = "order.create_transfer"
	KindReadQuery            Kind = "read.query"
)

// MutatingKinds lists every kind that changes data, in prompt order.
var MutatingKinds = []Kind{
	KindProductCreate,
	KindProductUpdate,
	KindProductArchive,
	KindLocationCreate,
	KindLocationUpdate,
	KindLocationDeactivate,
	KindInventoryCreateEntry,
	KindInventorySetQuantity,
	KindOrderCreateSale,
	KindOrderCreateRestock,
	KindOrderCreateTransfer,
}

func (k Kind) Mutating() bool {
	for _, m := range MutatingKinds {
		if m == k {
			return true
		}
	}
	return false
}

func (k Kind) Valid() bool {
	return k == KindReadQuery || k.Mutating()
}

type ReadIntent string

const (
	IntentLowStock         ReadIntent = "low_stock"
	IntentInventorySummary ReadIntent = "inventory_summary"
	IntentStockByProduct   ReadIntent = "stock_by_product"
	IntentLocationSnapshot ReadIntent = "location_snapshot"
)

var ReadIntents = []ReadIntent{
	IntentLowStock,
	IntentInventorySummary,
	IntentStockByProduct,
	IntentLocationSnapshot,
}
