// Package preflight checks a resolved action against business rules before it
// is planned or executed.
package preflight

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant/action"
	"github.com/fekuna/omnipos-assistant-service/internal/catalog"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
)

var msgTooLarge = fmt.Sprintf("Quantity must not exceed %d.", model.MaxQuantity)

// StockReader reads the live inventory row. A nil item means no stock.
type StockReader interface {
	GetItem(ctx context.Context, workspaceID, productID, locationID string) (*model.InventoryItem, error)
}

type Checker struct {
	stock StockReader
}

func NewChecker(stock StockReader) *Checker {
	return &Checker{stock: stock}
}

// Check returns a user-facing message when the action violates a rule. err is
// reserved for failures reading live state.
func (c *Checker) Check(ctx context.Context, workspaceID string, a action.Resolved, snap *catalog.Snapshot) (string, error) {
	switch a := a.(type) {
	case *action.ResolvedProductCreate:
		if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Category) == "" {
			return "Product name and category are required.", nil
		}
		if a.Threshold < 0 {
			return "Product threshold must be a non-negative integer.", nil
		}
		if a.Threshold > model.MaxQuantity {
			return msgTooLarge, nil
		}
		if a.SKU != "" && skuTaken(snap, a.SKU, "") {
			return fmt.Sprintf(`SKU "%s" already exists in your workspace.`, a.SKU), nil
		}

	case *action.ResolvedProductUpdate:
		if a.Name == nil && a.SKU == nil && a.Category == nil && a.Threshold == nil && a.IsActive == nil {
			return "No product fields were provided for update.", nil
		}
		if a.Threshold != nil && *a.Threshold < 0 {
			return "Product threshold must be a non-negative integer.", nil
		}
		if a.Threshold != nil && *a.Threshold > model.MaxQuantity {
			return msgTooLarge, nil
		}
		if a.SKU != nil && skuTaken(snap, *a.SKU, a.ProductID) {
			return fmt.Sprintf(`SKU "%s" already exists in your workspace.`, *a.SKU), nil
		}

	case *action.ResolvedLocationCreate:
		if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.City) == "" {
			return "Location name and city are required.", nil
		}

	case *action.ResolvedLocationUpdate:
		if a.Name == nil && a.Type == nil && a.City == nil && a.IsActive == nil {
			return "No location fields were provided for update.", nil
		}

	case *action.ResolvedInventoryCreateEntry:
		if a.Quantity <= 0 {
			return "Inventory entry quantity must be greater than zero.", nil
		}
		if a.Quantity > model.MaxQuantity {
			return msgTooLarge, nil
		}

	case *action.ResolvedInventorySetQuantity:
		if a.Quantity < 0 {
			return "Inventory quantity must be a non-negative integer.", nil
		}
		if a.Quantity > model.MaxQuantity {
			return msgTooLarge, nil
		}

	case *action.ResolvedOrderSale:
		if a.Quantity <= 0 {
			return "Order quantity must be greater than zero.", nil
		}
		if a.Quantity > model.MaxQuantity {
			return msgTooLarge, nil
		}
		return c.checkStock(ctx, workspaceID, a.ProductID, a.LocationID, a.Quantity, "Sale")

	case *action.ResolvedOrderTransfer:
		if a.Quantity <= 0 {
			return "Order quantity must be greater than zero.", nil
		}
		if a.Quantity > model.MaxQuantity {
			return msgTooLarge, nil
		}
		if a.FromLocationID == a.ToLocationID {
			return "From location and to location must be different for transfer orders.", nil
		}
		return c.checkStock(ctx, workspaceID, a.ProductID, a.FromLocationID, a.Quantity, "Transfer")

	case *action.ResolvedOrderRestock:
		if a.Quantity <= 0 {
			return "Order quantity must be greater than zero.", nil
		}
		if a.Quantity > model.MaxQuantity {
			return msgTooLarge, nil
		}
	}
	return "", nil
}

func (c *Checker) checkStock(ctx context.Context, workspaceID, productID, locationID string, quantity int, label string) (string, error) {
	item, err := c.stock.GetItem(ctx, workspaceID, productID, locationID)
	if err != nil {
		return "", fmt.Errorf("read inventory: %w", err)
	}
	available := 0
	if item != nil {
		available = item.Quantity
	}
	if available < quantity {
		return fmt.Sprintf("Current QTY is %d and order is %d. %s order can't be created.", available, quantity, label), nil
	}
	return "", nil
}

func skuTaken(snap *catalog.Snapshot, sku, excludeID string) bool {
	needle := strings.ToLower(strings.TrimSpace(sku))
	for _, p := range snap.Products {
		if p.ID != excludeID && strings.ToLower(strings.TrimSpace(p.SKU)) == needle {
			return true
		}
	}
	return false
}
