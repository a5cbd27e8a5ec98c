// Package executor performs resolved actions against the domain usecases.
package executor

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant/action"
	"github.com/fekuna/omnipos-assistant-service/internal/catalog"
	"github.com/fekuna/omnipos-assistant-service/internal/inventory"
	invdto "github.com/fekuna/omnipos-assistant-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/location"
	locdto "github.com/fekuna/omnipos-assistant-service/internal/location/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/internal/order"
	orderdto "github.com/fekuna/omnipos-assistant-service/internal/order/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/product"
	proddto "github.com/fekuna/omnipos-assistant-service/internal/product/dto"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"go.uber.org/zap"
)

// Result is the outcome of one mutating action.
type Result struct {
	Message  string         `json:"message"`
	Affected map[string]any `json:"affected"`
}

type Mutator struct {
	products  product.UseCase
	locations location.UseCase
	inventory inventory.UseCase
	orders    order.UseCase
	logger    logger.ZapLogger
}

func NewMutator(products product.UseCase, locations location.UseCase, inv inventory.UseCase, orders order.UseCase, log logger.ZapLogger) *Mutator {
	return &Mutator{
		products:  products,
		locations: locations,
		inventory: inv,
		orders:    orders,
		logger:    log,
	}
}

// Execute performs exactly one domain operation (restock may first provision
// its inventory row). Errors are never retried.
func (m *Mutator) Execute(ctx context.Context, workspaceID string, a action.Resolved, snap *catalog.Snapshot) (*Result, error) {
	switch a := a.(type) {
	case *action.ResolvedProductCreate:
		sku := a.SKU
		if sku == "" {
			sku = GenerateSKU(a.Name, snap)
		}
		p, err := m.products.CreateProduct(ctx, &proddto.CreateProductInput{
			WorkspaceID: workspaceID,
			Name:        a.Name,
			SKU:         sku,
			Category:    a.Category,
			Threshold:   a.Threshold,
		})
		if err != nil {
			return nil, err
		}
		return &Result{
			Message:  fmt.Sprintf(`Product "%s" created successfully.`, p.Name),
			Affected: map[string]any{"product_id": p.ID, "sku": p.SKU},
		}, nil

	case *action.ResolvedProductUpdate:
		p, err := m.products.UpdateProduct(ctx, &proddto.UpdateProductInput{
			ID:          a.ProductID,
			WorkspaceID: workspaceID,
			Name:        a.Name,
			SKU:         a.SKU,
			Category:    a.Category,
			Threshold:   a.Threshold,
			IsActive:    a.IsActive,
		})
		if err != nil {
			return nil, err
		}
		return &Result{
			Message:  fmt.Sprintf(`Product "%s" updated successfully.`, p.Name),
			Affected: map[string]any{"product_id": p.ID},
		}, nil

	case *action.ResolvedProductArchive:
		if _, err := m.products.ArchiveProduct(ctx, workspaceID, a.ProductID); err != nil {
			return nil, err
		}
		return &Result{
			Message:  "Product archived successfully.",
			Affected: map[string]any{"product_id": a.ProductID, "archived": true},
		}, nil

	case *action.ResolvedLocationCreate:
		l, err := m.locations.CreateLocation(ctx, &locdto.CreateLocationInput{
			WorkspaceID: workspaceID,
			Name:        a.Name,
			Type:        a.Type,
			City:        a.City,
		})
		if err != nil {
			return nil, err
		}
		return &Result{
			Message:  fmt.Sprintf(`Location "%s" created successfully.`, l.Name),
			Affected: map[string]any{"location_id": l.ID},
		}, nil

	case *action.ResolvedLocationUpdate:
		l, err := m.locations.UpdateLocation(ctx, &locdto.UpdateLocationInput{
			ID:          a.LocationID,
			WorkspaceID: workspaceID,
			Name:        a.Name,
			Type:        a.Type,
			City:        a.City,
			IsActive:    a.IsActive,
		})
		if err != nil {
			return nil, err
		}
		return &Result{
			Message:  fmt.Sprintf(`Location "%s" updated successfully.`, l.Name),
			Affected: map[string]any{"location_id": l.ID},
		}, nil

	case *action.ResolvedLocationDeactivate:
		l, err := m.locations.DeactivateLocation(ctx, workspaceID, a.LocationID)
		if err != nil {
			return nil, err
		}
		return &Result{
			Message:  fmt.Sprintf(`Location "%s" deactivated successfully.`, l.Name),
			Affected: map[string]any{"location_id": l.ID, "is_active": false},
		}, nil

	case *action.ResolvedInventoryCreateEntry:
		item, err := m.inventory.CreateEntry(ctx, m.entry(workspaceID, a.StockLine, snap))
		if err != nil {
			return nil, err
		}
		return &Result{
			Message:  "Inventory entry created successfully.",
			Affected: stockAffected(item.ProductID, item.LocationID, item.Quantity),
		}, nil

	case *action.ResolvedInventorySetQuantity:
		item, err := m.inventory.SetQuantity(ctx, m.entry(workspaceID, a.StockLine, snap))
		if err != nil {
			return nil, err
		}
		return &Result{
			Message:  "Inventory quantity updated successfully.",
			Affected: stockAffected(item.ProductID, item.LocationID, item.Quantity),
		}, nil

	case *action.ResolvedOrderSale:
		return m.createOrder(ctx, workspaceID, model.OrderSale, a.StockLine, a.Note, snap)

	case *action.ResolvedOrderRestock:
		if _, err := m.inventory.EnsureItem(ctx, m.entry(workspaceID, a.StockLine, snap)); err != nil &&
			!errors.Is(err, inventory.ErrAlreadyExists) {
			return nil, fmt.Errorf("provision inventory row: %w", err)
		}
		return m.createOrder(ctx, workspaceID, model.OrderRestock, a.StockLine, a.Note, snap)

	case *action.ResolvedOrderTransfer:
		o, res, err := m.orders.CreateOrder(ctx, &orderdto.CreateOrderInput{
			WorkspaceID:  workspaceID,
			Type:         model.OrderTransfer,
			ProductID:    a.ProductID,
			LocationID:   a.FromLocationID,
			ToLocationID: a.ToLocationID,
			Quantity:     a.Quantity,
			Source:       model.SourceAI,
			Note:         a.Note,
			Threshold:    threshold(snap, a.ProductID),
		})
		if err != nil {
			return nil, err
		}
		return &Result{
			Message: "Transfer order created successfully.",
			Affected: map[string]any{
				"order_id":         o.ID,
				"product_id":       a.ProductID,
				"from_location_id": a.FromLocationID,
				"to_location_id":   a.ToLocationID,
				"from_quantity":    res.Quantity,
				"to_quantity":      res.ToQuantity,
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported mutating action %q", a.Kind())
}

func (m *Mutator) createOrder(ctx context.Context, workspaceID string, typ model.OrderType, line action.StockLine, note string, snap *catalog.Snapshot) (*Result, error) {
	o, res, err := m.orders.CreateOrder(ctx, &orderdto.CreateOrderInput{
		WorkspaceID: workspaceID,
		Type:        typ,
		ProductID:   line.ProductID,
		LocationID:  line.LocationID,
		Quantity:    line.Quantity,
		Source:      model.SourceAI,
		Note:        note,
		Threshold:   threshold(snap, line.ProductID),
	})
	if err != nil {
		return nil, err
	}

	m.logger.Debug("assistant order applied",
		zap.String("order_id", o.ID),
		zap.Int("inventory_before", res.InventoryBefore),
		zap.Int("inventory_after", res.Quantity),
	)

	label := "Sale"
	if typ == model.OrderRestock {
		label = "Restock"
	}
	affected := stockAffected(line.ProductID, line.LocationID, res.Quantity)
	affected["order_id"] = o.ID
	return &Result{
		Message:  label + " order created successfully.",
		Affected: affected,
	}, nil
}

func (m *Mutator) entry(workspaceID string, line action.StockLine, snap *catalog.Snapshot) *invdto.EntryInput {
	return &invdto.EntryInput{
		WorkspaceID: workspaceID,
		ProductID:   line.ProductID,
		LocationID:  line.LocationID,
		Quantity:    line.Quantity,
		Threshold:   threshold(snap, line.ProductID),
	}
}

func stockAffected(productID, locationID string, quantity int) map[string]any {
	return map[string]any{
		"product_id":  productID,
		"location_id": locationID,
		"quantity":    quantity,
	}
}

// threshold is the product's threshold, used for inventory rows created on its behalf.
func threshold(snap *catalog.Snapshot, productID string) int {
	if p := snap.ProductByID(productID); p != nil {
		return p.Threshold
	}
	return model.DefaultThreshold
}

const skuAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateSKU builds "<initials>-<4 random base-36 chars>" that is unused in snap.
// Initials are capped at four letters and fall back to "SKU".
func GenerateSKU(name string, snap *catalog.Snapshot) string {
	var initials strings.Builder
	for _, word := range strings.Fields(name) {
		if initials.Len() == 4 {
			break
		}
		initials.WriteString(strings.ToUpper(string([]rune(word)[0])))
	}
	base := initials.String()
	if base == "" {
		base = "SKU"
	}

	for {
		suffix := make([]byte, 4)
		for i := range suffix {
			suffix[i] = skuAlphabet[rand.IntN(len(skuAlphabet))]
		}
		candidate := base + "-" + string(suffix)

		taken := false
		for _, p := range snap.Products {
			if strings.EqualFold(p.SKU, candidate) {
				taken = true
				break
			}
		}
		if !taken {
			return candidate
		}
	}
}

// FailureMessage turns an execution error into the message shown to the user.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, product.ErrSKUExists):
		return "SKU already exists in your workspace."
	case errors.Is(err, product.ErrNotFound):
		return "Product not found in current workspace."
	case errors.Is(err, location.ErrNotFound):
		return "Location not found in current workspace."
	case errors.Is(err, inventory.ErrAlreadyExists):
		return "An inventory entry already exists for this product and location."
	case errors.Is(err, inventory.ErrInsufficientStock):
		return "Not enough stock at the source location. The order was not created."
	default:
		return "The action could not be completed. No changes were applied."
	}
}
