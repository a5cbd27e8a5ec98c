package executor

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant/action"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
)

const (
	lowStockChartLimit = 10
	snapshotChartLimit = 12
)

// ReadResult is the answer to a read.query. Rows hold the full result set;
// Chart holds the subset worth plotting.
type ReadResult struct {
	Message string `json:"message"`
	Rows    any    `json:"rows"`
	Chart   *Chart `json:"chart_data,omitempty"`
}

type Chart struct {
	Type  string `json:"type"` // bar | pie
	Label string `json:"label,omitempty"`
	Data  any    `json:"data"`
}

type StockRow struct {
	Location  string `json:"location"`
	Product   string `json:"product"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}

type CategoryRow struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type BarPoint struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}

type PiePoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// InventoryLister is the slice of the inventory usecase reads depend on.
type InventoryLister interface {
	ListInventory(ctx context.Context, workspaceID string) ([]model.InventoryRow, error)
}

type Reader struct {
	inventory InventoryLister
}

func NewReader(inventory InventoryLister) *Reader {
	return &Reader{inventory: inventory}
}

func (r *Reader) Query(ctx context.Context, workspaceID string, q *action.ResolvedReadQuery) (*ReadResult, error) {
	rows, err := r.inventory.ListInventory(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	switch q.Intent {
	case action.IntentLowStock:
		return lowStock(rows), nil
	case action.IntentInventorySummary:
		return inventorySummary(rows), nil
	case action.IntentStockByProduct:
		return stockByProduct(rows, q.ProductID), nil
	case action.IntentLocationSnapshot:
		return locationSnapshot(rows, q.LocationID), nil
	}
	return nil, fmt.Errorf("unsupported read intent %q", q.Intent)
}

func lowStock(rows []model.InventoryRow) *ReadResult {
	low := []StockRow{}
	for _, row := range rows {
		if row.Quantity <= row.Threshold {
			low = append(low, stockRow(row))
		}
	}

	if len(low) == 0 {
		return &ReadResult{Message: "No low-stock items found.", Rows: low}
	}
	return &ReadResult{
		Message: fmt.Sprintf("Found %d low-stock item(s).", len(low)),
		Rows:    low,
		Chart: &Chart{
			Type:  "bar",
			Label: "Low Stock Items",
			Data:  bars(low, lowStockChartLimit, func(s StockRow) string { return s.Product }),
		},
	}
}

func inventorySummary(rows []model.InventoryRow) *ReadResult {
	total := 0
	byCategory := []CategoryRow{}
	index := map[string]int{}
	for _, row := range rows {
		total += row.Quantity
		category := row.Category
		if category == "" {
			category = "Uncategorized"
		}
		i, ok := index[category]
		if !ok {
			i = len(byCategory)
			index[category] = i
			byCategory = append(byCategory, CategoryRow{Category: category})
		}
		byCategory[i].Quantity += row.Quantity
	}

	pie := make([]PiePoint, 0, len(byCategory))
	for _, c := range byCategory {
		pie = append(pie, PiePoint{Name: c.Category, Value: c.Quantity})
	}

	return &ReadResult{
		Message: fmt.Sprintf("Inventory summary: %d rows, %d total units.", len(rows), total),
		Rows:    byCategory,
		Chart:   &Chart{Type: "pie", Label: "Stock by Category", Data: pie},
	}
}

func stockByProduct(rows []model.InventoryRow, productID string) *ReadResult {
	matched := filter(rows, func(r model.InventoryRow) bool { return r.ProductID == productID })

	label := "Product"
	if len(matched) > 0 {
		label = matched[0].Product
	}
	return &ReadResult{
		Message: fmt.Sprintf("Stock-by-product returned %d location row(s).", len(matched)),
		Rows:    matched,
		Chart: &Chart{
			Type:  "bar",
			Label: label + " Stock",
			Data:  bars(matched, len(matched), func(s StockRow) string { return s.Location }),
		},
	}
}

func locationSnapshot(rows []model.InventoryRow, locationID string) *ReadResult {
	matched := filter(rows, func(r model.InventoryRow) bool { return r.LocationID == locationID })

	label := "Location"
	if len(matched) > 0 {
		label = matched[0].Location
	}
	return &ReadResult{
		Message: fmt.Sprintf("Location snapshot returned %d product row(s).", len(matched)),
		Rows:    matched,
		Chart: &Chart{
			Type:  "bar",
			Label: label + " Snapshot",
			Data:  bars(matched, snapshotChartLimit, func(s StockRow) string { return s.Product }),
		},
	}
}

func filter(rows []model.InventoryRow, keep func(model.InventoryRow) bool) []StockRow {
	out := []StockRow{}
	for _, row := range rows {
		if keep(row) {
			out = append(out, stockRow(row))
		}
	}
	return out
}

func stockRow(row model.InventoryRow) StockRow {
	return StockRow{
		Location:  orDash(row.LocationName),
		Product:   orDash(row.ProductName),
		SKU:       orDash(row.SKU),
		Quantity:  row.Quantity,
		Threshold: row.Threshold,
	}
}

func bars(rows []StockRow, limit int, name func(StockRow) string) []BarPoint {
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]BarPoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, BarPoint{Name: name(row), Quantity: row.Quantity, Threshold: row.Threshold})
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
