// Package resolver binds the free-text references of a parsed action to
// catalog entities.
package resolver

import (
	"fmt"
	"math"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant/action"
	"github.com/fekuna/omnipos-assistant-service/internal/catalog"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
)

const DefaultNote = "Created via AI assistant"

// Resolve returns either the resolved action or the clarification explaining
// why it could not be resolved. References are looked up independently and the
// first failing lookup is reported.
func Resolve(a action.Action, snap *catalog.Snapshot) (action.Resolved, *action.Clarification) {
	r := &resolution{snap: snap}
	out := r.resolve(a)
	if r.clarification != nil {
		return nil, r.clarification
	}
	return out, nil
}

// resolution records the first failed lookup; later lookups become no-ops.
type resolution struct {
	snap          *catalog.Snapshot
	clarification *action.Clarification
}

func (r *resolution) product(ref, fallback string) *model.Product {
	if r.clarification != nil {
		return nil
	}
	m := productLadder.find(r.snap.Products, ref)
	if m.status != resolved {
		r.clarification = productLadder.clarify(m, fallback)
		return nil
	}
	return m.value
}

func (r *resolution) location(ref, fallback string) *model.Location {
	if r.clarification != nil {
		return nil
	}
	m := locationLadder.find(r.snap.Locations, ref)
	if m.status != resolved {
		r.clarification = locationLadder.clarify(m, fallback)
		return nil
	}
	return m.value
}

func (r *resolution) resolve(a action.Action) action.Resolved {
	switch a := a.(type) {
	case *action.ProductCreate:
		threshold := model.DefaultThreshold
		if a.Threshold != nil {
			threshold = floor(*a.Threshold)
		}
		warnings := []string{}
		if a.SKU == "" {
			warnings = append(warnings, "SKU missing: an SKU will be generated.")
		}
		return &action.ResolvedProductCreate{
			Name:      a.Name,
			SKU:       a.SKU,
			Category:  a.Category,
			Threshold: threshold,
			Meta: meta(
				fmt.Sprintf(`Create product "%s" in "%s" with threshold %d.`, a.Name, a.Category, threshold),
				warnings...,
			),
		}

	case *action.ProductUpdate:
		p := r.product(a.ProductRef, "I could not uniquely identify the product to update.")
		if p == nil {
			return nil
		}
		out := &action.ResolvedProductUpdate{
			ProductID: p.ID,
			Name:      optional(a.Name),
			SKU:       optional(a.SKU),
			Category:  optional(a.Category),
			IsActive:  a.IsActive,
			Meta:      meta(fmt.Sprintf(`Update product "%s".`, p.Name)),
		}
		if a.Threshold != nil {
			t := floor(*a.Threshold)
			out.Threshold = &t
		}
		return out

	case *action.ProductArchive:
		p := r.product(a.ProductRef, "I could not uniquely identify the product to archive.")
		if p == nil {
			return nil
		}
		return &action.ResolvedProductArchive{
			ProductID: p.ID,
			Meta: meta(
				fmt.Sprintf(`Archive product "%s" (soft-delete).`, p.Name),
				"Product archive is a soft-delete operation.",
			),
		}

	case *action.LocationCreate:
		return &action.ResolvedLocationCreate{
			Name: a.Name,
			Type: model.LocationType(a.Type),
			City: a.City,
			Meta: meta(fmt.Sprintf(`Create %s location "%s" in %s.`, a.Type, a.Name, a.City)),
		}

	case *action.LocationUpdate:
		l := r.location(a.LocationRef, "I could not uniquely identify the location to update.")
		if l == nil {
			return nil
		}
		out := &action.ResolvedLocationUpdate{
			LocationID: l.ID,
			Name:       optional(a.Name),
			City:       optional(a.City),
			IsActive:   a.IsActive,
			Meta:       meta(fmt.Sprintf(`Update location "%s".`, l.Name)),
		}
		if a.Type != "" {
			t := model.LocationType(a.Type)
			out.Type = &t
		}
		return out

	case *action.LocationDeactivate:
		l := r.location(a.LocationRef, "I could not uniquely identify the location to deactivate.")
		if l == nil {
			return nil
		}
		return &action.ResolvedLocationDeactivate{
			LocationID: l.ID,
			Meta: meta(
				fmt.Sprintf(`Deactivate location "%s" (soft-delete).`, l.Name),
				"Location deactivation is a soft-delete operation.",
			),
		}

	case *action.InventoryCreateEntry:
		line, p, l := r.stockLine(a.StockRef, "I could not uniquely identify the inventory product.", "I could not uniquely identify the inventory location.")
		if p == nil || l == nil {
			return nil
		}
		return &action.ResolvedInventoryCreateEntry{
			StockLine: line,
			Meta: meta(fmt.Sprintf(`Create inventory entry for "%s" at "%s" with quantity %d.`,
				p.Name, l.Name, line.Quantity)),
		}

	case *action.InventorySetQuantity:
		line, p, l := r.stockLine(a.StockRef, "I could not uniquely identify the inventory product.", "I could not uniquely identify the inventory location.")
		if p == nil || l == nil {
			return nil
		}
		return &action.ResolvedInventorySetQuantity{
			StockLine: line,
			Meta:      meta(fmt.Sprintf(`Set inventory for "%s" at "%s" to %d.`, p.Name, l.Name, line.Quantity)),
		}

	case *action.OrderCreateSale:
		line, p, l := r.stockLine(a.StockRef, "I could not uniquely identify the order product.", "I could not uniquely identify the order location.")
		if p == nil || l == nil {
			return nil
		}
		return &action.ResolvedOrderSale{
			StockLine: line,
			Note:      note(a.Note),
			Meta: meta(fmt.Sprintf(`Create sale order for %d units of "%s" at "%s".`,
				line.Quantity, p.Name, l.Name)),
		}

	case *action.OrderCreateRestock:
		line, p, l := r.stockLine(a.StockRef, "I could not uniquely identify the order product.", "I could not uniquely identify the order location.")
		if p == nil || l == nil {
			return nil
		}
		return &action.ResolvedOrderRestock{
			StockLine: line,
			Note:      note(a.Note),
			Meta: meta(fmt.Sprintf(`Create restock order for %d units of "%s" at "%s".`,
				line.Quantity, p.Name, l.Name)),
		}

	case *action.OrderCreateTransfer:
		p := r.product(a.ProductRef, "I could not uniquely identify the transfer product.")
		from := r.location(a.FromLocationRef, "I could not uniquely identify the source location.")
		to := r.location(a.ToLocationRef, "I could not uniquely identify the destination location.")
		if p == nil || from == nil || to == nil {
			return nil
		}
		qty := floor(*a.Quantity)
		return &action.ResolvedOrderTransfer{
			ProductID:      p.ID,
			FromLocationID: from.ID,
			ToLocationID:   to.ID,
			Quantity:       qty,
			Note:           note(a.Note),
			Meta: meta(fmt.Sprintf(`Create transfer order for %d units of "%s" from "%s" to "%s".`,
				qty, p.Name, from.Name, to.Name)),
		}

	case *action.ReadQuery:
		return r.readQuery(a)
	}

	r.clarification = &action.Clarification{
		Message: fmt.Sprintf("Unsupported action %q.", a.Kind()),
		Options: []action.Option{},
	}
	return nil
}

func (r *resolution) stockLine(ref action.StockRef, productFallback, locationFallback string) (action.StockLine, *model.Product, *model.Location) {
	p := r.product(ref.ProductRef, productFallback)
	l := r.location(ref.LocationRef, locationFallback)
	if p == nil || l == nil {
		return action.StockLine{}, nil, nil
	}
	return action.StockLine{ProductID: p.ID, LocationID: l.ID, Quantity: floor(*ref.Quantity)}, p, l
}

func (r *resolution) readQuery(a *action.ReadQuery) action.Resolved {
	switch a.Intent {
	case action.IntentStockByProduct:
		p := r.product(a.ProductRef, "I could not uniquely identify the product for stock lookup.")
		if p == nil {
			return nil
		}
		return &action.ResolvedReadQuery{
			Intent:    a.Intent,
			ProductID: p.ID,
			Meta:      meta(fmt.Sprintf(`Show stock by location for "%s".`, p.Name)),
		}
	case action.IntentLocationSnapshot:
		l := r.location(a.LocationRef, "I could not uniquely identify the location snapshot target.")
		if l == nil {
			return nil
		}
		return &action.ResolvedReadQuery{
			Intent:     a.Intent,
			LocationID: l.ID,
			Meta:       meta(fmt.Sprintf(`Show inventory snapshot for "%s".`, l.Name)),
		}
	case action.IntentLowStock:
		return &action.ResolvedReadQuery{Intent: a.Intent, Meta: meta("Show low-stock items.")}
	default:
		return &action.ResolvedReadQuery{Intent: a.Intent, Meta: meta("Show overall inventory summary.")}
	}
}

func meta(summary string, warnings ...string) action.Meta {
	if warnings == nil {
		warnings = []string{}
	}
	return action.Meta{Summary: summary, Warnings: warnings}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func note(s string) string {
	if s == "" {
		return DefaultNote
	}
	return s
}

// floor truncates toward negative infinity so fractional quantities never round
// up. Values beyond model.MaxQuantity are clamped one past it so preflight can
// still reject them.
func floor(v float64) int {
	limit := float64(model.MaxQuantity + 1)
	return int(math.Max(-limit, math.Min(limit, math.Floor(v))))
}
