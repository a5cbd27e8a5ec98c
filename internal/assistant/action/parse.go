package action

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse returns the structurally valid elements of a model's action list.
// Malformed elements are dropped.
func Parse(raw []json.RawMessage) []Action {
	actions := make([]Action, 0, len(raw))
	for _, r := range raw {
		if a, ok := ParseOne(r); ok {
			actions = append(actions, a)
		}
	}
	return actions
}

func ParseOne(raw json.RawMessage) (Action, bool) {
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil || f == nil {
		return nil, false
	}

	a := build(f)
	if a == nil {
		return nil, false
	}
	if err := validate.Struct(a); err != nil {
		return nil, false
	}
	return a, true
}

func build(f fields) Action {
	switch Kind(f.str("kind")) {
	case KindProductCreate:
		return &ProductCreate{
			Name:      f.str("name"),
			Category:  f.str("category"),
			SKU:       f.str("sku"),
			Threshold: f.num("threshold"),
		}
	case KindProductUpdate:
		return &ProductUpdate{
			ProductRef: f.str("product_ref"),
			Name:       f.str("name"),
			SKU:        f.str("sku"),
			Category:   f.str("category"),
			Threshold:  f.num("threshold"),
			IsActive:   f.boolean("is_active"),
		}
	case KindProductArchive:
		return &ProductArchive{ProductRef: f.str("product_ref")}
	case KindLocationCreate:
		return &LocationCreate{
			Name: f.str("name"),
			Type: strings.ToLower(f.str("type")),
			City: f.str("city"),
		}
	case KindLocationUpdate:
		return &LocationUpdate{
			LocationRef: f.str("location_ref"),
			Name:        f.str("name"),
			Type:        f.locationType("type"),
			City:        f.str("city"),
			IsActive:    f.boolean("is_active"),
		}
	case KindLocationDeactivate:
		return &LocationDeactivate{LocationRef: f.str("location_ref")}
	case KindInventoryCreateEntry:
		return &InventoryCreateEntry{StockRef: f.stockRef()}
	case KindInventorySetQuantity:
		return &InventorySetQuantity{StockRef: f.stockRef()}
	case KindOrderCreateSale:
		return &OrderCreateSale{StockRef: f.stockRef(), Note: f.str("note")}
	case KindOrderCreateRestock:
		return &OrderCreateRestock{StockRef: f.stockRef(), Note: f.str("note")}
	case KindOrderCreateTransfer:
		return &OrderCreateTransfer{
			ProductRef:      f.str("product_ref"),
			FromLocationRef: f.str("from_location_ref"),
			ToLocationRef:   f.str("to_location_ref"),
			Quantity:        f.num("quantity"),
			Note:            f.str("note"),
		}
	case KindReadQuery:
		return &ReadQuery{
			Intent:      ReadIntent(strings.ToLower(f.str("intent"))),
			ProductRef:  f.str("product_ref"),
			LocationRef: f.str("location_ref"),
		}
	}
	return nil
}

// fields is one decoded action object. Accessors coerce loosely typed model
// output: blank strings are absent, numbers may be quoted.
type fields map[string]any

func (f fields) str(key string) string {
	s, _ := f[key].(string)
	return strings.TrimSpace(s)
}

func (f fields) num(key string) *float64 {
	var v float64
	switch raw := f[key].(type) {
	case float64:
		v = raw
	case string:
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		v = parsed
	default:
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (f fields) boolean(key string) *bool {
	var v bool
	switch raw := f[key].(type) {
	case bool:
		v = raw
	case string:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true":
			v = true
		case "false":
			v = false
		default:
			return nil
		}
	default:
		return nil
	}
	return &v
}

// locationType returns the case-folded type, or "" when it is not a known type.
func (f fields) locationType(key string) string {
	switch t := strings.ToLower(f.str(key)); t {
	case "warehouse", "store", "online":
		return t
	}
	return ""
}

func (f fields) stockRef() StockRef {
	return StockRef{
		ProductRef:  f.str("product_ref"),
		LocationRef: f.str("location_ref"),
		Quantity:    f.num("quantity"),
	}
}
