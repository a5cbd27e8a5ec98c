package action

import (
	"encoding/json"
	"fmt"
)

// Encode serialises an action with its kind as a "kind" field.
func Encode(a interface{ Kind() Kind }) (json.RawMessage, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	kind, err := json.Marshal(a.Kind())
	if err != nil {
		return nil, err
	}
	fields["kind"] = kind
	return json.Marshal(fields)
}

var resolvedTypes = map[Kind]func() Resolved{
	KindProductCreate:        func() Resolved { return &ResolvedProductCreate{} },
	KindProductUpdate:        func() Resolved { return &ResolvedProductUpdate{} },
	KindProductArchive:       func() Resolved { return &ResolvedProductArchive{} },
	KindLocationCreate:       func() Resolved { return &ResolvedLocationCreate{} },
	KindLocationUpdate:       func() Resolved { return &ResolvedLocationUpdate{} },
	KindLocationDeactivate:   func() Resolved { return &ResolvedLocationDeactivate{} },
	KindInventoryCreateEntry: func() Resolved { return &ResolvedInventoryCreateEntry{} },
	KindInventorySetQuantity: func() Resolved { return &ResolvedInventorySetQuantity{} },
	KindOrderCreateSale:      func() Resolved { return &ResolvedOrderSale{} },
	KindOrderCreateRestock:   func() Resolved { return &ResolvedOrderRestock{} },
	KindOrderCreateTransfer:  func() Resolved { return &ResolvedOrderTransfer{} },
	KindReadQuery:            func() Resolved { return &ResolvedReadQuery{} },
}

// DecodeResolved is the inverse of Encode for resolved actions.
func DecodeResolved(data []byte) (Resolved, error) {
	var head struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode resolved action: %w", err)
	}

	newAction, ok := resolvedTypes[head.Kind]
	if !ok {
		return nil, fmt.Errorf("decode resolved action: unknown kind %q", head.Kind)
	}
	r := newAction()
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("decode resolved action %s: %w", head.Kind, err)
	}
	return r, nil
}
