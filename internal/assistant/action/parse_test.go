package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(s ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(s))
	for i := range s {
		out[i] = json.RawMessage(s[i])
	}
	return out
}

func TestParseCoercesLooseValues(t *testing.T) {
	actions := Parse(raw(
		`{"kind":"order.create_restock","product_ref":"  Green Tea ","location_ref":"Main","quantity":"20"}`,
		`{"kind":"location.create","name":"Hub","type":"WAREHOUSE","city":"Bandung"}`,
		`{"kind":"product.update","product_ref":"GT-1","is_active":"false","threshold":"  "}`,
		`{"kind":"read.query","intent":"Low_Stock"}`,
	))
	require.Len(t, actions, 4)

	restock := actions[0].(*OrderCreateRestock)
	assert.Equal(t, "Green Tea", restock.ProductRef)
	require.NotNil(t, restock.Quantity)
	assert.Equal(t, 20.0, *restock.Quantity)

	assert.Equal(t, "warehouse", actions[1].(*LocationCreate).Type)

	update := actions[2].(*ProductUpdate)
	require.NotNil(t, update.IsActive)
	assert.False(t, *update.IsActive)
	assert.Nil(t, update.Threshold)

	assert.Equal(t, IntentLowStock, actions[3].(*ReadQuery).Intent)
}

func TestParseDropsMalformedElements(t *testing.T) {
	actions := Parse(raw(
		`"restock please"`,
		`null`,
		`{"kind":"order.delete","order_id":"1"}`,
		`{"kind":"product.create","name":"Tea"}`,
		`{"kind":"location.create","name":"Hub","type":"depot","city":"X"}`,
		`{"kind":"inventory.set_quantity","product_ref":"Tea","location_ref":"Hub","quantity":"lots"}`,
		`{"kind":"order.create_sale","product_ref":"Tea","location_ref":"   ","quantity":1}`,
		`{"kind":"read.query","intent":"top_sellers"}`,
		`{"kind":"order.create_transfer","product_ref":"Tea","from_location_ref":"A","to_location_ref":"B","quantity":"NaN"}`,
		`{"kind":"inventory.set_quantity","product_ref":"Tea","location_ref":"Hub","quantity":0}`,
	))

	require.Len(t, actions, 1, "only the zero-quantity set survives")
	set := actions[0].(*InventorySetQuantity)
	assert.Equal(t, 0.0, *set.Quantity)
}

func TestParseLocationUpdateIgnoresUnknownType(t *testing.T) {
	actions := Parse(raw(`{"kind":"location.update","location_ref":"Hub","type":"depot","city":"Solo"}`))
	require.Len(t, actions, 1)

	u := actions[0].(*LocationUpdate)
	assert.Empty(t, u.Type)
	assert.Equal(t, "Solo", u.City)
}

func TestKindClassification(t *testing.T) {
	assert.Len(t, MutatingKinds, 11)
	assert.True(t, KindOrderCreateTransfer.Mutating())
	assert.False(t, KindReadQuery.Mutating())
	assert.True(t, KindReadQuery.Valid())
	assert.False(t, Kind("order.delete").Valid())
}
