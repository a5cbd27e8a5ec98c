package resolver

import (
	"fmt"
	"testing"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant/action"
	"github.com/fekuna/omnipos-assistant-service/internal/catalog"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(v float64) *float64 { return &v }

func snapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Products: []model.Product{
			{ID: "p-tea", Name: "Green Tea", SKU: "GT-001"},
			{ID: "p-tea-l", Name: "Green Tea Large", SKU: "GT-002"},
			{ID: "p-mug", Name: "Mug", SKU: "MUG-1"},
			{ID: "p-gt", Name: "Gift Tag", SKU: "gt"},
		},
		Locations: []model.Location{
			{ID: "l-main", Name: "Main Warehouse", City: "Jakarta", Type: model.LocationWarehouse},
			{ID: "l-north", Name: "North Store", City: "Bandung", Type: model.LocationStore},
			{ID: "l-south", Name: "South Store", City: "Bandung", Type: model.LocationStore},
		},
	}
}

func TestExactSKUWinsOverSubstring(t *testing.T) {
	// "gt" is a substring of three SKUs but the exact SKU of one product.
	res, c := Resolve(&action.ProductArchive{ProductRef: " GT "}, snapshot())
	require.Nil(t, c)
	assert.Equal(t, "p-gt", res.(*action.ResolvedProductArchive).ProductID)
}

func TestExactNameWinsOverSubstring(t *testing.T) {
	res, c := Resolve(&action.ProductArchive{ProductRef: "green tea"}, snapshot())
	require.Nil(t, c)
	assert.Equal(t, "p-tea", res.(*action.ResolvedProductArchive).ProductID)
}

func TestAmbiguousSubstring(t *testing.T) {
	_, c := Resolve(&action.ProductArchive{ProductRef: "tea"}, snapshot())
	require.NotNil(t, c)
	assert.Equal(t, `Multiple products match "tea". Please be more specific.`, c.Message)
	require.Len(t, c.Options, 2)
	assert.Equal(t, "Green Tea (GT-001)", c.Options[0].Label)
	assert.Equal(t, `Use product "GT-001" in this request.`, c.Options[0].Value)
}

func TestAmbiguityOptionsCapped(t *testing.T) {
	for _, n := range []int{2, 8, 9, 15} {
		snap := &catalog.Snapshot{}
		for i := 0; i < n; i++ {
			snap.Products = append(snap.Products, model.Product{ID: fmt.Sprint(i), Name: "Widget", SKU: fmt.Sprintf("W-%d", i)})
		}
		_, c := Resolve(&action.ProductArchive{ProductRef: "widget"}, snap)
		require.NotNil(t, c)
		assert.Equal(t, `Multiple products match "widget".`, c.Message)
		assert.Len(t, c.Options, min(n, 8))
	}
}

func TestDuplicateSKUIsAmbiguous(t *testing.T) {
	snap := &catalog.Snapshot{Products: []model.Product{
		{ID: "a", Name: "A", SKU: "DUP"},
		{ID: "b", Name: "B", SKU: "dup"},
	}}
	_, c := Resolve(&action.ProductArchive{ProductRef: "dup"}, snap)
	require.NotNil(t, c)
	assert.Equal(t, `Multiple products match SKU "dup".`, c.Message)
}

func TestNotFoundAndMissing(t *testing.T) {
	_, c := Resolve(&action.ProductArchive{ProductRef: "coffee"}, snapshot())
	require.NotNil(t, c)
	assert.Equal(t, `No product matched "coffee".`, c.Message)
	assert.Empty(t, c.Options)

	_, c = Resolve(&action.ReadQuery{Intent: action.IntentStockByProduct}, snapshot())
	require.NotNil(t, c)
	assert.Equal(t, "Product reference is missing.", c.Message)

	_, c = Resolve(&action.ReadQuery{Intent: action.IntentLocationSnapshot}, snapshot())
	require.NotNil(t, c)
	assert.Equal(t, "Location reference is missing.", c.Message)
}

func TestLocationByCityIsAmbiguous(t *testing.T) {
	_, c := Resolve(&action.LocationDeactivate{LocationRef: "bandung"}, snapshot())
	require.NotNil(t, c)
	assert.Equal(t, `Multiple locations match "bandung". Please be more specific.`, c.Message)
	require.Len(t, c.Options, 2)
	assert.Equal(t, "North Store, Bandung", c.Options[0].Label)
	assert.Equal(t, `Use location "North Store" in this request.`, c.Options[0].Value)
}

func TestFirstFailingReferenceIsReported(t *testing.T) {
	_, c := Resolve(&action.OrderCreateTransfer{
		ProductRef: "mug", FromLocationRef: "nowhere", ToLocationRef: "store", Quantity: qty(1),
	}, snapshot())
	require.NotNil(t, c)
	assert.Equal(t, `No location matched "nowhere".`, c.Message)
}

func TestRestockDefaultsAndSummary(t *testing.T) {
	res, c := Resolve(&action.OrderCreateRestock{
		StockRef: action.StockRef{ProductRef: "MUG-1", LocationRef: "main warehouse", Quantity: qty(20.9)},
	}, snapshot())
	require.Nil(t, c)

	restock := res.(*action.ResolvedOrderRestock)
	assert.Equal(t, 20, restock.Quantity)
	assert.Equal(t, "l-main", restock.LocationID)
	assert.Equal(t, DefaultNote, restock.Note)
	assert.Equal(t, `Create restock order for 20 units of "Mug" at "Main Warehouse".`, restock.Info().Summary)
	assert.Empty(t, restock.Info().Warnings)
}

func TestHugeQuantityIsClamped(t *testing.T) {
	res, c := Resolve(&action.OrderCreateRestock{
		StockRef: action.StockRef{ProductRef: "MUG-1", LocationRef: "main warehouse", Quantity: qty(1e300)},
	}, snapshot())
	require.Nil(t, c)
	assert.Equal(t, model.MaxQuantity+1, res.(*action.ResolvedOrderRestock).Quantity)

	res, c = Resolve(&action.OrderCreateRestock{
		StockRef: action.StockRef{ProductRef: "MUG-1", LocationRef: "main warehouse", Quantity: qty(-1e300)},
	}, snapshot())
	require.Nil(t, c)
	assert.Equal(t, -(model.MaxQuantity + 1), res.(*action.ResolvedOrderRestock).Quantity)

	res, c = Resolve(&action.ProductCreate{Name: "Oolong", Category: "Tea", Threshold: qty(1e19)}, snapshot())
	require.Nil(t, c)
	assert.Equal(t, model.MaxQuantity+1, res.(*action.ResolvedProductCreate).Threshold)
}

func TestProductCreateDefaults(t *testing.T) {
	res, c := Resolve(&action.ProductCreate{Name: "Oolong", Category: "Tea"}, snapshot())
	require.Nil(t, c)

	create := res.(*action.ResolvedProductCreate)
	assert.Equal(t, model.DefaultThreshold, create.Threshold)
	assert.Equal(t, []string{"SKU missing: an SKU will be generated."}, create.Info().Warnings)
	assert.Equal(t, `Create product "Oolong" in "Tea" with threshold 20.`, create.Info().Summary)
}

func TestReadQueryWithoutReferences(t *testing.T) {
	res, c := Resolve(&action.ReadQuery{Intent: action.IntentLowStock}, snapshot())
	require.Nil(t, c)
	assert.Equal(t, "Show low-stock items.", res.Info().Summary)
}
