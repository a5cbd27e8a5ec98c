package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-assistant-service/internal/inventory"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/internal/order/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/order/repository"
	"github.com/fekuna/omnipos-assistant-service/internal/testutil"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	orders []*model.Order
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, o *model.Order) error {
	p.orders = append(p.orders, o)
	return nil
}

type fixture struct {
	pub      *recordingPublisher
	product  *model.Product
	main     *model.Location
	outlet   *model.Location
	useCase  *orderUseCase
	quantity func(locationID string) int
}

func newFixture(t *testing.T, mainQty int) *fixture {
	db := testutil.NewDB(t)
	pub := &recordingPublisher{}
	p := testutil.SeedProduct(t, db, "ws-1", "Mug", "MUG-1")
	main := testutil.SeedLocation(t, db, "ws-1", "Main", "Jakarta", model.LocationWarehouse)
	outlet := testutil.SeedLocation(t, db, "ws-1", "Outlet", "Bogor", model.LocationStore)
	testutil.SeedInventory(t, db, "ws-1", p.ID, main.ID, mainQty, 5)

	return &fixture{
		pub:     pub,
		product: p,
		main:    main,
		outlet:  outlet,
		useCase: NewOrderUseCase(repository.NewPGRepository(db), pub, logger.NewNop()).(*orderUseCase),
		quantity: func(locationID string) int {
			return testutil.Quantity(t, db, p.ID, locationID)
		},
	}
}

func TestSaleDecrementsStock(t *testing.T) {
	f := newFixture(t, 10)

	o, res, err := f.useCase.CreateOrder(context.Background(), &dto.CreateOrderInput{
		WorkspaceID: "ws-1", Type: model.OrderSale, ProductID: f.product.ID, LocationID: f.main.ID,
		Quantity: 4, Source: model.SourceAI,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Quantity)
	assert.Equal(t, 10, res.InventoryBefore)
	assert.Equal(t, 6, f.quantity(f.main.ID))
	require.Len(t, f.pub.orders, 1)
	assert.Equal(t, o.ID, f.pub.orders[0].ID)
}

func TestSaleGuardRejectsOversell(t *testing.T) {
	f := newFixture(t, 3)

	_, _, err := f.useCase.CreateOrder(context.Background(), &dto.CreateOrderInput{
		WorkspaceID: "ws-1", Type: model.OrderSale, ProductID: f.product.ID, LocationID: f.main.ID, Quantity: 4,
	})
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.Equal(t, 3, f.quantity(f.main.ID))
	assert.Empty(t, f.pub.orders)
}

func TestRestockCreatesMissingRow(t *testing.T) {
	f := newFixture(t, 0)

	_, res, err := f.useCase.CreateOrder(context.Background(), &dto.CreateOrderInput{
		WorkspaceID: "ws-1", Type: model.OrderRestock, ProductID: f.product.ID, LocationID: f.outlet.ID,
		Quantity: 20, Threshold: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, res.Quantity)
	assert.Equal(t, 0, res.InventoryBefore)
	assert.Equal(t, 20, f.quantity(f.outlet.ID))
}

func TestTransferMovesStock(t *testing.T) {
	f := newFixture(t, 10)

	_, res, err := f.useCase.CreateOrder(context.Background(), &dto.CreateOrderInput{
		WorkspaceID: "ws-1", Type: model.OrderTransfer, ProductID: f.product.ID,
		LocationID: f.main.ID, ToLocationID: f.outlet.ID, Quantity: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Quantity)
	assert.Equal(t, 7, res.ToQuantity)
	assert.Equal(t, 3, f.quantity(f.main.ID))
	assert.Equal(t, 7, f.quantity(f.outlet.ID))
}

func TestTransferShortfallLeavesBothSides(t *testing.T) {
	f := newFixture(t, 2)

	_, _, err := f.useCase.CreateOrder(context.Background(), &dto.CreateOrderInput{
		WorkspaceID: "ws-1", Type: model.OrderTransfer, ProductID: f.product.ID,
		LocationID: f.main.ID, ToLocationID: f.outlet.ID, Quantity: 5,
	})
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.Equal(t, 2, f.quantity(f.main.ID))
	assert.Equal(t, -1, f.quantity(f.outlet.ID))
}
