package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/internal/product"
	"github.com/fekuna/omnipos-assistant-service/internal/product/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/product/repository"
	"github.com/fekuna/omnipos-assistant-service/internal/testutil"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ws = "ws-1"

func newUseCase(t *testing.T) product.UseCase {
	db := testutil.NewDB(t)
	return NewProductUseCase(repository.NewPGRepository(db), nil, logger.NewNop())
}

func TestCreateProduct(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		WorkspaceID: ws, Name: " Green Tea ", SKU: "GT-001", Category: "Drinks", Threshold: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Green Tea", p.Name)
	assert.True(t, p.IsActive)

	got, err := uc.GetProduct(ctx, ws, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "GT-001", got.SKU)
	assert.Equal(t, 5, got.Threshold)
}

func TestCreateProductDuplicateSKUIsCaseInsensitive(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, &dto.CreateProductInput{WorkspaceID: ws, Name: "A", SKU: "ABC-1", Category: "X"})
	require.NoError(t, err)

	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{WorkspaceID: ws, Name: "B", SKU: "abc-1", Category: "X"})
	assert.ErrorIs(t, err, product.ErrSKUExists)

	// other workspaces are independent
	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{WorkspaceID: "ws-2", Name: "B", SKU: "abc-1", Category: "X"})
	assert.NoError(t, err)
}

func TestUpdateProductRejectsTakenSKU(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	a, err := uc.CreateProduct(ctx, &dto.CreateProductInput{WorkspaceID: ws, Name: "A", SKU: "A-1", Category: "X"})
	require.NoError(t, err)
	_, err = uc.CreateProduct(ctx, &dto.CreateProductInput{WorkspaceID: ws, Name: "B", SKU: "B-1", Category: "X"})
	require.NoError(t, err)

	taken := "b-1"
	_, err = uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: a.ID, WorkspaceID: ws, SKU: &taken})
	assert.ErrorIs(t, err, product.ErrSKUExists)

	// changing only the case of its own SKU is allowed
	own := "a-1"
	threshold := 3
	p, err := uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: a.ID, WorkspaceID: ws, SKU: &own, Threshold: &threshold})
	require.NoError(t, err)
	assert.Equal(t, "a-1", p.SKU)
	assert.Equal(t, 3, p.Threshold)
}

func TestUpdateProductNotFound(t *testing.T) {
	uc := newUseCase(t)
	name := "x"
	_, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{ID: "missing", WorkspaceID: ws, Name: &name})
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestArchiveProductRemovesInventory(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewProductUseCase(repository.NewPGRepository(db), nil, logger.NewNop())
	ctx := context.Background()

	p := testutil.SeedProduct(t, db, ws, "Mug", "MUG-1")
	l := testutil.SeedLocation(t, db, ws, "Main", "Jakarta", model.LocationWarehouse)
	testutil.SeedInventory(t, db, ws, p.ID, l.ID, 12, 5)

	archived, err := uc.ArchiveProduct(ctx, ws, p.ID)
	require.NoError(t, err)
	assert.False(t, archived.IsActive)

	got, err := uc.GetProduct(ctx, ws, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, -1, testutil.Quantity(t, db, p.ID, l.ID))
}
