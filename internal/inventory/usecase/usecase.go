package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/inventory"
	"github.com/fekuna/omnipos-assistant-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *inventoryUseCase) GetItem(ctx context.Context, workspaceID, productID, locationID string) (*model.InventoryItem, error) {
	return uc.repo.GetItem(ctx, workspaceID, productID, locationID)
}

func (uc *inventoryUseCase) EnsureItem(ctx context.Context, input *dto.EntryInput) (*model.InventoryItem, error) {
	item := newItem(input, 0)
	if err := uc.repo.Insert(ctx, item); err != nil {
		return nil, err
	}
	uc.logger.Debug("inventory row provisioned",
		zap.String("product_id", input.ProductID),
		zap.String("location_id", input.LocationID),
	)
	return item, nil
}

func (uc *inventoryUseCase) CreateEntry(ctx context.Context, input *dto.EntryInput) (*model.InventoryItem, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be > 0")
	}
	item := newItem(input, input.Quantity)
	if err := uc.repo.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *inventoryUseCase) SetQuantity(ctx context.Context, input *dto.EntryInput) (*model.InventoryItem, error) {
	if input.Quantity < 0 {
		return nil, fmt.Errorf("quantity must be >= 0")
	}
	if err := uc.repo.Upsert(ctx, newItem(input, input.Quantity)); err != nil {
		return nil, err
	}

	item, err := uc.repo.GetItem(ctx, input.WorkspaceID, input.ProductID, input.LocationID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("inventory row missing after upsert")
	}
	return item, nil
}

func (uc *inventoryUseCase) ListInventory(ctx context.Context, workspaceID string) ([]model.InventoryRow, error) {
	return uc.repo.ListWithRelations(ctx, workspaceID)
}

func newItem(input *dto.EntryInput, quantity int) *model.InventoryItem {
	threshold := input.Threshold
	if threshold < 0 {
		threshold = model.DefaultThreshold
	}
	return &model.InventoryItem{
		ID:          uuid.New().String(),
		WorkspaceID: input.WorkspaceID,
		ProductID:   input.ProductID,
		LocationID:  input.LocationID,
		Quantity:    quantity,
		Threshold:   threshold,
		UpdatedAt:   time.Now().UTC(),
	}
}
