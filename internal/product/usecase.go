package product

import (
	"context"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, workspaceID, id string) (*model.Product, error)
	ListProducts(ctx context.Context, workspaceID string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	ArchiveProduct(ctx context.Context, workspaceID, id string) (*model.Product, error)
}
