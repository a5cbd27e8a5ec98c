package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/internal/product"
	"github.com/fekuna/omnipos-assistant-service/internal/product/dto"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"github.com/fekuna/omnipos-assistant-service/pkg/search"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const indexName = "products"

const indexMapping = `{
	"mappings": {
		"properties": {
			"workspace_id": { "type": "keyword" },
			"name": { "type": "text" },
			"sku": { "type": "keyword" },
			"category": { "type": "keyword" },
			"threshold": { "type": "integer" },
			"is_active": { "type": "boolean" },
			"updated_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	es     *search.Client
	logger logger.ZapLogger

	indexOnce sync.Once
}

// NewProductUseCase builds the product usecase. es may be nil, in which case
// search sync is skipped.
func NewProductUseCase(repo product.Repository, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		es:     es,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	sku := strings.TrimSpace(input.SKU)
	if name == "" || category == "" || sku == "" {
		return nil, fmt.Errorf("name, sku and category are required")
	}
	if input.Threshold < 0 {
		return nil, fmt.Errorf("threshold must be >= 0")
	}

	now := time.Now().UTC()
	p := &model.Product{
		ID:          uuid.New().String(),
		WorkspaceID: input.WorkspaceID,
		Name:        name,
		SKU:         sku,
		Category:    category,
		Threshold:   input.Threshold,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.syncToElastic(ctx, p)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, workspaceID, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, workspaceID string) ([]model.Product, error) {
	return uc.repo.FindAll(ctx, workspaceID)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, input.WorkspaceID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if !strings.EqualFold(sku, p.SKU) {
			unique, err := uc.repo.IsSKUUnique(ctx, p.WorkspaceID, sku, p.ID)
			if err != nil {
				return nil, err
			}
			if !unique {
				return nil, product.ErrSKUExists
			}
		}
		p.SKU = sku
	}
	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		p.Category = strings.TrimSpace(*input.Category)
	}
	if input.Threshold != nil {
		if *input.Threshold < 0 {
			return nil, fmt.Errorf("threshold must be >= 0")
		}
		p.Threshold = *input.Threshold
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}

	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.syncToElastic(ctx, p)
	return p, nil
}

func (uc *productUseCase) ArchiveProduct(ctx context.Context, workspaceID, id string) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Archive(ctx, workspaceID, id); err != nil {
		return nil, err
	}
	p.IsActive = false
	p.UpdatedAt = time.Now().UTC()

	uc.syncToElastic(ctx, p)
	return p, nil
}

// syncToElastic keeps the search index in step with the database. Failures are
// logged; the database stays the source of truth.
func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	uc.indexOnce.Do(func() {
		if err := uc.es.CreateIndex(ctx, indexName, indexMapping); err != nil {
			uc.logger.Warn("failed to ensure product index", zap.Error(err))
		}
	})

	if err := uc.es.Index(ctx, indexName, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}
