package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/internal/order"
	"github.com/fekuna/omnipos-assistant-service/internal/order/dto"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type orderUseCase struct {
	repo      order.Repository
	publisher order.EventPublisher
	logger    logger.ZapLogger
}

// NewOrderUseCase builds the order usecase. publisher may be nil.
func NewOrderUseCase(repo order.Repository, publisher order.EventPublisher, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, *model.OrderResult, error) {
	if input.Quantity <= 0 {
		return nil, nil, fmt.Errorf("quantity must be > 0")
	}

	source := input.Source
	if source == "" {
		source = model.SourceManual
	}
	threshold := input.Threshold
	if threshold < 0 {
		threshold = model.DefaultThreshold
	}

	o := &model.Order{
		ID:          uuid.New().String(),
		WorkspaceID: input.WorkspaceID,
		ProductID:   input.ProductID,
		LocationID:  input.LocationID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Source:      source,
		Note:        strings.TrimSpace(input.Note),
		CreatedAt:   time.Now().UTC(),
	}
	if input.Type == model.OrderTransfer {
		to := input.ToLocationID
		o.ToLocationID = &to
	}

	result, err := uc.repo.CreateWithEffects(ctx, o, threshold)
	if err != nil {
		return nil, nil, err
	}

	uc.logger.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("type", string(o.Type)),
		zap.String("source", string(o.Source)),
		zap.Int("quantity", o.Quantity),
	)

	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderCreated(ctx, o); err != nil {
			uc.logger.Error("failed to publish order event", zap.String("order_id", o.ID), zap.Error(err))
		}
	}
	return o, result, nil
}
