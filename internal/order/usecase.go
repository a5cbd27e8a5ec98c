package order

import (
	"context"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/internal/order/dto"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, *model.OrderResult, error)
}

// EventPublisher announces committed orders to other services.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *model.Order) error
}
