package listener

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/internal/order"
	"github.com/fekuna/omnipos-assistant-service/internal/order/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/order/event"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the consumer side of pkg/broker.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// InventoryListener applies point-of-sale orders to stock by recording them as
// manual sale orders.
type InventoryListener struct {
	consumer MessageReader
	uc       order.UseCase
	logger   logger.ZapLogger
}

func NewInventoryListener(consumer MessageReader, uc order.UseCase, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("Starting Inventory Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Inventory Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var e event.OrderCreatedEvent
	if err := json.Unmarshal(value, &e); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	// Orders created here are already applied.
	if e.EventType != event.TypeOrderCreated || e.Payload.Source == string(model.SourceAI) {
		return
	}

	log := l.logger.With(zap.String("order_id", e.Payload.ID), zap.String("workspace_id", e.Payload.WorkspaceID))
	log.Info("Processing OrderCreated event")

	for _, item := range e.Payload.Items {
		qty := int(math.Round(item.Quantity))
		if qty <= 0 {
			log.Warn("Skipping order item with non-positive quantity", zap.String("product_id", item.ProductID))
			continue
		}

		_, _, err := l.uc.CreateOrder(ctx, &dto.CreateOrderInput{
			WorkspaceID: e.Payload.WorkspaceID,
			Type:        model.OrderSale,
			ProductID:   item.ProductID,
			LocationID:  e.Payload.LocationID,
			Quantity:    qty,
			Source:      model.SourceManual,
			Note:        "POS order " + e.Payload.ID,
			Threshold:   -1,
		})
		if err != nil {
			log.Error("Failed to record sale for order item",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
}
