// Package event defines the order events exchanged over Kafka.
package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/pkg/broker"
	"github.com/google/uuid"
)

const TypeOrderCreated = "OrderCreated"

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID           string             `json:"id"`
	WorkspaceID  string             `json:"workspace_id"`
	LocationID   string             `json:"location_id"`
	ToLocationID string             `json:"to_location_id,omitempty"`
	Type         string             `json:"type,omitempty"`
	Source       string             `json:"source,omitempty"`
	Items        []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

func NewOrderCreated(o *model.Order) *OrderCreatedEvent {
	payload := OrderPayload{
		ID:          o.ID,
		WorkspaceID: o.WorkspaceID,
		LocationID:  o.LocationID,
		Type:        string(o.Type),
		Source:      string(o.Source),
		Items:       []OrderItemPayload{{ProductID: o.ProductID, Quantity: float64(o.Quantity)}},
	}
	if o.ToLocationID != nil {
		payload.ToLocationID = *o.ToLocationID
	}
	return &OrderCreatedEvent{
		EventID:   uuid.New().String(),
		EventType: TypeOrderCreated,
		Payload:   payload,
		Timestamp: o.CreatedAt,
	}
}

type KafkaPublisher struct {
	producer *broker.KafkaProducer
}

func NewKafkaPublisher(producer *broker.KafkaProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// PublishOrderCreated keys messages by workspace so a workspace's orders stay ordered.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, o *model.Order) error {
	data, err := json.Marshal(NewOrderCreated(o))
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, o.WorkspaceID, data)
}
