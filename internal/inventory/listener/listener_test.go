package listener

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/fekuna/omnipos-assistant-service/internal/order/dto"
	"github.com/fekuna/omnipos-assistant-service/internal/order/event"
	"github.com/fekuna/omnipos-assistant-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	inputs []*dto.CreateOrderInput
}

func (f *fakeOrders) CreateOrder(_ context.Context, in *dto.CreateOrderInput) (*model.Order, *model.OrderResult, error) {
	f.inputs = append(f.inputs, in)
	return &model.Order{}, &model.OrderResult{}, nil
}

type queueReader struct {
	msgs   [][]byte
	cancel context.CancelFunc
}

func (q *queueReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(q.msgs) == 0 {
		q.cancel()
		return kafka.Message{}, errors.New("closed")
	}
	m := q.msgs[0]
	q.msgs = q.msgs[1:]
	return kafka.Message{Value: m}, nil
}

func encode(t *testing.T, e *event.OrderCreatedEvent) []byte {
	data, err := json.Marshal(e)
	require.NoError(t, err)
	return data
}

func TestListenerRecordsPOSSales(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pos := &event.OrderCreatedEvent{
		EventType: event.TypeOrderCreated,
		Payload: event.OrderPayload{
			ID: "pos-1", WorkspaceID: "ws-1", LocationID: "loc-1",
			Items: []event.OrderItemPayload{{ProductID: "p-1", Quantity: 2}, {ProductID: "p-2", Quantity: 0}},
		},
		Timestamp: time.Now(),
	}
	own := &event.OrderCreatedEvent{
		EventType: event.TypeOrderCreated,
		Payload:   event.OrderPayload{ID: "ai-1", Source: "ai", Items: []event.OrderItemPayload{{ProductID: "p-1", Quantity: 1}}},
	}

	orders := &fakeOrders{}
	reader := &queueReader{
		msgs:   [][]byte{encode(t, pos), []byte("not json"), encode(t, own)},
		cancel: cancel,
	}
	NewInventoryListener(reader, orders, logger.NewNop()).Start(ctx)

	require.Len(t, orders.inputs, 1)
	in := orders.inputs[0]
	assert.Equal(t, model.OrderSale, in.Type)
	assert.Equal(t, model.SourceManual, in.Source)
	assert.Equal(t, "p-1", in.ProductID)
	assert.Equal(t, "loc-1", in.LocationID)
	assert.Equal(t, 2, in.Quantity)
}
