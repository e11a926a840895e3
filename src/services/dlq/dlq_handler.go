package dlq

import (
	"context"
	"encoding/json"

	"go-shop-api/src/infrastructure/log"
	"go-shop-api/src/services/events"
)

// DeadLetterStore persists payloads taken off a dead-letter queue.
type DeadLetterStore interface {
	StoreDeadLetter(ctx context.Context, topic, orderID string, eventData []byte) error
}

// OrderCreatedDLQHandler drains order.created.dlq into the dead-letter store.
type OrderCreatedDLQHandler struct {
	store  DeadLetterStore
	logger log.Logger
}

func NewOrderCreatedDLQHandler(store DeadLetterStore, logger log.Logger) *OrderCreatedDLQHandler {
	return &OrderCreatedDLQHandler{
		store:  store,
		logger: logger,
	}
}

func (h *OrderCreatedDLQHandler) Handle(ctx context.Context, msgBody []byte) {
	h.logger.Info(ctx, "Processing OrderCreated DLQ event")

	// best effort: payloads land here precisely because they may not decode
	var event events.OrderCreatedEvent
	orderID := "unknown"
	if err := json.Unmarshal(msgBody, &event); err == nil && event.OrderID != "" {
		orderID = event.OrderID
	}

	err := h.store.StoreDeadLetter(ctx, events.OrderCreated, orderID, msgBody)
	if err != nil {
		h.logger.Exception(ctx, "Failed to store OrderCreated DLQ event", err)
		return
	}
	h.logger.InfoWithExtra(ctx, "OrderCreated DLQ event stored", map[string]any{"OrderId": orderID})
}
