package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"go-shop-api/src/infrastructure/log"
	"go-shop-api/src/services/events"
	"go-shop-api/src/services/notification"
)

type OrderCreatedEventHandler struct {
	publisher           events.Publisher
	notificationService notification.NotificationService
	logger              log.Logger
}

func NewOrderCreatedEventHandler(
	publisher events.Publisher,
	notificationService notification.NotificationService,
	logger log.Logger,
) *OrderCreatedEventHandler {
	return &OrderCreatedEventHandler{
		publisher:           publisher,
		notificationService: notificationService,
		logger:              logger,
	}
}

// Handle sends the customer an order confirmation. Payloads that cannot be decoded or
// fail validation go to the dead-letter queue untouched.
func (h *OrderCreatedEventHandler) Handle(ctx context.Context, msgBody []byte) {
	var event events.OrderCreatedEvent
	if err := json.Unmarshal(msgBody, &event); err != nil {
		h.logger.Exception(ctx, "Failed to unmarshal OrderCreatedEvent", err)
		h.sendToDLQ(ctx, msgBody)
		return
	}
	if err := event.Validate(); err != nil {
		h.logger.Exception(ctx, "Invalid OrderCreatedEvent", err)
		h.sendToDLQ(ctx, msgBody)
		return
	}

	request := notification.NotificationRequest{
		OrderID:     event.OrderID,
		Message:     confirmationMessage(event),
		Channel:     notification.ChannelEmail,
		Recipient:   event.Email,
		MessageType: "confirmation",
	}
	if err := h.notificationService.SendNotification(ctx, request); err != nil {
		h.logger.Exception(ctx, "Failed to send confirmation for order "+event.OrderID, err)
		return
	}

	h.logger.Info(ctx, "Order confirmation sent for order: "+event.OrderID)
}

func confirmationMessage(event events.OrderCreatedEvent) string {
	units := 0
	for _, item := range event.Items {
		units += item.Quantity
	}
	return fmt.Sprintf("Hi %s, your order %s for %d item(s) totalling %.2f has been placed.",
		event.Name, event.OrderID, units, event.Total)
}

func (h *OrderCreatedEventHandler) sendToDLQ(ctx context.Context, body []byte) {
	if err := h.publisher.Publish(events.OrderCreatedDLQ, body); err != nil {
		h.logger.Exception(ctx, "Failed to send event to DLQ", err)
	}
}
