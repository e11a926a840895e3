package notification

import (
	"context"
	"fmt"

	"go-shop-api/src/infrastructure/log"
)

type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

type NotificationRequest struct {
	OrderID     string              `json:"orderId"`
	Message     string              `json:"message"`
	Channel     NotificationChannel `json:"channel"`
	Recipient   string              `json:"recipient"`
	MessageType string              `json:"messageType"`
}

type NotificationService interface {
	SendNotification(ctx context.Context, request NotificationRequest) error
}

type NotificationServiceImpl struct {
	logger log.Logger
}

func NewNotificationService(logger log.Logger) NotificationService {
	return &NotificationServiceImpl{
		logger: logger,
	}
}

// SendNotification only records the outgoing message; no gateway is wired yet.
func (n *NotificationServiceImpl) SendNotification(ctx context.Context, request NotificationRequest) error {
	if request.Recipient == "" {
		return fmt.Errorf("notification for order %s has no recipient", request.OrderID)
	}

	switch request.Channel {
	case ChannelEmail, ChannelSMS:
		n.logger.InfoWithExtra(ctx, "Notification sent", map[string]any{
			"Channel":   string(request.Channel),
			"OrderId":   request.OrderID,
			"Recipient": request.Recipient,
			"Subject":   subject(request.MessageType),
			"Message":   request.Message,
		})
		return nil
	default:
		return fmt.Errorf("unknown notification channel: %s", request.Channel)
	}
}

func subject(messageType string) string {
	switch messageType {
	case "confirmation":
		return "Order Confirmation"
	default:
		return "Order Update"
	}
}
