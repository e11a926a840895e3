package events

import (
	"errors"
	"time"
)

const (
	// Event types, also used as routing keys and queue names
	OrderCreated    = "order.created"
	OrderCreatedDLQ = "order.created.dlq"
)

// Topics lists every queue the broker declares on startup.
var Topics = []string{OrderCreated}

type OrderCreatedEvent struct {
	OrderID   string      `json:"orderId"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Version   int         `json:"version"`
	TimeStamp time.Time   `json:"timestamp"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

func (e *OrderCreatedEvent) Validate() error {
	if e.OrderID == "" || e.Email == "" || len(e.Items) == 0 {
		return errors.New("missing required fields in OrderCreatedEvent")
	}
	for _, item := range e.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return errors.New("invalid item in OrderCreatedEvent")
		}
	}
	return nil
}
