package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-shop-api/src/infrastructure/log"
	"go-shop-api/src/services/apperr"
	"go-shop-api/src/services/events"
	"go-shop-api/src/services/inventory"
)

// OrderRepository returns (nil, nil) from GetOrderByID when the order does not exist.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrders(ctx context.Context) ([]Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
}

// StockStore is the slice of the product store the order workflow touches.
type StockStore interface {
	GetProductByID(ctx context.Context, productID string) (*inventory.Product, error)
	SetProductQuantity(ctx context.Context, productID string, quantity int) (bool, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, request OrderRequest) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
}

type orderService struct {
	logger          log.Logger
	publisher       events.Publisher
	orderRepository OrderRepository
	stock           StockStore
	publishRetries  int
	retryDelay      time.Duration
}

func NewOrderService(
	logger log.Logger,
	publisher events.Publisher,
	orderRepository OrderRepository,
	stock StockStore,
) OrderService {
	return &orderService{
		logger:          logger,
		publisher:       publisher,
		orderRepository: orderRepository,
		stock:           stock,
		publishRetries:  2,
		retryDelay:      time.Second,
	}
}

// CreateOrder checks and decrements stock item by item, then stores the order.
// Decrements are written immediately and are not undone when a later item fails.
// The read-compare-write on each product is not atomic, so concurrent orders can oversell.
// Field validation runs first: a request with a missing field (including a line item without
// productId) fails with a ValidationError before any stock is decremented.
func (s *orderService) CreateOrder(ctx context.Context, request OrderRequest) (*Order, error) {
	if len(request.Products) == 0 {
		return nil, apperr.Invalid("Products are required in the order")
	}
	if err := apperr.Validate("Order", request); err != nil {
		s.logger.WarnWithExtra(ctx, "Order validation failed", map[string]any{"Error": err.Error()})
		return nil, err
	}

	for _, item := range request.Products {
		if err := s.takeStock(ctx, item); err != nil {
			return nil, err
		}
	}

	order := request.toOrder(time.Now().UTC())
	if err := s.orderRepository.CreateOrder(ctx, &order); err != nil {
		s.logger.Exception(ctx, "Failed to insert order after stock was decremented", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.InfoWithExtra(ctx, "Order created", map[string]any{
		"OrderId":   order.ID.Hex(),
		"LineItems": len(order.Products),
		"Total":     order.Total,
	})
	s.publishOrderCreated(ctx, order)
	return &order, nil
}

func (s *orderService) takeStock(ctx context.Context, item LineItemRequest) error {
	product, err := s.stock.GetProductByID(ctx, item.ProductID)
	if err != nil {
		s.logger.Exception(ctx, "Failed to load product "+item.ProductID, err)
		return fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
	}
	if product == nil {
		return apperr.NotFound("Product with ID %s not found", item.ProductID)
	}

	requested := item.quantity()
	if requested > product.Quantity {
		return apperr.Invalid("Not enough quantity for product %s", product.Name)
	}

	found, err := s.stock.SetProductQuantity(ctx, item.ProductID, product.Quantity-requested)
	if err != nil {
		s.logger.Exception(ctx, "Failed to decrement stock for product "+item.ProductID, err)
		return fmt.Errorf("failed to update stock for product %s: %w", item.ProductID, err)
	}
	if !found {
		// deleted between the read and the write
		return apperr.NotFound("Product with ID %s not found", item.ProductID)
	}

	s.logger.InfoWithExtra(ctx, "Stock decremented", map[string]any{
		"ProductId": item.ProductID,
		"Requested": requested,
		"Remaining": product.Quantity - requested,
	})
	return nil
}

// publishOrderCreated never fails the request: the order is already stored.
func (s *orderService) publishOrderCreated(ctx context.Context, order Order) {
	event := events.OrderCreatedEvent{
		OrderID:   order.ID.Hex(),
		Name:      order.Name,
		Email:     order.Email,
		Items:     make([]events.OrderItem, 0, len(order.Products)),
		Total:     order.Total,
		Version:   1,
		TimeStamp: order.CreatedAt,
	}
	for _, item := range order.Products {
		event.Items = append(event.Items, events.OrderItem{
			ProductID: item.ProductID.Hex(),
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		s.logger.Exception(ctx, "Failed to marshal order created event", err)
		return
	}

	for attempt := 1; attempt <= s.publishRetries; attempt++ {
		err = s.publisher.Publish(events.OrderCreated, eventJSON)
		if err == nil {
			s.logger.Info(ctx, "OrderCreated event published for order: "+event.OrderID)
			return
		}
		s.logger.Warn(ctx, fmt.Sprintf("Publish OrderCreated failed for order %s, attempt %d/%d: %v",
			event.OrderID, attempt, s.publishRetries, err))

		if attempt < s.publishRetries {
			time.Sleep(time.Duration(attempt) * s.retryDelay)
		}
	}
	s.logger.Exception(ctx, "Giving up on OrderCreated event for order "+event.OrderID, err)
}

func (s *orderService) ListOrders(ctx context.Context) ([]Order, error) {
	orders, err := s.orderRepository.GetOrders(ctx)
	if err != nil {
		s.logger.Exception(ctx, "Failed to list orders", err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	order, err := s.orderRepository.GetOrderByID(ctx, orderID)
	if err != nil {
		s.logger.Exception(ctx, "Failed to get order "+orderID, err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, apperr.NotFound("Order not found")
	}
	return order, nil
}
