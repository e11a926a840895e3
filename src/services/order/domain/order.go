package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is immutable once stored. Line item prices are captured at purchase time.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Address        string             `bson:"address" json:"address"`
	PhoneNumber    string             `bson:"phoneNumber" json:"phoneNumber"`
	Products       []LineItem         `bson:"products" json:"products"`
	Total          float64            `bson:"total" json:"total"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	CashOnDelivery bool               `bson:"cashOnDelivery,omitempty" json:"cashOnDelivery,omitempty"`
	CardPayment    bool               `bson:"cardPayment,omitempty" json:"cardPayment,omitempty"`
}

type LineItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// OrderRequest is the create payload.
type OrderRequest struct {
	Name           string            `json:"name" validate:"required"`
	Email          string            `json:"email" validate:"required"`
	Address        string            `json:"address" validate:"required"`
	PhoneNumber    string            `json:"phoneNumber" validate:"required"`
	Products       []LineItemRequest `json:"products" validate:"dive"`
	Total          *float64          `json:"total" validate:"required"`
	CashOnDelivery bool              `json:"cashOnDelivery"`
	CardPayment    bool              `json:"cardPayment"`
}

type LineItemRequest struct {
	ProductID string   `json:"productId" validate:"required"`
	Quantity  *int     `json:"quantity" validate:"omitnil,min=1"`
	Price     *float64 `json:"price" validate:"required"`
}

const defaultLineItemQuantity = 1

func (item LineItemRequest) quantity() int {
	if item.Quantity == nil {
		return defaultLineItemQuantity
	}
	return *item.Quantity
}

// toOrder assumes every product id already resolved to a stored product.
func (r OrderRequest) toOrder(createdAt time.Time) Order {
	order := Order{
		Name:           r.Name,
		Email:          r.Email,
		Address:        r.Address,
		PhoneNumber:    r.PhoneNumber,
		Products:       make([]LineItem, 0, len(r.Products)),
		CreatedAt:      createdAt,
		CashOnDelivery: r.CashOnDelivery,
		CardPayment:    r.CardPayment,
	}
	if r.Total != nil {
		order.Total = *r.Total
	}
	for _, item := range r.Products {
		id, _ := primitive.ObjectIDFromHex(item.ProductID)
		line := LineItem{ProductID: id, Quantity: item.quantity()}
		if item.Price != nil {
			line.Price = *item.Price
		}
		order.Products = append(order.Products, line)
	}
	return order
}
