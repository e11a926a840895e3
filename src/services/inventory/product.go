package inventory

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the stored catalogue entry. Quantity is the stock available for ordering.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
}

// ProductInput is the create payload. Pointers distinguish "absent" from zero.
type ProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Quantity    *int     `json:"quantity" validate:"required"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

func (in ProductInput) toProduct() Product {
	p := Product{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Image:       in.Image,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	return p
}

// ProductUpdate carries the only fields the update route may change. Quantity and image are
// deliberately absent: stock moves through orders, images only on create.
type ProductUpdate struct {
	Name        *string  `json:"name" validate:"omitnil,nonempty"`
	Category    *string  `json:"category" validate:"omitnil,nonempty"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
	Description *string  `json:"description"`
}

func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Category == nil && u.Price == nil && u.Description == nil
}
