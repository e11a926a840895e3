package persistence

import (
	"context"
	"errors"

	mongoinfra "go-shop-api/src/infrastructure/mongo"
	"go-shop-api/src/services/order/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection(mongoinfra.OrdersCollection),
	}
}

// CreateOrder inserts the order and writes the assigned identity back into it.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	order.ID = primitive.NilObjectID
	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

// GetOrders returns every order in natural storage order.
func (r *OrderRepository) GetOrders(ctx context.Context) ([]domain.Order, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]domain.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, nil
	}

	var order domain.Order
	err = r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}
