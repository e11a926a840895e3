package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DeadLetter is an event payload no consumer could process, kept for inspection.
type DeadLetter struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Topic     string             `bson:"topic" json:"topic"`
	OrderID   string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	EventData []byte             `bson:"eventData" json:"eventData"`
	Valid     bool               `bson:"validJson" json:"validJson"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type DeadLetterRepository struct {
	collection *mongo.Collection
}

func NewDeadLetterRepository(db *mongo.Database) *DeadLetterRepository {
	return &DeadLetterRepository{
		collection: db.Collection("failed_events"),
	}
}

// StoreDeadLetter keeps the raw bytes even when they are not JSON.
func (r *DeadLetterRepository) StoreDeadLetter(ctx context.Context, topic, orderID string, eventData []byte) error {
	if eventData == nil {
		return errors.New("event data cannot be nil")
	}

	doc := DeadLetter{
		Topic:     topic,
		OrderID:   orderID,
		EventData: eventData,
		Valid:     json.Valid(eventData),
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}
