package inventory

import (
	"context"
	"errors"

	mongoinfra "go-shop-api/src/infrastructure/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository returns (nil, nil) from lookups when the product does not exist.
type ProductRepository interface {
	AddProduct(ctx context.Context, product *Product) error
	GetProductByID(ctx context.Context, productID string) (*Product, error)
	FindProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	UpdateProduct(ctx context.Context, productID string, update ProductUpdate) (*Product, error)
	SetProductQuantity(ctx context.Context, productID string, quantity int) (bool, error)
	DeleteProduct(ctx context.Context, productID string) (bool, error)
	SeedProduct(ctx context.Context, product Product) error
}

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{
		collection: db.Collection(mongoinfra.ProductsCollection),
	}
}

// AddProduct inserts the product and writes the assigned identity back into it.
func (r *productRepository) AddProduct(ctx context.Context, product *Product) error {
	product.ID = primitive.NilObjectID
	res, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, productID string) (*Product, error) {
	id, ok := objectID(productID)
	if !ok {
		return nil, nil
	}

	var product Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	cursor, err := r.collection.Find(ctx, filter.Query(), filter.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]Product, 0)
	for cursor.Next(ctx) {
		var product Product
		if err := cursor.Decode(&product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, productID string, update ProductUpdate) (*Product, error) {
	id, ok := objectID(productID)
	if !ok {
		return nil, nil
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if len(set) == 0 {
		return r.GetProductByID(ctx, productID)
	}

	var product Product
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// SetProductQuantity overwrites the stored stock. It is not a compare-and-set: callers that read,
// compute and write race with each other.
func (r *productRepository) SetProductQuantity(ctx context.Context, productID string, quantity int) (bool, error) {
	id, ok := objectID(productID)
	if !ok {
		return false, nil
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"quantity": quantity}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, productID string) (bool, error) {
	id, ok := objectID(productID)
	if !ok {
		return false, nil
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// SeedProduct inserts the product unless one with the same name already exists.
func (r *productRepository) SeedProduct(ctx context.Context, product Product) error {
	product.ID = primitive.NilObjectID
	filter := bson.M{"name": product.Name}
	update := bson.M{"$setOnInsert": product}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// objectID reports false for ids that cannot name a stored document.
func objectID(raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
