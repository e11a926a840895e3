package inventory

import (
	"context"
	"errors"
	"testing"

	"go-shop-api/src/infrastructure/log"
	"go-shop-api/src/services/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) AddProduct(ctx context.Context, product *Product) error {
	args := m.Called(ctx, product)
	if args.Error(0) == nil {
		product.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, productID string) (*Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockProductRepository) FindProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, productID string, update ProductUpdate) (*Product, error) {
	args := m.Called(ctx, productID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockProductRepository) SetProductQuantity(ctx context.Context, productID string, quantity int) (bool, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, productID string) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) SeedProduct(ctx context.Context, product Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func TestInventoryService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("stored product carries the input fields and an identity", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewInventoryService(log.NewNopLogger(), repo)
		repo.On("AddProduct", ctx, mock.AnythingOfType("*inventory.Product")).Return(nil)

		input := ProductInput{
			Name:        "Linen Shirt",
			Category:    "Tops",
			Price:       ptr(19.5),
			Quantity:    ptr(5),
			Description: "breathable",
			Image:       "https://cdn.example.com/shirt.png",
		}
		product, err := service.CreateProduct(ctx, input)

		require.NoError(t, err)
		assert.False(t, product.ID.IsZero())
		assert.Equal(t, "Linen Shirt", product.Name)
		assert.Equal(t, "Tops", product.Category)
		assert.Equal(t, 19.5, product.Price)
		assert.Equal(t, 5, product.Quantity)
		assert.Equal(t, "breathable", product.Description)
		assert.Equal(t, "https://cdn.example.com/shirt.png", product.Image)
		repo.AssertExpectations(t)
	})

	t.Run("missing required fields are all reported", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewInventoryService(log.NewNopLogger(), repo)

		_, err := service.CreateProduct(ctx, ProductInput{Name: "Only a name"})

		var validationErr *apperr.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Len(t, validationErr.Fields, 3)
		assert.Contains(t, err.Error(), "category is required")
		assert.Contains(t, err.Error(), "price is required")
		assert.Contains(t, err.Error(), "quantity is required")
		repo.AssertNotCalled(t, "AddProduct", mock.Anything, mock.Anything)
	})

	t.Run("zero price and quantity are present values", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewInventoryService(log.NewNopLogger(), repo)
		repo.On("AddProduct", ctx, mock.Anything).Return(nil)

		_, err := service.CreateProduct(ctx, ProductInput{Name: "Sample", Category: "Free", Price: ptr(0.0), Quantity: ptr(0)})
		require.NoError(t, err)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewInventoryService(log.NewNopLogger(), repo)
		repo.On("AddProduct", ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err := service.CreateProduct(ctx, ProductInput{Name: "A", Category: "B", Price: ptr(1.0), Quantity: ptr(1)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.False(t, apperr.IsInvalid(err))
	})
}

func TestInventoryService_GetProduct(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	service := NewInventoryService(log.NewNopLogger(), repo)

	existing := &Product{ID: primitive.NewObjectID(), Name: "Mug"}
	repo.On("GetProductByID", ctx, existing.ID.Hex()).Return(existing, nil)
	repo.On("GetProductByID", ctx, "missing").Return(nil, nil)
	repo.On("GetProductByID", ctx, "broken").Return(nil, errors.New("timeout"))

	product, err := service.GetProduct(ctx, existing.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, existing, product)

	_, err = service.GetProduct(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "Product not found", err.Error())

	_, err = service.GetProduct(ctx, "broken")
	require.Error(t, err)
	assert.False(t, apperr.IsNotFound(err))
}

func TestInventoryService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("passes only updatable fields", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewInventoryService(log.NewNopLogger(), repo)

		update := ProductUpdate{Name: ptr("Renamed"), Category: ptr("Home"), Price: ptr(12.0), Description: ptr("new")}
		updated := &Product{Name: "Renamed", Category: "Home", Price: 12, Description: "new", Quantity: 7, Image: "img.png"}
		repo.On("UpdateProduct", ctx, "p1", update).Return(updated, nil)

		product, err := service.UpdateProduct(ctx, "p1", update)
		require.NoError(t, err)
		assert.Equal(t, 7, product.Quantity)
		assert.Equal(t, "img.png", product.Image)
		repo.AssertExpectations(t)
	})

	rejected := []struct {
		name    string
		update  ProductUpdate
		message string
	}{
		{name: "empty name", update: ProductUpdate{Name: ptr("")}, message: "name must not be empty"},
		{name: "empty category", update: ProductUpdate{Category: ptr("")}, message: "category must not be empty"},
		{name: "negative price", update: ProductUpdate{Price: ptr(-5.0)}, message: "price must be at least 0"},
	}
	for _, tc := range rejected {
		t.Run(tc.name+" is rejected", func(t *testing.T) {
			repo := new(MockProductRepository)
			service := NewInventoryService(log.NewNopLogger(), repo)

			_, err := service.UpdateProduct(ctx, "p1", tc.update)
			var validationErr *apperr.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Contains(t, err.Error(), tc.message)
			repo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("zero price is allowed", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewInventoryService(log.NewNopLogger(), repo)
		update := ProductUpdate{Price: ptr(0.0)}
		repo.On("UpdateProduct", ctx, "p1", update).Return(&Product{Name: "Free"}, nil)

		_, err := service.UpdateProduct(ctx, "p1", update)
		require.NoError(t, err)
	})

	t.Run("unknown product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewInventoryService(log.NewNopLogger(), repo)
		repo.On("UpdateProduct", ctx, "nope", mock.Anything).Return(nil, nil)

		_, err := service.UpdateProduct(ctx, "nope", ProductUpdate{Price: ptr(1.0)})
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestInventoryService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	service := NewInventoryService(log.NewNopLogger(), repo)

	repo.On("DeleteProduct", ctx, "p1").Return(true, nil)
	repo.On("DeleteProduct", ctx, "p2").Return(false, nil)

	assert.NoError(t, service.DeleteProduct(ctx, "p1"))
	assert.True(t, apperr.IsNotFound(service.DeleteProduct(ctx, "p2")))
}

func TestInventoryService_ListByCategory(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	service := NewInventoryService(log.NewNopLogger(), repo)

	hats := []Product{{Name: "Cap", Category: "Hats"}}
	repo.On("FindProducts", ctx, ProductFilter{Categories: []string{"Hats"}}).Return(hats, nil)

	products, err := service.ListByCategory(ctx, "Hats")
	require.NoError(t, err)
	assert.Equal(t, hats, products)
}
