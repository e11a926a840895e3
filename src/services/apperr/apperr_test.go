package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleItem struct {
	SKU      string `json:"sku" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

type sampleRecord struct {
	Name  string       `json:"name" validate:"required"`
	Email string       `json:"email" validate:"required"`
	Price *float64     `json:"price" validate:"required"`
	Items []sampleItem `json:"items" validate:"dive"`
}

func TestValidate_ListsEveryViolatedField(t *testing.T) {
	err := Validate("Sample", sampleRecord{
		Items: []sampleItem{{SKU: "a", Quantity: 0}},
	})
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "Sample", validationErr.Record)

	fields := make([]string, 0, len(validationErr.Fields))
	for _, f := range validationErr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "price", "items[0].quantity"}, fields)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "items[0].quantity must be at least 1")
}

func TestValidate_ValidRecord(t *testing.T) {
	price := 0.0
	err := Validate("Sample", sampleRecord{Name: "n", Email: "e", Price: &price})
	assert.NoError(t, err)
}

type sampleUpdate struct {
	Name  *string  `json:"name" validate:"omitnil,nonempty"`
	Price *float64 `json:"price" validate:"omitnil,gte=0"`
}

func TestValidate_OptionalPointers(t *testing.T) {
	empty, name := "", "Mug"
	negative, zero := -1.0, 0.0

	assert.NoError(t, Validate("Sample", sampleUpdate{}))
	assert.NoError(t, Validate("Sample", sampleUpdate{Name: &name, Price: &zero}))

	err := Validate("Sample", sampleUpdate{Name: &empty, Price: &negative})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Fields, 2)
	assert.Equal(t, "nonempty", validationErr.Fields[0].Rule)
	assert.Contains(t, err.Error(), "name must not be empty")
	assert.Contains(t, err.Error(), "price must be at least 0")
}

func TestKinds(t *testing.T) {
	notFound := fmt.Errorf("lookup: %w", NotFound("Product with ID %s not found", "abc"))
	invalid := Invalid("Not enough quantity for product %s", "Shirt")

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsInvalid(notFound))
	assert.True(t, IsInvalid(invalid))
	assert.Equal(t, "Product with ID abc not found", errors.Unwrap(notFound).Error())
	assert.Equal(t, "Not enough quantity for product Shirt", invalid.Error())
	assert.False(t, IsNotFound(errors.New("plain")))
}
