package catalog

import (
	"strings"
	"testing"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() ProductFields {
	return ProductFields{
		Name:        "Desk Lamp",
		Description: "Warm white LED lamp",
		Price:       decimal.RequireFromString("24.99"),
		Stock:       10,
		CategoryID:  uuid.New(),
		BrandID:     uuid.New(),
	}
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		fields := validFields()
		product, err := NewProduct(fields)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.Equal(t, "Desk Lamp", product.Name)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("24.99")))
		assert.Equal(t, 10, product.Stock)
		assert.Equal(t, fields.CategoryID, product.CategoryID)
		assert.Equal(t, fields.BrandID, product.BrandID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct(validFields())
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, AggregateTypeProduct, event.AggregateType())
	})

	tests := []struct {
		name    string
		mutate  func(f *ProductFields)
		code    string
		message string
	}{
		{"empty name", func(f *ProductFields) { f.Name = "  " }, "INVALID_NAME", "cannot be empty"},
		{"name too long", func(f *ProductFields) { f.Name = strings.Repeat("x", 16) }, "INVALID_NAME", "15 characters"},
		{"description too long", func(f *ProductFields) { f.Description = strings.Repeat("x", 1001) }, "INVALID_DESCRIPTION", "too long"},
		{"negative price", func(f *ProductFields) { f.Price = decimal.NewFromInt(-1) }, "INVALID_PRICE", "negative"},
		{"price over column precision", func(f *ProductFields) { f.Price = decimal.NewFromInt(10000) }, "INVALID_PRICE", "9999.99"},
		{"negative stock", func(f *ProductFields) { f.Stock = -1 }, "INVALID_STOCK", "negative"},
		{"missing category", func(f *ProductFields) { f.CategoryID = uuid.Nil }, "INVALID_CATEGORY", "required"},
		{"missing brand", func(f *ProductFields) { f.BrandID = uuid.Nil }, "INVALID_BRAND", "required"},
	}
	for _, tt := range tests {
		t.Run("fails with "+tt.name, func(t *testing.T) {
			fields := validFields()
			tt.mutate(&fields)
			_, err := NewProduct(fields)
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
			assert.Contains(t, domainErr.Message, tt.message)
		})
	}

	t.Run("accepts fifteen character name", func(t *testing.T) {
		fields := validFields()
		fields.Name = strings.Repeat("a", 15)
		_, err := NewProduct(fields)
		assert.NoError(t, err)
	})
}

func TestProduct_Update(t *testing.T) {
	product, err := NewProduct(validFields())
	require.NoError(t, err)
	product.ClearDomainEvents()

	fields := product.Fields()
	fields.Price = decimal.RequireFromString("19.5")
	require.NoError(t, product.Update(fields))

	assert.Equal(t, "19.50", product.Price.StringFixed(2))
	assert.Equal(t, 2, product.GetVersion())
	require.Len(t, product.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeProductUpdated, product.GetDomainEvents()[0].EventType())

	fields.Stock = -5
	assert.Error(t, product.Update(fields))
	assert.Equal(t, 10, product.Stock)
}

func TestProduct_Stock(t *testing.T) {
	t.Run("decrease within stock", func(t *testing.T) {
		product, _ := NewProduct(validFields())
		require.NoError(t, product.DecreaseStock(4))
		assert.Equal(t, 6, product.Stock)
	})

	t.Run("decrease to zero", func(t *testing.T) {
		product, _ := NewProduct(validFields())
		require.NoError(t, product.DecreaseStock(10))
		assert.Equal(t, 0, product.Stock)
		assert.False(t, product.IsInStock(1))
	})

	t.Run("decrease beyond stock", func(t *testing.T) {
		product, _ := NewProduct(validFields())
		err := product.DecreaseStock(11)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Contains(t, err.Error(), "available 10")
		assert.Equal(t, 10, product.Stock)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		product, _ := NewProduct(validFields())
		assert.Error(t, product.DecreaseStock(0))
		assert.Error(t, product.IncreaseStock(-1))
	})

	t.Run("increase records stock change", func(t *testing.T) {
		product, _ := NewProduct(validFields())
		product.ClearDomainEvents()
		require.NoError(t, product.IncreaseStock(5))
		assert.Equal(t, 15, product.Stock)

		event, ok := product.GetDomainEvents()[0].(*ProductStockChangedEvent)
		require.True(t, ok)
		assert.Equal(t, 10, event.OldStock)
		assert.Equal(t, 15, event.NewStock)
	})
}
