package cart

import (
	"testing"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	c, err := NewCart(uuid.New())
	require.NoError(t, err)
	return c
}

func TestNewCart(t *testing.T) {
	c := newTestCart(t)
	assert.True(t, c.IsEmpty())
	assert.NotEqual(t, uuid.Nil, c.ID)

	_, err := NewCart(uuid.Nil)
	assert.Error(t, err)
}

func TestCart_AddItem(t *testing.T) {
	t.Run("new product creates a line", func(t *testing.T) {
		c := newTestCart(t)
		productID := uuid.New()

		item, err := c.AddItem(productID, 2)
		require.NoError(t, err)
		assert.Equal(t, c.ID, item.CartID)
		assert.Equal(t, 2, item.Quantity)
		assert.Len(t, c.Items, 1)
	})

	t.Run("same product increments quantity", func(t *testing.T) {
		c := newTestCart(t)
		productID := uuid.New()

		first, err := c.AddItem(productID, 1)
		require.NoError(t, err)
		firstID := first.ID

		second, err := c.AddItem(productID, 3)
		require.NoError(t, err)
		assert.Equal(t, firstID, second.ID)
		assert.Equal(t, 4, second.Quantity)
		assert.Len(t, c.Items, 1)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		c := newTestCart(t)
		_, err := c.AddItem(uuid.New(), 0)
		assert.ErrorContains(t, err, "at least 1")
	})
}

func TestCart_SetItemQuantity(t *testing.T) {
	c := newTestCart(t)
	item, err := c.AddItem(uuid.New(), 1)
	require.NoError(t, err)

	require.NoError(t, c.SetItemQuantity(item.ID, 7))
	assert.Equal(t, 7, c.Items[0].Quantity)

	assert.Error(t, c.SetItemQuantity(item.ID, 0))

	err = c.SetItemQuantity(uuid.New(), 2)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := newTestCart(t)
	a, _ := c.AddItem(uuid.New(), 1)
	aID := a.ID
	_, _ = c.AddItem(uuid.New(), 1)

	require.NoError(t, c.RemoveItem(aID))
	assert.Len(t, c.Items, 1)
	assert.Nil(t, c.GetItem(aID))
	assert.ErrorIs(t, c.RemoveItem(aID), shared.ErrNotFound)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 5, c.GetVersion())
	assert.Zero(t, c.LoadedVersion())
}

func TestCart_Subtotal(t *testing.T) {
	c := newTestCart(t)
	lamp, chair := uuid.New(), uuid.New()
	_, _ = c.AddItem(lamp, 2)
	_, _ = c.AddItem(chair, 1)

	prices := map[uuid.UUID]decimal.Decimal{
		lamp:  decimal.RequireFromString("10.25"),
		chair: decimal.RequireFromString("99.99"),
	}
	assert.Equal(t, "120.49", c.Subtotal(prices).StringFixed(2))
	assert.ElementsMatch(t, []uuid.UUID{lamp, chair}, c.ProductIDs())
}
