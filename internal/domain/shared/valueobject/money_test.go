package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.RequireFromString("100.50"), "usd")
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.RequireFromString("100.50")))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", USD)
		require.NoError(t, err)
		assert.Equal(t, "123.45 USD", m.String())
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", USD)
		assert.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	a := NewMoneyUSD(decimal.RequireFromString("10.10"))
	b := NewMoneyUSD(decimal.RequireFromString("0.90"))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(11)))

	_, err = a.Add(Zero(EUR))
	assert.Error(t, err)
}

func TestMoney_MultiplyByInt(t *testing.T) {
	m := NewMoneyUSD(decimal.RequireFromString("19.99")).MultiplyByInt(3)
	assert.Equal(t, "59.97 USD", m.String())
}

func TestMoney_MinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"0", 0},
		{"1", 100},
		{"19.99", 1999},
		{"10.005", 1001},
		{"1234.5", 123450},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			m := NewMoneyUSD(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, m.MinorUnits())
		})
	}
}

func TestMoney_Equals(t *testing.T) {
	a := NewMoneyUSD(decimal.RequireFromString("5.00"))
	b := NewMoneyUSD(decimal.NewFromInt(5))
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(Zero(USD)))
	assert.True(t, Zero(USD).IsZero())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(-1)).IsNegative())
}
