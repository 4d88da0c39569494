package payment

import (
	"testing"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod(" Stripe ")
	require.NoError(t, err)
	assert.Equal(t, MethodStripe, m)

	_, err = ParseMethod("")
	assert.ErrorIs(t, err, ErrMethodRequired)
	assert.Equal(t, "Payment method is required.", err.Error())

	_, err = ParseMethod("paypal")
	assert.ErrorIs(t, err, ErrInvalidMethod)
	assert.Equal(t, "Invalid payment method.", err.Error())
}

func TestNewPayment(t *testing.T) {
	orderID := uuid.New()

	p, err := NewPayment(orderID, decimal.RequireFromString("12.34"), MethodStripe)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, p.Status)
	assert.Equal(t, orderID, p.OrderID)
	assert.Empty(t, p.Transactions)

	_, err = NewPayment(orderID, decimal.Zero, MethodStripe)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewPayment(uuid.Nil, decimal.NewFromInt(1), MethodStripe)
	assert.Error(t, err)

	_, err = NewPayment(orderID, decimal.NewFromInt(1), Method("cash"))
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestPayment_Complete(t *testing.T) {
	p, err := NewPayment(uuid.New(), decimal.NewFromInt(20), MethodStripe)
	require.NoError(t, err)

	require.NoError(t, p.Complete("pi_123", "succeeded"))
	assert.True(t, p.IsCompleted())
	assert.Equal(t, "pi_123", p.GatewayReference)
	require.Len(t, p.Transactions, 1)
	assert.Equal(t, TransactionSuccess, p.Transactions[0].Status)
	assert.Equal(t, p.ID, p.Transactions[0].PaymentID)

	require.Len(t, p.GetDomainEvents(), 1)
	assert.Equal(t, EventTypePaymentCompleted, p.GetDomainEvents()[0].EventType())

	err = p.Fail("", "late")
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestPayment_Fail(t *testing.T) {
	p, err := NewPayment(uuid.New(), decimal.NewFromInt(20), MethodStripe)
	require.NoError(t, err)

	require.NoError(t, p.Fail("", "card_declined"))
	assert.Equal(t, StatusFailed, p.Status)
	assert.False(t, p.IsCompleted())
	require.Len(t, p.Transactions, 1)
	assert.Equal(t, TransactionFailed, p.Transactions[0].Status)
	assert.Equal(t, "card_declined", p.Transactions[0].Message)

	event := p.GetDomainEvents()[0].(*PaymentFailedEvent)
	assert.Equal(t, "card_declined", event.Reason)

	assert.Error(t, p.Complete("pi_1", ""))
}
