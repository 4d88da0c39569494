package payment

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ErrGatewayDeclined is wrapped by gateways when the provider refused the charge
var ErrGatewayDeclined = errors.New("payment: gateway declined the charge")

// ChargeRequest describes a one-off charge for an order
type ChargeRequest struct {
	OrderID      uuid.UUID
	PaymentID    uuid.UUID
	Amount       valueobject.Money
	ReceiptEmail string
	Description  string
}

// ChargeResult is the gateway's answer to a successful call
type ChargeResult struct {
	// Reference is the gateway's identifier for the charge
	Reference string
	// Status is the raw provider status, e.g. "succeeded"
	Status string
}

// Gateway is the port for external payment providers.
// An error return means the charge did not succeed.
type Gateway interface {
	Method() Method
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
