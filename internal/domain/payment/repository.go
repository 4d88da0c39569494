package payment

import (
	"context"

	"github.com/google/uuid"
)

// PaymentRepository defines the interface for payment persistence.
// Payments are loaded with their transactions.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]Payment, error)

	// Save upserts the payment and inserts any new transactions
	Save(ctx context.Context, payment *Payment) error
}
