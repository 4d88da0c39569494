package shipping

import (
	"context"

	"github.com/google/uuid"
)

// DeliveryRepository defines the interface for delivery persistence.
// Deliveries are loaded with their shipping method.
type DeliveryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Delivery, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]Delivery, error)

	// Save upserts the delivery and, when new, its shipping method
	Save(ctx context.Context, delivery *Delivery) error
}
