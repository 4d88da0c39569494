package order

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FilterStatus is the filter key for restricting lists to one status
const FilterStatus = "status"

// OrderRepository defines the interface for order persistence.
// Orders are loaded with their items and shipping address.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUpdate also locks the order row for the rest of the transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUser returns shared.ErrNotFound when the order belongs to someone else
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Order, error)

	// FindAll honours FilterStatus
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)

	// Save inserts a new order with its children, or updates status and version
	// of an existing one. Returns shared.ErrConcurrencyConflict when the stored
	// version moved since the order was loaded.
	Save(ctx context.Context, order *Order) error
}
