package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence.
// Carts are always loaded and saved together with their items.
type CartRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindByIDForUpdate also locks the cart row for the rest of the transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Cart, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save stores the cart and synchronises its item rows. Returns
	// shared.ErrConcurrencyConflict when the cart changed since it was loaded.
	Save(ctx context.Context, cart *Cart) error

	// DeleteByUserID removes the user's cart and all of its items
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
