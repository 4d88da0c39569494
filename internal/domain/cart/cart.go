package cart

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrEmptyCart is returned when checking out a cart without items
var ErrEmptyCart = shared.NewDomainError("EMPTY_CART", "Your cart is empty.")

// ErrItemNotFound is returned when an item id does not belong to the cart
var ErrItemNotFound = shared.ErrNotFound.WithMessage("Cart item not found")

// CartItem is one product line in a cart
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cart is the per-user staging area for a future order
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID
	Items  []CartItem
}

// NewCart creates an empty cart for userID
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
	}, nil
}

// AddItem adds quantity units of productID. An existing line for the same
// product is incremented instead of duplicated.
func (c *Cart) AddItem(productID uuid.UUID, quantity int) (*CartItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.Items[i].UpdatedAt = now
			c.IncrementVersion()
			return &c.Items[i], nil
		}
	}

	c.Items = append(c.Items, CartItem{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
	c.IncrementVersion()
	return &c.Items[len(c.Items)-1], nil
}

// SetItemQuantity replaces the quantity of an existing line
func (c *Cart) SetItemQuantity(itemID uuid.UUID, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	item := c.GetItem(itemID)
	if item == nil {
		return ErrItemNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// RemoveItem deletes a line from the cart
func (c *Cart) RemoveItem(itemID uuid.UUID) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.IncrementVersion()
			return nil
		}
	}
	return ErrItemNotFound
}

// Clear removes every line
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.IncrementVersion()
}

// GetItem returns the line with itemID, or nil
func (c *Cart) GetItem(itemID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ProductIDs returns the distinct products in the cart
func (c *Cart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// Subtotal sums price × quantity using the given unit prices. Lines whose
// product has no price are ignored.
func (c *Cart) Subtotal(prices map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		if price, ok := prices[item.ProductID]; ok {
			total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	return total
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	return nil
}
