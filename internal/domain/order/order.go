package order

import (
	"fmt"
	"slices"
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipping   Status = "shipping"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// AllStatuses lists every declared order status
var AllStatuses = []Status{StatusPending, StatusProcessing, StatusShipping, StatusDelivered, StatusCancelled}

// IsValid checks if the status is a declared Status
func (s Status) IsValid() bool {
	return slices.Contains(AllStatuses, s)
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can move to target
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipping || target == StatusCancelled
	case StatusShipping:
		return target == StatusDelivered
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Line is the input for one order item: the product and its unit price at checkout
type Line struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Item is a purchased product with its price snapshot
type Item struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       decimal.Decimal // unit price at checkout
	CreatedAt   time.Time
}

// Subtotal returns Price × Quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingAddress is the destination recorded on an order
type ShippingAddress struct {
	ID      uuid.UUID
	OrderID uuid.UUID
	valueobject.Address
}

// Order is an immutable record of a purchase and its fulfilment state
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID
	TotalPrice      decimal.Decimal
	Status          Status
	Items           []Item
	ShippingAddress *ShippingAddress
}

// NewOrder places a pending order from checkout lines
func NewOrder(userID uuid.UUID, lines []Line, address *valueobject.Address) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            StatusPending,
		Items:             make([]Item, 0, len(lines)),
	}

	total := decimal.Zero
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if line.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		item := Item{
			ID:          uuid.New(),
			OrderID:     o.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
			CreatedAt:   o.CreatedAt,
		}
		total = total.Add(item.Subtotal())
		o.Items = append(o.Items, item)
	}
	o.TotalPrice = total.Round(2)

	if address != nil && !address.IsEmpty() {
		o.ShippingAddress = &ShippingAddress{
			ID:      uuid.New(),
			OrderID: o.ID,
			Address: *address,
		}
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// TransitionTo moves the order to target when the guard allows it
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Invalid order status: %s", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrInvalidState.WithMessage(
			fmt.Sprintf("Cannot change order status from %s to %s", o.Status, target))
	}

	old := o.Status
	o.Status = target
	o.IncrementVersion()

	if target == StatusCancelled {
		o.AddDomainEvent(NewOrderCancelledEvent(o, old))
	} else {
		o.AddDomainEvent(NewOrderStatusChangedEvent(o, old))
	}
	return nil
}

// MarkPaid moves a pending order to processing after a completed payment
func (o *Order) MarkPaid() error {
	return o.TransitionTo(StatusProcessing)
}

// MarkShipping moves a processing order to shipping once a label is bought.
// Orders in any other state are left unchanged.
func (o *Order) MarkShipping() bool {
	if o.Status != StatusProcessing {
		return false
	}
	_ = o.TransitionTo(StatusShipping)
	return true
}

// MarkDelivered moves a shipping order to delivered.
// Orders in any other state are left unchanged.
func (o *Order) MarkDelivered() bool {
	if o.Status != StatusShipping {
		return false
	}
	_ = o.TransitionTo(StatusDelivered)
	return true
}

// IsPayable reports whether a payment may be attempted
func (o *Order) IsPayable() bool {
	return o.Status == StatusPending
}

// IsOwnedBy reports whether userID placed the order
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// TotalMoney returns the order total in the store currency
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalPrice)
}

// ItemCount returns the number of lines
func (o *Order) ItemCount() int {
	return len(o.Items)
}
