package shipping

import (
	"fmt"
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryStatus tracks a shipment after its label was bought
type DeliveryStatus string

const (
	DeliveryPending        DeliveryStatus = "pending"
	DeliveryInTransit      DeliveryStatus = "in_transit"
	DeliveryOutForDelivery DeliveryStatus = "out_for_delivery"
	DeliveryDelivered      DeliveryStatus = "delivered"
	DeliveryFailed         DeliveryStatus = "failed"
)

// IsValid checks if the status is a declared DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryPending, DeliveryInTransit, DeliveryOutForDelivery, DeliveryDelivered, DeliveryFailed:
		return true
	}
	return false
}

// MethodName identifies the carrier integration that produced a label
type MethodName string

const (
	MethodShippo MethodName = "shippo"
)

var (
	ErrAddressIncomplete = shared.NewDomainError("INVALID_ADDRESS", "All address fields are required")
	ErrNoRateSelected    = shared.NewDomainError("NO_RATE_SELECTED", "No rate selected")
	ErrInvalidStatus     = shared.NewDomainError("INVALID_STATUS", "Invalid status")
	ErrProvider          = shared.NewDomainError("SHIPPING_PROVIDER_ERROR", "Shipping provider request failed")
	ErrLabelNotPurchased = shared.NewDomainError("LABEL_PURCHASE_FAILED", "Label purchase failed")
)

// ShippingMethod records the carrier service and price paid for a delivery
type ShippingMethod struct {
	ID        uuid.UUID
	Name      MethodName
	Price     decimal.Decimal
	CreatedAt time.Time
}

// NewShippingMethod creates a shipping method priced at the purchased rate
func NewShippingMethod(name MethodName, price decimal.Decimal) (*ShippingMethod, error) {
	if name != MethodShippo {
		return nil, shared.NewDomainError("INVALID_SHIPPING_METHOD", fmt.Sprintf("Unknown shipping method: %s", name))
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Shipping price cannot be negative")
	}
	return &ShippingMethod{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		CreatedAt: time.Now(),
	}, nil
}

// Delivery is the shipment tracking record for an order
type Delivery struct {
	shared.BaseAggregateRoot
	OrderID          uuid.UUID
	ShippingMethodID uuid.UUID
	ShippingMethod   *ShippingMethod
	TrackingNumber   string
	LabelURL         string
	TrackingURL      string
	Status           DeliveryStatus
}

// NewDelivery creates a pending delivery from a purchased label
func NewDelivery(orderID uuid.UUID, method *ShippingMethod, label Label) (*Delivery, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID is required")
	}
	if method == nil {
		return nil, shared.NewDomainError("INVALID_SHIPPING_METHOD", "Shipping method is required")
	}

	d := &Delivery{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		ShippingMethodID:  method.ID,
		ShippingMethod:    method,
		TrackingNumber:    label.TrackingNumber,
		LabelURL:          label.LabelURL,
		TrackingURL:       label.TrackingURL,
		Status:            DeliveryPending,
	}
	d.AddDomainEvent(NewDeliveryScheduledEvent(d))
	return d, nil
}

// UpdateStatus sets a new tracking status
func (d *Delivery) UpdateStatus(status DeliveryStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	old := d.Status
	d.Status = status
	d.IncrementVersion()
	d.AddDomainEvent(NewDeliveryStatusChangedEvent(d, old))
	return nil
}

// IsDelivered reports whether the parcel reached the customer
func (d *Delivery) IsDelivered() bool {
	return d.Status == DeliveryDelivered
}
