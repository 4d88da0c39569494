package shipping

import (
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeDelivery = "Delivery"

// Event type constants
const (
	EventTypeDeliveryScheduled     = "DeliveryScheduled"
	EventTypeDeliveryStatusChanged = "DeliveryStatusChanged"
)

// DeliveryScheduledEvent is published when a label is bought for an order
type DeliveryScheduledEvent struct {
	shared.BaseDomainEvent
	DeliveryID     uuid.UUID `json:"delivery_id"`
	OrderID        uuid.UUID `json:"order_id"`
	TrackingNumber string    `json:"tracking_number"`
}

// NewDeliveryScheduledEvent creates a new DeliveryScheduledEvent
func NewDeliveryScheduledEvent(d *Delivery) *DeliveryScheduledEvent {
	return &DeliveryScheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryScheduled, AggregateTypeDelivery, d.ID),
		DeliveryID:      d.ID,
		OrderID:         d.OrderID,
		TrackingNumber:  d.TrackingNumber,
	}
}

// DeliveryStatusChangedEvent is published on every tracking update
type DeliveryStatusChangedEvent struct {
	shared.BaseDomainEvent
	DeliveryID uuid.UUID      `json:"delivery_id"`
	OrderID    uuid.UUID      `json:"order_id"`
	OldStatus  DeliveryStatus `json:"old_status"`
	NewStatus  DeliveryStatus `json:"new_status"`
}

// NewDeliveryStatusChangedEvent creates a new DeliveryStatusChangedEvent
func NewDeliveryStatusChangedEvent(d *Delivery, oldStatus DeliveryStatus) *DeliveryStatusChangedEvent {
	return &DeliveryStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryStatusChanged, AggregateTypeDelivery, d.ID),
		DeliveryID:      d.ID,
		OrderID:         d.OrderID,
		OldStatus:       oldStatus,
		NewStatus:       d.Status,
	}
}
