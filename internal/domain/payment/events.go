package payment

import (
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypePayment = "Payment"

// Event type constants
const (
	EventTypePaymentCompleted = "PaymentCompleted"
	EventTypePaymentFailed    = "PaymentFailed"
	EventTypePaymentUnapplied = "PaymentUnapplied"
)

// PaymentCompletedEvent is published when the gateway captured the amount
type PaymentCompletedEvent struct {
	shared.BaseDomainEvent
	PaymentID        uuid.UUID       `json:"payment_id"`
	OrderID          uuid.UUID       `json:"order_id"`
	Amount           decimal.Decimal `json:"amount"`
	Method           Method          `json:"method"`
	GatewayReference string          `json:"gateway_reference"`
}

// NewPaymentCompletedEvent creates a new PaymentCompletedEvent
func NewPaymentCompletedEvent(p *Payment) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypePaymentCompleted, AggregateTypePayment, p.ID),
		PaymentID:        p.ID,
		OrderID:          p.OrderID,
		Amount:           p.Amount,
		Method:           p.Method,
		GatewayReference: p.GatewayReference,
	}
}

// PaymentFailedEvent is published when the gateway rejected the charge
type PaymentFailedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	OrderID   uuid.UUID       `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    Method          `json:"method"`
	Reason    string          `json:"reason"`
}

// NewPaymentFailedEvent creates a new PaymentFailedEvent
func NewPaymentFailedEvent(p *Payment, reason string) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentFailed, AggregateTypePayment, p.ID),
		PaymentID:       p.ID,
		OrderID:         p.OrderID,
		Amount:          p.Amount,
		Method:          p.Method,
		Reason:          reason,
	}
}

// PaymentUnappliedEvent is published when a captured payment could not be
// applied because its order left the pending state during the charge.
// The captured amount has to be refunded.
type PaymentUnappliedEvent struct {
	shared.BaseDomainEvent
	PaymentID        uuid.UUID       `json:"payment_id"`
	OrderID          uuid.UUID       `json:"order_id"`
	Amount           decimal.Decimal `json:"amount"`
	GatewayReference string          `json:"gateway_reference"`
	OrderStatus      string          `json:"order_status"`
}

// NewPaymentUnappliedEvent creates a new PaymentUnappliedEvent
func NewPaymentUnappliedEvent(p *Payment, orderStatus string) *PaymentUnappliedEvent {
	return &PaymentUnappliedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypePaymentUnapplied, AggregateTypePayment, p.ID),
		PaymentID:        p.ID,
		OrderID:          p.OrderID,
		Amount:           p.Amount,
		GatewayReference: p.GatewayReference,
		OrderStatus:      orderStatus,
	}
}
