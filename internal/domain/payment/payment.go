package payment

import (
	"strings"
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the outcome of a payment attempt
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Method identifies the payment platform used for a charge
type Method string

const (
	MethodStripe Method = "stripe"
)

// IsValid checks if the method is supported
func (m Method) IsValid() bool {
	return m == MethodStripe
}

// TransactionStatus is the result of one gateway call
type TransactionStatus string

const (
	TransactionSuccess TransactionStatus = "success"
	TransactionFailed  TransactionStatus = "failed"
)

var (
	ErrNotEligible     = shared.NewDomainError("PAYMENT_NOT_ELIGIBLE", "Order is not eligible for payment.")
	ErrMethodRequired  = shared.NewDomainError("PAYMENT_METHOD_REQUIRED", "Payment method is required.")
	ErrInvalidMethod   = shared.NewDomainError("INVALID_PAYMENT_METHOD", "Invalid payment method.")
	ErrAlreadySettled  = shared.ErrInvalidState.WithMessage("Payment has already been settled")
	ErrInvalidAmount   = shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	ErrPaymentNotFound = shared.ErrNotFound.WithMessage("Payment not found")
)

// ParseMethod validates a user supplied payment platform name
func ParseMethod(raw string) (Method, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", ErrMethodRequired
	}
	m := Method(raw)
	if !m.IsValid() {
		return "", ErrInvalidMethod
	}
	return m, nil
}

// Transaction records the gateway's answer to one charge attempt
type Transaction struct {
	ID               uuid.UUID
	PaymentID        uuid.UUID
	Status           TransactionStatus
	GatewayReference string
	Message          string
	CreatedAt        time.Time
}

// Payment is a monetary capture attempt against an order
type Payment struct {
	shared.BaseAggregateRoot
	OrderID          uuid.UUID
	Amount           decimal.Decimal
	Status           Status
	Method           Method
	GatewayReference string
	Transactions     []Transaction
}

// NewPayment creates a pending payment for orderID
func NewPayment(orderID uuid.UUID, amount decimal.Decimal, method Method) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID is required")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		Amount:            amount,
		Status:            StatusPending,
		Method:            method,
		Transactions:      make([]Transaction, 0, 1),
	}, nil
}

// Complete settles the payment with the gateway's reference
func (p *Payment) Complete(reference, message string) error {
	if p.Status != StatusPending {
		return ErrAlreadySettled
	}
	p.Status = StatusCompleted
	p.GatewayReference = reference
	p.recordTransaction(TransactionSuccess, reference, message)
	p.IncrementVersion()
	p.AddDomainEvent(NewPaymentCompletedEvent(p))
	return nil
}

// Fail marks the payment as failed with the gateway's message
func (p *Payment) Fail(reference, message string) error {
	if p.Status != StatusPending {
		return ErrAlreadySettled
	}
	p.Status = StatusFailed
	p.GatewayReference = reference
	p.recordTransaction(TransactionFailed, reference, message)
	p.IncrementVersion()
	p.AddDomainEvent(NewPaymentFailedEvent(p, message))
	return nil
}

// FlagUnapplied records that the captured amount could not be applied to the
// order, which was in orderStatus by then. Only completed payments are flagged.
func (p *Payment) FlagUnapplied(orderStatus string) {
	if p.Status != StatusCompleted {
		return
	}
	p.AddDomainEvent(NewPaymentUnappliedEvent(p, orderStatus))
}

// IsCompleted reports whether the charge succeeded
func (p *Payment) IsCompleted() bool {
	return p.Status == StatusCompleted
}

func (p *Payment) recordTransaction(status TransactionStatus, reference, message string) {
	p.Transactions = append(p.Transactions, Transaction{
		ID:               uuid.New(),
		PaymentID:        p.ID,
		Status:           status,
		GatewayReference: reference,
		Message:          message,
		CreatedAt:        time.Now(),
	})
}
