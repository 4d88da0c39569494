package models

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for the Payment aggregate
type PaymentModel struct {
	AggregateModel
	OrderID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal    `gorm:"type:decimal(10,2);not null"`
	Status           payment.Status     `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod    payment.Method     `gorm:"column:payment_method;type:varchar(20);not null"`
	GatewayReference string             `gorm:"type:varchar(255)"`
	Transactions     []TransactionModel `gorm:"foreignKey:PaymentID"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// TransactionModel records one gateway answer for a payment
type TransactionModel struct {
	ID               uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	PaymentID        uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Status           payment.TransactionStatus `gorm:"type:varchar(20);not null"`
	GatewayReference string                    `gorm:"type:varchar(255)"`
	Message          string                    `gorm:"type:text"`
	CreatedAt        time.Time                 `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the model with its loaded transactions to a domain Payment
func (m *PaymentModel) ToDomain() *payment.Payment {
	p := &payment.Payment{
		BaseAggregateRoot: m.ToAggregateRoot(),
		OrderID:           m.OrderID,
		Amount:            m.Amount,
		Status:            m.Status,
		Method:            m.PaymentMethod,
		GatewayReference:  m.GatewayReference,
		Transactions:      make([]payment.Transaction, len(m.Transactions)),
	}
	for i, tx := range m.Transactions {
		p.Transactions[i] = payment.Transaction{
			ID:               tx.ID,
			PaymentID:        tx.PaymentID,
			Status:           tx.Status,
			GatewayReference: tx.GatewayReference,
			Message:          tx.Message,
			CreatedAt:        tx.CreatedAt,
		}
	}
	return p
}

// PaymentModelFromDomain creates a model with transactions from a domain Payment
func PaymentModelFromDomain(p *payment.Payment) *PaymentModel {
	m := &PaymentModel{
		OrderID:          p.OrderID,
		Amount:           p.Amount,
		Status:           p.Status,
		PaymentMethod:    p.Method,
		GatewayReference: p.GatewayReference,
		Transactions:     make([]TransactionModel, len(p.Transactions)),
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	for i, tx := range p.Transactions {
		m.Transactions[i] = TransactionModel{
			ID:               tx.ID,
			PaymentID:        p.ID,
			Status:           tx.Status,
			GatewayReference: tx.GatewayReference,
			Message:          tx.Message,
			CreatedAt:        tx.CreatedAt,
		}
	}
	return m
}
