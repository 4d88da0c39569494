package payment

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProcessPaymentRequest selects the platform used to charge an order.
// The field is validated by the service so that a missing value gets its own message.
type ProcessPaymentRequest struct {
	PaymentPlatform string `json:"payment_platform" example:"stripe"`
}

// ProcessPaymentResponse is returned after a charge attempt
type ProcessPaymentResponse struct {
	Message   string    `json:"message" example:"Payment processed successfully"`
	Status    string    `json:"status" example:"completed"`
	PaymentID uuid.UUID `json:"payment_id"`
}

// TransactionResponse is one gateway call recorded on a payment
type TransactionResponse struct {
	ID               uuid.UUID `json:"id"`
	Status           string    `json:"status"`
	GatewayReference string    `json:"gateway_reference"`
	Message          string    `json:"message"`
	CreatedAt        time.Time `json:"created_at"`
}

// PaymentResponse is a payment with its transactions
type PaymentResponse struct {
	ID               uuid.UUID             `json:"id"`
	OrderID          uuid.UUID             `json:"order_id"`
	Amount           decimal.Decimal       `json:"amount" swaggertype:"string" example:"59.97"`
	Status           string                `json:"status"`
	PaymentMethod    string                `json:"payment_method"`
	GatewayReference string                `json:"gateway_reference"`
	Transactions     []TransactionResponse `json:"transactions"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// ToPaymentResponse converts a domain Payment
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	txs := make([]TransactionResponse, len(p.Transactions))
	for i, tx := range p.Transactions {
		txs[i] = TransactionResponse{
			ID:               tx.ID,
			Status:           string(tx.Status),
			GatewayReference: tx.GatewayReference,
			Message:          tx.Message,
			CreatedAt:        tx.CreatedAt,
		}
	}
	return PaymentResponse{
		ID:               p.ID,
		OrderID:          p.OrderID,
		Amount:           p.Amount,
		Status:           string(p.Status),
		PaymentMethod:    string(p.Method),
		GatewayReference: p.GatewayReference,
		Transactions:     txs,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
