package shipping

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/shipping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RatesRequest is the recipient address rates are quoted for.
// Presence is checked by the service so that every missing field yields the same message.
type RatesRequest struct {
	Name    string `json:"name" binding:"max=100"`
	Street1 string `json:"street1" binding:"max=100"`
	City    string `json:"city" binding:"max=100"`
	State   string `json:"state" binding:"max=100"`
	Zip     string `json:"zip" binding:"max=20"`
	Country string `json:"country" binding:"max=100"`
	Phone   string `json:"phone" binding:"max=30"`
	Email   string `json:"email" binding:"omitempty,email"`
}

func (r RatesRequest) toAddress() shipping.Address {
	return shipping.Address{
		Name:    r.Name,
		Street1: r.Street1,
		City:    r.City,
		State:   r.State,
		Zip:     r.Zip,
		Country: r.Country,
		Phone:   r.Phone,
		Email:   r.Email,
	}
}

// RateResponse is one carrier offer
type RateResponse struct {
	Provider      string          `json:"provider" example:"USPS"`
	ServiceLevel  string          `json:"servicelevel" example:"Priority Mail"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"7.45"`
	Currency      string          `json:"currency" example:"USD"`
	EstimatedDays int             `json:"estimated_days" example:"2"`
	RateID        string          `json:"rate_id"`
}

// PurchaseLabelRequest selects the rate to buy
type PurchaseLabelRequest struct {
	RateID string `json:"rate_id"`
}

// PurchaseLabelResponse is returned after a label was bought
type PurchaseLabelResponse struct {
	Message        string    `json:"message" example:"Label purchased successfully"`
	DeliveryID     uuid.UUID `json:"delivery_id"`
	TrackingNumber string    `json:"tracking_number"`
	LabelURL       string    `json:"label_url"`
	TrackingURL    string    `json:"tracking_url"`
	Status         string    `json:"status"`
}

// UpdateDeliveryStatusRequest sets a delivery's tracking status
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDeliveryStatusResponse confirms a status update
type UpdateDeliveryStatusResponse struct {
	Message   string `json:"message" example:"Delivery status updated successfully"`
	NewStatus string `json:"new_status"`
}

// ShippingMethodResponse is the carrier service paid for
type ShippingMethodResponse struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price" swaggertype:"string" example:"7.45"`
}

// DeliveryResponse is a delivery with its shipping method
type DeliveryResponse struct {
	ID             uuid.UUID               `json:"id"`
	OrderID        uuid.UUID               `json:"order_id"`
	ShippingMethod *ShippingMethodResponse `json:"shipping_method,omitempty"`
	TrackingNumber string                  `json:"tracking_number"`
	LabelURL       string                  `json:"label_url"`
	TrackingURL    string                  `json:"tracking_url"`
	Status         string                  `json:"status"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

func toRateResponse(r shipping.Rate) RateResponse {
	return RateResponse{
		Provider:      r.Provider,
		ServiceLevel:  r.ServiceLevel,
		Amount:        r.Amount,
		Currency:      r.Currency,
		EstimatedDays: r.EstimatedDays,
		RateID:        r.ID,
	}
}

// ToDeliveryResponse converts a domain Delivery
func ToDeliveryResponse(d *shipping.Delivery) DeliveryResponse {
	resp := DeliveryResponse{
		ID:             d.ID,
		OrderID:        d.OrderID,
		TrackingNumber: d.TrackingNumber,
		LabelURL:       d.LabelURL,
		TrackingURL:    d.TrackingURL,
		Status:         string(d.Status),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.ShippingMethod != nil {
		resp.ShippingMethod = &ShippingMethodResponse{
			ID:    d.ShippingMethod.ID,
			Name:  string(d.ShippingMethod.Name),
			Price: d.ShippingMethod.Price,
		}
	}
	return resp
}
