package order

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddressRequest is a shipping address supplied at checkout
type AddressRequest struct {
	AddressLine1 string `json:"address_line_1" binding:"required,max=100"`
	AddressLine2 string `json:"address_line_2" binding:"max=100"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"max=100"`
	PostalCode   string `json:"postal_code" binding:"max=100"`
	Country      string `json:"country" binding:"required,max=100"`
}

func (r *AddressRequest) toAddress() (*valueobject.Address, error) {
	if r == nil {
		return nil, nil
	}
	addr, err := valueobject.NewAddress(r.AddressLine1, r.AddressLine2, r.City, r.State, r.PostalCode, r.Country)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	return &addr, nil
}

// CheckoutRequest is the optional body of a checkout
type CheckoutRequest struct {
	ShippingAddress *AddressRequest `json:"shipping_address"`
}

// UpdateStatusRequest changes the status of an order
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse represents an order line
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
}

// AddressResponse represents an order's shipping address
type AddressResponse struct {
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// OrderResponse represents an order with its items and shipping address
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	TotalPrice      decimal.Decimal     `json:"total_price" swaggertype:"string" example:"59.97"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	ShippingAddress *AddressResponse    `json:"shipping_address,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending processing shipping delivered cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at updated_at total_price status"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToOrderResponse converts a domain Order
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	resp := OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		TotalPrice: o.TotalPrice,
		Status:     o.Status.String(),
		Items:      items,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	if o.ShippingAddress != nil {
		a := o.ShippingAddress.Address
		resp.ShippingAddress = &AddressResponse{
			AddressLine1: a.Line1(),
			AddressLine2: a.Line2(),
			City:         a.City(),
			State:        a.State(),
			PostalCode:   a.PostalCode(),
			Country:      a.Country(),
		}
	}
	return resp
}

// ToOrderResponses converts a slice of domain Orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
