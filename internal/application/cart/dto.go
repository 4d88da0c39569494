package cart

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/cart"
	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds a product to the caller's cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateItemRequest sets the quantity of a cart line
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartItemResponse is a cart line enriched with the current product price
type CartItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"string" example:"19.99"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total" swaggertype:"string" example:"39.98"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	Items     []CartItemResponse `json:"items"`
	Subtotal  decimal.Decimal    `json:"subtotal" swaggertype:"string" example:"39.98"`
	ItemCount int                `json:"item_count"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// toCartResponse joins cart lines with the given products; lines whose
// product no longer exists are listed without a price.
func toCartResponse(c *cart.Cart, products map[uuid.UUID]catalog.Product) CartResponse {
	prices := make(map[uuid.UUID]decimal.Decimal, len(products))
	items := make([]CartItemResponse, len(c.Items))
	count := 0
	for i, item := range c.Items {
		line := CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if p, ok := products[item.ProductID]; ok {
			prices[p.ID] = p.Price
			line.ProductName = p.Name
			line.UnitPrice = p.Price
			line.LineTotal = p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		items[i] = line
		count += item.Quantity
	}

	return CartResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     items,
		Subtotal:  c.Subtotal(prices),
		ItemCount: count,
		UpdatedAt: c.UpdatedAt,
	}
}
