package models

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/cart"
	"github.com/google/uuid"
)

// CartModel is the persistence model for the Cart aggregate
type CartModel struct {
	AggregateModel
	UserID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItemModel `gorm:"foreignKey:CartID"`
}

// TableName returns the table name for GORM
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel is one product line of a cart
type CartItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product,priority:2"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the model and its loaded items to a domain Cart
func (m *CartModel) ToDomain() *cart.Cart {
	items := make([]cart.CartItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = cart.CartItem{
			ID:        item.ID,
			CartID:    item.CartID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}
	}
	return &cart.Cart{
		BaseAggregateRoot: m.ToAggregateRoot(),
		UserID:            m.UserID,
		Items:             items,
	}
}

// CartModelFromDomain creates a model with items from a domain Cart
func CartModelFromDomain(c *cart.Cart) *CartModel {
	m := &CartModel{
		UserID: c.UserID,
		Items:  make([]CartItemModel, len(c.Items)),
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	for i, item := range c.Items {
		m.Items[i] = CartItemModel{
			ID:        item.ID,
			CartID:    c.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}
	}
	return m
}
