package models

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate
type OrderModel struct {
	AggregateModel
	UserID          uuid.UUID             `gorm:"type:uuid;not null;index"`
	TotalPrice      decimal.Decimal       `gorm:"type:decimal(10,2);not null"`
	Status          order.Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
	Items           []OrderItemModel      `gorm:"foreignKey:OrderID"`
	ShippingAddress *ShippingAddressModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is a purchased product with its unit price at checkout
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(15);not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ShippingAddressModel is the destination recorded at checkout
type ShippingAddressModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	AddressLine1 string    `gorm:"column:address_line_1;type:varchar(100);not null"`
	AddressLine2 string    `gorm:"column:address_line_2;type:varchar(100)"`
	City         string    `gorm:"type:varchar(100);not null"`
	State        string    `gorm:"type:varchar(100)"`
	PostalCode   string    `gorm:"type:varchar(100)"`
	Country      string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (ShippingAddressModel) TableName() string {
	return "shipping_addresses"
}

// ToDomain converts the model with its loaded children to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: m.ToAggregateRoot(),
		UserID:            m.UserID,
		TotalPrice:        m.TotalPrice,
		Status:            m.Status,
		Items:             make([]order.Item, len(m.Items)),
	}
	for i, item := range m.Items {
		o.Items[i] = order.Item{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			CreatedAt:   item.CreatedAt,
		}
	}
	if a := m.ShippingAddress; a != nil {
		o.ShippingAddress = &order.ShippingAddress{
			ID:      a.ID,
			OrderID: a.OrderID,
			Address: valueobject.RestoreAddress(
				a.AddressLine1, a.AddressLine2, a.City, a.State, a.PostalCode, a.Country,
			),
		}
	}
	return o
}

// OrderModelFromDomain creates a model with children from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		UserID:     o.UserID,
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
		Items:      make([]OrderItemModel, len(o.Items)),
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	for i, item := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:          item.ID,
			OrderID:     o.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			CreatedAt:   item.CreatedAt,
		}
	}
	if a := o.ShippingAddress; a != nil {
		m.ShippingAddress = &ShippingAddressModel{
			ID:           a.ID,
			OrderID:      o.ID,
			AddressLine1: a.Line1(),
			AddressLine2: a.Line2(),
			City:         a.City(),
			State:        a.State(),
			PostalCode:   a.PostalCode(),
			Country:      a.Country(),
		}
	}
	return m
}
