package models

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/shipping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingMethodModel records the carrier service bought for a delivery
type ShippingMethodModel struct {
	ID        uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name      shipping.MethodName `gorm:"type:varchar(50);not null"`
	Price     decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShippingMethodModel) TableName() string {
	return "shipping_methods"
}

// DeliveryModel is the persistence model for the Delivery aggregate
type DeliveryModel struct {
	AggregateModel
	OrderID          uuid.UUID               `gorm:"type:uuid;not null;index"`
	ShippingMethodID uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex"`
	ShippingMethod   *ShippingMethodModel    `gorm:"foreignKey:ShippingMethodID"`
	TrackingNumber   string                  `gorm:"type:varchar(100)"`
	LabelURL         string                  `gorm:"column:label_url;type:varchar(500)"`
	TrackingURL      string                  `gorm:"column:tracking_url;type:varchar(500)"`
	Status           shipping.DeliveryStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (DeliveryModel) TableName() string {
	return "deliveries"
}

// ToDomain converts the model with its loaded shipping method to a domain Delivery
func (m *DeliveryModel) ToDomain() *shipping.Delivery {
	d := &shipping.Delivery{
		BaseAggregateRoot: m.ToAggregateRoot(),
		OrderID:           m.OrderID,
		ShippingMethodID:  m.ShippingMethodID,
		TrackingNumber:    m.TrackingNumber,
		LabelURL:          m.LabelURL,
		TrackingURL:       m.TrackingURL,
		Status:            m.Status,
	}
	if sm := m.ShippingMethod; sm != nil {
		d.ShippingMethod = &shipping.ShippingMethod{
			ID:        sm.ID,
			Name:      sm.Name,
			Price:     sm.Price,
			CreatedAt: sm.CreatedAt,
		}
	}
	return d
}

// DeliveryModelFromDomain creates a model from a domain Delivery
func DeliveryModelFromDomain(d *shipping.Delivery) *DeliveryModel {
	m := &DeliveryModel{
		OrderID:          d.OrderID,
		ShippingMethodID: d.ShippingMethodID,
		TrackingNumber:   d.TrackingNumber,
		LabelURL:         d.LabelURL,
		TrackingURL:      d.TrackingURL,
		Status:           d.Status,
	}
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	if sm := d.ShippingMethod; sm != nil {
		m.ShippingMethod = &ShippingMethodModel{
			ID:        sm.ID,
			Name:      sm.Name,
			Price:     sm.Price,
			CreatedAt: sm.CreatedAt,
		}
	}
	return m
}
