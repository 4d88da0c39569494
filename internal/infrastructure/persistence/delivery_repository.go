package persistence

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/domain/shipping"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// FindByID finds a delivery with its shipping method
func (r *GormDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Delivery, error) {
	var model models.DeliveryModel
	if err := r.db.WithContext(ctx).
		Preload("ShippingMethod").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderID lists the deliveries of an order, oldest first
func (r *GormDeliveryRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]shipping.Delivery, error) {
	var rows []models.DeliveryModel
	if err := r.db.WithContext(ctx).
		Preload("ShippingMethod").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	deliveries := make([]shipping.Delivery, len(rows))
	for i := range rows {
		deliveries[i] = *rows[i].ToDomain()
	}
	return deliveries, nil
}

// Save inserts the shipping method when it is new, then upserts the delivery
func (r *GormDeliveryRepository) Save(ctx context.Context, d *shipping.Delivery) error {
	model := models.DeliveryModelFromDomain(d)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if model.ShippingMethod != nil {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(model.ShippingMethod).Error; err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(model).Error
	})
}

// Ensure GormDeliveryRepository implements DeliveryRepository
var _ shipping.DeliveryRepository = (*GormDeliveryRepository)(nil)
