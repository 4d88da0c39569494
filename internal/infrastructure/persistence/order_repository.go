package persistence

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("ShippingAddress")
}

// FindByID finds an order with its items and shipping address
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.first(r.withChildren(ctx).Where("id = ?", id))
}

// FindByIDForUpdate finds an order and locks its row until the surrounding
// transaction ends. SQLite has no row locks and takes the plain read.
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := r.withChildren(ctx).Where("id = ?", id)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.first(query)
}

// FindByIDForUser finds an order only if userID placed it
func (r *GormOrderRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*order.Order, error) {
	return r.first(r.withChildren(ctx).Where("id = ? AND user_id = ?", id, userID))
}

func (r *GormOrderRepository) first(query *gorm.DB) (*order.Order, error) {
	var model models.OrderModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists orders of every user
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	return r.find(applySortAndPage(r.applyFilter(r.withChildren(ctx).Model(&models.OrderModel{}), filter), "orders", filter, OrderSortFields))
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).Count(&count).Error
	return count, err
}

// FindByUser lists the orders placed by userID
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	query := r.applyFilter(r.withChildren(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID), filter)
	return r.find(applySortAndPage(query, "orders", filter, OrderSortFields))
}

// CountByUser counts the orders placed by userID
func (r *GormOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID), filter).
		Count(&count).Error
	return count, err
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status := filter.StringFilter(order.FilterStatus); status != "" {
		query = query.Where("status = ?", status)
	}
	return query
}

func (r *GormOrderRepository) find(query *gorm.DB) ([]order.Order, error) {
	var rows []models.OrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Save inserts a new order with its items and address. For an existing order
// only status, total, version and updated_at change; items are immutable.
// The update only applies while the stored version is the one that was loaded.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	db := r.db.WithContext(ctx)

	if loaded := o.LoadedVersion(); loaded > 0 {
		result := db.Model(&models.OrderModel{}).
			Where("id = ? AND version = ?", model.ID, loaded).
			Updates(map[string]any{
				"status":      model.Status,
				"total_price": model.TotalPrice,
				"version":     model.Version,
				"updated_at":  model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict.WithMessage("The order has been modified by another request")
		}
		o.MarkSaved()
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return err
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return err
			}
		}
		if model.ShippingAddress != nil {
			return tx.Create(model.ShippingAddress).Error
		}
		return nil
	})
	if err != nil {
		return err
	}
	o.MarkSaved()
	return nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ order.OrderRepository = (*GormOrderRepository)(nil)
