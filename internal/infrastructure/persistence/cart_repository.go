package persistence

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/cart"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart with its items
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByIDForUpdate finds a cart and locks its row until the surrounding
// transaction ends. SQLite has no row locks and takes the plain read.
func (r *GormCartRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.first(query)
}

// FindByUserID finds the cart of a user with its items
func (r *GormCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	return r.first(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *GormCartRepository) first(query *gorm.DB) (*cart.Cart, error) {
	var model models.CartModel
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save inserts or version-checks the cart row, deletes item rows no longer in
// the cart and upserts the rest
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	model := models.CartModelFromDomain(c)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.saveRoot(tx, model, c.LoadedVersion()); err != nil {
			return err
		}

		stale := tx.Where("cart_id = ?", model.ID)
		if len(model.Items) > 0 {
			ids := make([]uuid.UUID, len(model.Items))
			for i, item := range model.Items {
				ids[i] = item.ID
			}
			stale = stale.Where("id NOT IN ?", ids)
		}
		if err := stale.Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}

		if len(model.Items) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).Create(&model.Items).Error
	})
	if err != nil {
		return err
	}
	c.MarkSaved()
	return nil
}

func (r *GormCartRepository) saveRoot(tx *gorm.DB, model *models.CartModel, loaded int) error {
	if loaded == 0 {
		return tx.Omit(clause.Associations).Create(model).Error
	}
	result := tx.Model(&models.CartModel{}).
		Where("id = ? AND version = ?", model.ID, loaded).
		Updates(map[string]any{
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict.WithMessage("The cart has been modified by another request")
	}
	return nil
}

// DeleteByUserID removes the user's cart and its items
func (r *GormCartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cartIDs []uuid.UUID
		if err := tx.Model(&models.CartModel{}).Where("user_id = ?", userID).Pluck("id", &cartIDs).Error; err != nil {
			return err
		}
		if len(cartIDs) == 0 {
			return nil
		}
		if err := tx.Where("cart_id IN ?", cartIDs).Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", cartIDs).Delete(&models.CartModel{}).Error
	})
}

// Ensure GormCartRepository implements CartRepository
var _ cart.CartRepository = (*GormCartRepository)(nil)
