package persistence

import (
	"context"
	"errors"
	"testing"

	appshared "github.com/ecommerce/backend/internal/application/shared"
	"github.com/ecommerce/backend/internal/domain/cart"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	user := createTestUser(t, db, "atomic")
	scope := NewGormTransactionScope(db)
	ctx := context.Background()
	rocket := f.products["Rocket Phone"]

	t.Run("commits every write", func(t *testing.T) {
		var cartID uuid.UUID
		err := scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
			p, err := repos.Products().FindByIDForUpdate(ctx, rocket.ID)
			if err != nil {
				return err
			}
			if err := p.DecreaseStock(1); err != nil {
				return err
			}
			if err := repos.Products().Save(ctx, p); err != nil {
				return err
			}
			c, err := cart.NewCart(user.ID)
			if err != nil {
				return err
			}
			cartID = c.ID
			return repos.Carts().Save(ctx, c)
		})
		require.NoError(t, err)

		p, err := NewGormProductRepository(db).FindByID(ctx, rocket.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, p.Stock)

		_, err = NewGormCartRepository(db).FindByID(ctx, cartID)
		assert.NoError(t, err)
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		boom := errors.New("boom")
		err := scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
			p, err := repos.Products().FindByIDForUpdate(ctx, rocket.ID)
			if err != nil {
				return err
			}
			if err := p.DecreaseStock(5); err != nil {
				return err
			}
			if err := repos.Products().Save(ctx, p); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		p, err := NewGormProductRepository(db).FindByID(ctx, rocket.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, p.Stock)
	})

	t.Run("domain errors pass through unchanged", func(t *testing.T) {
		err := scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
			p, err := repos.Products().FindByID(ctx, f.products["Globe Phone"].ID)
			if err != nil {
				return err
			}
			return p.DecreaseStock(1)
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})
}
