package persistence

import (
	"context"
	"testing"

	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeTestOrder(t *testing.T, repo *GormOrderRepository, userID uuid.UUID, f catalogFixture) *order.Order {
	t.Helper()
	rocket := f.products["Rocket Phone"]
	anvil := f.products["Anvil Book"]
	address, err := valueobject.NewAddress("1 Main St", "Apt 2", "Springfield", "IL", "62701", "US")
	require.NoError(t, err)

	o, err := order.NewOrder(userID, []order.Line{
		{ProductID: rocket.ID, ProductName: rocket.Name, Quantity: 2, UnitPrice: rocket.Price},
		{ProductID: anvil.ID, ProductName: anvil.Name, Quantity: 1, UnitPrice: anvil.Price},
	}, &address)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), o))
	return o
}

func TestGormOrderRepository_SaveAndLoad(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	buyer := createTestUser(t, db, "buyer")
	stranger := createTestUser(t, db, "stranger")
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	placed := placeTestOrder(t, repo, buyer.ID, f)

	t.Run("loads items and shipping address", func(t *testing.T) {
		o, err := repo.FindByID(ctx, placed.ID)
		require.NoError(t, err)

		assert.Equal(t, order.StatusPending, o.Status)
		assert.True(t, decimal.RequireFromString("2298.98").Equal(o.TotalPrice), o.TotalPrice.String())
		require.Len(t, o.Items, 2)
		for _, item := range o.Items {
			assert.Equal(t, placed.ID, item.OrderID)
		}
		require.NotNil(t, o.ShippingAddress)
		assert.Equal(t, "Springfield", o.ShippingAddress.City())
		assert.Equal(t, "Apt 2", o.ShippingAddress.Line2())
	})

	t.Run("FindByIDForUser hides other users' orders", func(t *testing.T) {
		_, err := repo.FindByIDForUser(ctx, placed.ID, buyer.ID)
		assert.NoError(t, err)

		_, err = repo.FindByIDForUser(ctx, placed.ID, stranger.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Save of an existing order updates status only", func(t *testing.T) {
		o, err := repo.FindByID(ctx, placed.ID)
		require.NoError(t, err)
		require.NoError(t, o.TransitionTo(order.StatusProcessing))
		require.NoError(t, repo.Save(ctx, o))

		reloaded, err := repo.FindByID(ctx, placed.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusProcessing, reloaded.Status)
		assert.Equal(t, o.Version, reloaded.Version)
		assert.Len(t, reloaded.Items, 2)
	})
}

func TestGormOrderRepository_StaleSave(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	buyer := createTestUser(t, db, "racer")
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	placed := placeTestOrder(t, repo, buyer.ID, f)

	cancelled, err := repo.FindByIDForUpdate(ctx, placed.ID)
	require.NoError(t, err)
	paid, err := repo.FindByID(ctx, placed.ID)
	require.NoError(t, err)

	require.NoError(t, cancelled.TransitionTo(order.StatusCancelled))
	require.NoError(t, repo.Save(ctx, cancelled))

	require.NoError(t, paid.MarkPaid())
	assert.ErrorIs(t, repo.Save(ctx, paid), shared.ErrConcurrencyConflict)

	reloaded, err := repo.FindByID(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, reloaded.Status)
	assert.Equal(t, cancelled.Version, reloaded.Version)

	t.Run("consecutive saves of one order", func(t *testing.T) {
		o := placeTestOrder(t, repo, buyer.ID, f)
		require.NoError(t, o.MarkPaid())
		require.NoError(t, repo.Save(ctx, o))
		require.True(t, o.MarkShipping())
		require.NoError(t, repo.Save(ctx, o))

		reloaded, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipping, reloaded.Status)
		assert.Equal(t, 3, reloaded.Version)
	})
}

func TestGormOrderRepository_Lists(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	placeTestOrder(t, repo, alice.ID, f)
	cancelled := placeTestOrder(t, repo, alice.ID, f)
	placeTestOrder(t, repo, bob.ID, f)

	require.NoError(t, cancelled.TransitionTo(order.StatusCancelled))
	require.NoError(t, repo.Save(ctx, cancelled))

	t.Run("FindAll and Count", func(t *testing.T) {
		all, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, all, 3)

		count, err := repo.Count(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("status filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters[order.FilterStatus] = "cancelled"

		list, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, cancelled.ID, list[0].ID)
	})

	t.Run("per user", func(t *testing.T) {
		mine, err := repo.FindByUser(ctx, alice.ID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, mine, 2)
		for _, o := range mine {
			assert.Equal(t, alice.ID, o.UserID)
			assert.Len(t, o.Items, 2)
		}

		count, err := repo.CountByUser(ctx, bob.ID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
