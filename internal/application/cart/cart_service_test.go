package cart

import (
	"context"
	"testing"

	"github.com/ecommerce/backend/internal/domain/cart"
	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartRepository is a mock implementation of CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newProduct(t *testing.T, name, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductFields{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      10,
		CategoryID: uuid.New(),
		BrandID:    uuid.New(),
	})
	require.NoError(t, err)
	return p
}

func TestCartService_Get_CreatesOnFirstAccess(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	svc := NewCartService(carts, new(MockProductRepository))
	userID := uuid.New()

	carts.On("FindByUserID", ctx, userID).Return(nil, shared.ErrNotFound)
	carts.On("Save", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil)

	resp, err := svc.Get(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, resp.UserID)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Subtotal.IsZero())
	carts.AssertExpectations(t)
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	shoe := newProduct(t, "Shoe", "25.50")

	t.Run("same product increments quantity", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewCartService(carts, products)
		c, err := cart.NewCart(userID)
		require.NoError(t, err)
		_, err = c.AddItem(shoe.ID, 1)
		require.NoError(t, err)

		products.On("FindByID", ctx, shoe.ID).Return(shoe, nil)
		carts.On("FindByUserID", ctx, userID).Return(c, nil)
		carts.On("Save", ctx, c).Return(nil)
		products.On("FindByIDs", ctx, []uuid.UUID{shoe.ID}).Return([]catalog.Product{*shoe}, nil)

		resp, err := svc.AddItem(ctx, userID, AddItemRequest{ProductID: shoe.ID, Quantity: 2})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 3, resp.Items[0].Quantity)
		assert.Equal(t, "76.50", resp.Subtotal.StringFixed(2))
		assert.Equal(t, "Shoe", resp.Items[0].ProductName)
		assert.Equal(t, 3, resp.ItemCount)
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewCartService(carts, products)
		c, err := cart.NewCart(userID)
		require.NoError(t, err)

		products.On("FindByID", ctx, shoe.ID).Return(shoe, nil)
		carts.On("FindByUserID", ctx, userID).Return(c, nil)
		carts.On("Save", ctx, c).Return(nil)
		products.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*shoe}, nil)

		resp, err := svc.AddItem(ctx, userID, AddItemRequest{ProductID: shoe.ID})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Items[0].Quantity)
	})

	t.Run("unknown product", func(t *testing.T) {
		carts := new(MockCartRepository)
		products := new(MockProductRepository)
		svc := NewCartService(carts, products)
		missing := uuid.New()

		products.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		_, err := svc.AddItem(ctx, userID, AddItemRequest{ProductID: missing, Quantity: 1})

		require.Error(t, err)
		assert.Equal(t, "INVALID_PRODUCT", err.(*shared.DomainError).Code)
		carts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCartService_UpdateItem_ForeignItem(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	svc := NewCartService(carts, new(MockProductRepository))
	userID := uuid.New()
	c, err := cart.NewCart(userID)
	require.NoError(t, err)

	carts.On("FindByUserID", ctx, userID).Return(c, nil)

	_, err = svc.UpdateItem(ctx, userID, uuid.New(), UpdateItemRequest{Quantity: 2})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	carts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	svc := NewCartService(carts, products)
	userID := uuid.New()
	shoe := newProduct(t, "Shoe", "10")
	hat := newProduct(t, "Hat", "5")

	c, err := cart.NewCart(userID)
	require.NoError(t, err)
	shoeLine, err := c.AddItem(shoe.ID, 1)
	require.NoError(t, err)
	shoeLineID := shoeLine.ID
	_, err = c.AddItem(hat.ID, 2)
	require.NoError(t, err)

	carts.On("FindByUserID", ctx, userID).Return(c, nil)
	carts.On("Save", ctx, c).Return(nil)
	products.On("FindByIDs", ctx, []uuid.UUID{hat.ID}).Return([]catalog.Product{*hat}, nil)

	resp, err := svc.RemoveItem(ctx, userID, shoeLineID)

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, hat.ID, resp.Items[0].ProductID)
	assert.Equal(t, "10.00", resp.Subtotal.StringFixed(2))
}

func TestCartService_Clear(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	svc := NewCartService(carts, new(MockProductRepository))
	userID := uuid.New()
	c, err := cart.NewCart(userID)
	require.NoError(t, err)
	_, err = c.AddItem(uuid.New(), 3)
	require.NoError(t, err)

	carts.On("FindByUserID", ctx, userID).Return(c, nil)
	carts.On("Save", ctx, c).Return(nil)

	require.NoError(t, svc.Clear(ctx, userID))
	assert.True(t, c.IsEmpty())
}
