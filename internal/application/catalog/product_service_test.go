package catalog

import (
	"context"
	"testing"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductService() (*ProductService, *MockProductRepository, *MockCategoryRepository, *MockBrandRepository) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	brands := new(MockBrandRepository)
	return NewProductService(products, categories, brands), products, categories, brands
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	category := newFakeCategory(t)
	brand := newFakeBrand(t)

	req := CreateProductRequest{
		Name:        "Trail Shoe",
		Description: "Lightweight running shoe",
		Price:       decimal.RequireFromString("79.90"),
		Stock:       12,
		CategoryID:  category.ID,
		BrandID:     brand.ID,
	}

	t.Run("success", func(t *testing.T) {
		svc, products, categories, brands := newProductService()
		categories.On("FindByID", ctx, category.ID).Return(category, nil)
		brands.On("FindByID", ctx, brand.ID).Return(brand, nil)
		products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "Trail Shoe", resp.Name)
		assert.Equal(t, "79.90", resp.Price.StringFixed(2))
		assert.Equal(t, 12, resp.Stock)
		products.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		svc, products, categories, _ := newProductService()
		categories.On("FindByID", ctx, category.ID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, req)

		require.Error(t, err)
		assert.Equal(t, "INVALID_CATEGORY", err.(*shared.DomainError).Code)
		products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown brand", func(t *testing.T) {
		svc, _, categories, brands := newProductService()
		categories.On("FindByID", ctx, category.ID).Return(category, nil)
		brands.On("FindByID", ctx, brand.ID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, req)

		require.Error(t, err)
		assert.Equal(t, "INVALID_BRAND", err.(*shared.DomainError).Code)
	})

	t.Run("negative price", func(t *testing.T) {
		svc, products, categories, brands := newProductService()
		categories.On("FindByID", ctx, category.ID).Return(category, nil)
		brands.On("FindByID", ctx, brand.ID).Return(brand, nil)

		bad := req
		bad.Price = decimal.NewFromInt(-1)
		_, err := svc.Create(ctx, bad)

		require.Error(t, err)
		assert.Equal(t, "INVALID_PRICE", err.(*shared.DomainError).Code)
		products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	svc, products, _, _ := newProductService()
	product := newFakeProduct(t, newFakeCategory(t), newFakeBrand(t))

	matchFilter := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 &&
			f.PageSize == 5 &&
			f.Search == "shoe" &&
			f.StringFilter(catalog.FilterCategoryName) == "Footwear" &&
			f.StringFilter(catalog.FilterBrandName) == "Acme" &&
			f.OrderBy == "price" && f.OrderDir == "asc"
	})
	products.On("FindAll", ctx, matchFilter).Return([]catalog.Product{*product}, nil)
	products.On("Count", ctx, matchFilter).Return(int64(6), nil)

	items, total, err := svc.List(ctx, ProductListFilter{
		Category: "Footwear",
		Brand:    "Acme",
		Search:   "shoe",
		Page:     2,
		PageSize: 5,
		OrderBy:  "price",
		OrderDir: "asc",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ID)
}

func TestProductService_Patch(t *testing.T) {
	ctx := context.Background()
	category := newFakeCategory(t)
	brand := newFakeBrand(t)

	t.Run("price only keeps references unchecked", func(t *testing.T) {
		svc, products, categories, _ := newProductService()
		product := newFakeProduct(t, category, brand)
		price := decimal.RequireFromString("10.50")

		products.On("FindByID", ctx, product.ID).Return(product, nil)
		products.On("Save", ctx, product).Return(nil)

		resp, err := svc.Patch(ctx, product.ID, PatchProductRequest{Price: &price})

		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(price))
		assert.Equal(t, 2, resp.Version)
		categories.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("moving to a missing brand", func(t *testing.T) {
		svc, products, categories, brands := newProductService()
		product := newFakeProduct(t, category, brand)
		otherBrand := uuid.New()

		products.On("FindByID", ctx, product.ID).Return(product, nil)
		categories.On("FindByID", ctx, category.ID).Return(category, nil)
		brands.On("FindByID", ctx, otherBrand).Return(nil, shared.ErrNotFound)

		_, err := svc.Patch(ctx, product.ID, PatchProductRequest{BrandID: &otherBrand})

		require.Error(t, err)
		assert.Equal(t, "INVALID_BRAND", err.(*shared.DomainError).Code)
		products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, products, _, _ := newProductService()
	id := uuid.New()
	products.On("Delete", ctx, id).Return(shared.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, id), shared.ErrNotFound)
}
