package catalog

import (
	"context"
	"testing"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	product := newFakeProduct(t, newFakeCategory(t), newFakeBrand(t))

	t.Run("caller becomes the reviewer", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		products := new(MockProductRepository)
		svc := NewReviewService(reviews, products)

		products.On("FindByID", ctx, product.ID).Return(product, nil)
		reviews.On("Save", ctx, mock.AnythingOfType("*catalog.Review")).Return(nil)

		resp, err := svc.Create(ctx, userID, CreateReviewRequest{ProductID: product.ID, Rating: 4, Description: "Good"})

		require.NoError(t, err)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, 4, resp.Rating)
	})

	t.Run("rating out of range", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		products := new(MockProductRepository)
		svc := NewReviewService(reviews, products)

		products.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := svc.Create(ctx, userID, CreateReviewRequest{ProductID: product.ID, Rating: 6})

		require.Error(t, err)
		assert.Equal(t, "INVALID_RATING", err.(*shared.DomainError).Code)
		reviews.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		products := new(MockProductRepository)
		svc := NewReviewService(reviews, products)
		missing := uuid.New()

		products.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, userID, CreateReviewRequest{ProductID: missing, Rating: 3})

		require.Error(t, err)
		assert.Equal(t, "INVALID_PRODUCT", err.(*shared.DomainError).Code)
	})
}

func TestReviewService_ListByProduct(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	svc := NewReviewService(reviews, new(MockProductRepository))
	productID := uuid.New()
	review, err := catalog.NewReview(productID, uuid.New(), 5, "Great")
	require.NoError(t, err)

	byProduct := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters[catalog.FilterProductID] == productID
	})
	reviews.On("FindAll", ctx, byProduct).Return([]catalog.Review{*review}, nil)
	reviews.On("Count", ctx, byProduct).Return(int64(1), nil)

	items, total, err := svc.List(ctx, &productID, shared.Filter{Page: 1, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 5, items[0].Rating)
}

func TestReviewService_Patch(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	svc := NewReviewService(reviews, new(MockProductRepository))
	review, err := catalog.NewReview(uuid.New(), uuid.New(), 2, "Meh")
	require.NoError(t, err)
	rating := 3

	reviews.On("FindByID", ctx, review.ID).Return(review, nil)
	reviews.On("Save", ctx, review).Return(nil)

	resp, err := svc.Patch(ctx, review.ID, PatchReviewRequest{Rating: &rating})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Rating)
	assert.Equal(t, "Meh", resp.Description)
}
