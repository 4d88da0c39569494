package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newImageService() (*ImageService, *MockProductImageRepository, *MockProductRepository, *MockObjectStorage) {
	images := new(MockProductImageRepository)
	products := new(MockProductRepository)
	storage := new(MockObjectStorage)
	return NewImageService(images, products, storage, zap.NewNop()), images, products, storage
}

func TestImageService_InitiateUpload(t *testing.T) {
	ctx := context.Background()
	product := newFakeProduct(t, newFakeCategory(t), newFakeBrand(t))
	expires := time.Now().Add(15 * time.Minute)

	t.Run("success", func(t *testing.T) {
		svc, images, products, storage := newImageService()
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		images.On("FindByProduct", ctx, product.ID).Return([]catalog.ProductImage{}, nil)
		images.On("Save", ctx, mock.AnythingOfType("*catalog.ProductImage")).Return(nil)
		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/png", 15*time.Minute).
			Return("https://bucket.example.com/upload", expires, nil)

		resp, err := svc.InitiateUpload(ctx, product.ID, InitiateImageUploadRequest{FileName: "front.png", ContentType: "image/png"})

		require.NoError(t, err)
		assert.Equal(t, "https://bucket.example.com/upload", resp.UploadURL)
		assert.Equal(t, expires, resp.ExpiresAt)
		assert.NotEqual(t, uuid.Nil, resp.ImageID)
	})

	t.Run("non image content type", func(t *testing.T) {
		svc, images, products, _ := newImageService()
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		images.On("FindByProduct", ctx, product.ID).Return([]catalog.ProductImage{}, nil)

		_, err := svc.InitiateUpload(ctx, product.ID, InitiateImageUploadRequest{FileName: "run.sh", ContentType: "text/x-sh"})

		require.Error(t, err)
		assert.Equal(t, "INVALID_CONTENT_TYPE", err.(*shared.DomainError).Code)
		images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("presign failure removes the record", func(t *testing.T) {
		svc, images, products, storage := newImageService()
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		images.On("FindByProduct", ctx, product.ID).Return([]catalog.ProductImage{}, nil)
		images.On("Save", ctx, mock.AnythingOfType("*catalog.ProductImage")).Return(nil)
		images.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)
		storage.On("GenerateUploadURL", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("", time.Time{}, errors.New("no credentials"))

		_, err := svc.InitiateUpload(ctx, product.ID, InitiateImageUploadRequest{FileName: "a.jpg", ContentType: "image/jpeg"})

		assert.ErrorIs(t, err, ErrStorageUnavailable)
		images.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("uuid.UUID"))
	})

	t.Run("limit reached", func(t *testing.T) {
		svc, images, products, _ := newImageService()
		svc.SetConfig(ImageServiceConfig{MaxImagesPerProduct: 1, UploadURLExpiry: time.Minute})
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		images.On("FindByProduct", ctx, product.ID).Return([]catalog.ProductImage{{ProductID: product.ID}}, nil)

		_, err := svc.InitiateUpload(ctx, product.ID, InitiateImageUploadRequest{FileName: "a.jpg", ContentType: "image/jpeg"})

		require.Error(t, err)
		assert.Equal(t, "IMAGE_LIMIT_EXCEEDED", err.(*shared.DomainError).Code)
	})
}

func TestImageService_ListByProduct(t *testing.T) {
	ctx := context.Background()
	svc, images, products, storage := newImageService()
	product := newFakeProduct(t, newFakeCategory(t), newFakeBrand(t))
	first, err := catalog.NewProductImage(product.ID, "a.png", "image/png")
	require.NoError(t, err)
	second, err := catalog.NewProductImage(product.ID, "b.png", "image/png")
	require.NoError(t, err)

	products.On("FindByID", ctx, product.ID).Return(product, nil)
	images.On("FindByProduct", ctx, product.ID).Return([]catalog.ProductImage{*first, *second}, nil)
	storage.On("GenerateDownloadURL", ctx, first.StorageKey, time.Hour).Return("https://cdn/a.png", time.Now(), nil)
	storage.On("GenerateDownloadURL", ctx, second.StorageKey, time.Hour).Return("", time.Time{}, errors.New("timeout"))

	resp, err := svc.ListByProduct(ctx, product.ID)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "https://cdn/a.png", resp[0].URL)
	assert.Empty(t, resp[1].URL)
}

func TestImageService_Delete(t *testing.T) {
	ctx := context.Background()
	image, err := catalog.NewProductImage(uuid.New(), "a.png", "image/png")
	require.NoError(t, err)

	t.Run("deletes object then record", func(t *testing.T) {
		svc, images, _, storage := newImageService()
		images.On("FindByID", ctx, image.ID).Return(image, nil)
		storage.On("DeleteObject", ctx, image.StorageKey).Return(nil)
		images.On("Delete", ctx, image.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, image.ID))
		images.AssertExpectations(t)
	})

	t.Run("storage failure keeps the record", func(t *testing.T) {
		svc, images, _, storage := newImageService()
		images.On("FindByID", ctx, image.ID).Return(image, nil)
		storage.On("DeleteObject", ctx, image.StorageKey).Return(errors.New("access denied"))

		assert.ErrorIs(t, svc.Delete(ctx, image.ID), ErrStorageUnavailable)
		images.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
