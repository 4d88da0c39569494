package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorageService defines the object storage operations needed for product images.
// It is implemented by the infrastructure layer (S3 or any S3-compatible store).
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned PUT URL and its expiry
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL and its expiry
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	DeleteObject(ctx context.Context, storageKey string) error
}

// ErrStorageUnavailable is returned when presigning or deleting an object fails
var ErrStorageUnavailable = shared.NewDomainError("STORAGE_ERROR", "Object storage is unavailable")

// ImageServiceConfig holds configuration for the image service
type ImageServiceConfig struct {
	UploadURLExpiry     time.Duration
	DownloadURLExpiry   time.Duration
	MaxImagesPerProduct int
}

// DefaultImageServiceConfig returns the default configuration
func DefaultImageServiceConfig() ImageServiceConfig {
	return ImageServiceConfig{
		UploadURLExpiry:     15 * time.Minute,
		DownloadURLExpiry:   time.Hour,
		MaxImagesPerProduct: 20,
	}
}

// ImageService manages product images kept in object storage
type ImageService struct {
	imageRepo   catalog.ProductImageRepository
	productRepo catalog.ProductRepository
	storage     ObjectStorageService
	config      ImageServiceConfig
	logger      *zap.Logger
}

// NewImageService creates a new ImageService
func NewImageService(
	imageRepo catalog.ProductImageRepository,
	productRepo catalog.ProductRepository,
	storage ObjectStorageService,
	logger *zap.Logger,
) *ImageService {
	return &ImageService{
		imageRepo:   imageRepo,
		productRepo: productRepo,
		storage:     storage,
		config:      DefaultImageServiceConfig(),
		logger:      logger,
	}
}

// SetConfig sets the service configuration
func (s *ImageService) SetConfig(config ImageServiceConfig) {
	s.config = config
}

// InitiateUpload creates the image record and returns a presigned upload URL
func (s *ImageService) InitiateUpload(ctx context.Context, productID uuid.UUID, req InitiateImageUploadRequest) (*InitiateImageUploadResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	existing, err := s.imageRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= s.config.MaxImagesPerProduct {
		return nil, shared.NewDomainError("IMAGE_LIMIT_EXCEEDED",
			fmt.Sprintf("Maximum %d images per product allowed", s.config.MaxImagesPerProduct))
	}

	image, err := catalog.NewProductImage(productID, req.FileName, req.ContentType)
	if err != nil {
		return nil, err
	}
	if err := s.imageRepo.Save(ctx, image); err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, image.StorageKey, image.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		s.logger.Error("Failed to presign image upload",
			zap.String("storage_key", image.StorageKey),
			zap.Error(err))
		_ = s.imageRepo.Delete(ctx, image.ID)
		return nil, ErrStorageUnavailable
	}

	return &InitiateImageUploadResponse{
		ImageID:   image.ID,
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// ListByProduct returns the images of a product with presigned download URLs
func (s *ImageService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ImageResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	images, err := s.imageRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]ImageResponse, len(images))
	for i := range images {
		responses[i] = ToImageResponse(&images[i])
		url, _, err := s.storage.GenerateDownloadURL(ctx, images[i].StorageKey, s.config.DownloadURLExpiry)
		if err != nil {
			s.logger.Warn("Failed to presign image download",
				zap.String("storage_key", images[i].StorageKey),
				zap.Error(err))
			continue
		}
		responses[i].URL = url
	}
	return responses, nil
}

// Delete removes the stored object and then the record.
// A missing object does not prevent the record from being deleted.
func (s *ImageService) Delete(ctx context.Context, id uuid.UUID) error {
	image, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, image.StorageKey); err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to delete image object",
			zap.String("storage_key", image.StorageKey),
			zap.Error(err))
		return ErrStorageUnavailable
	}
	return s.imageRepo.Delete(ctx, id)
}
