package catalog

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BrandRequest is the body of brand and category create/full-update requests
type BrandRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=15"`
	Description string `json:"description" binding:"max=500"`
}

// BrandPatchRequest is a partial brand or category update
type BrandPatchRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=15"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// CategoryRequest shares the brand request shape
type CategoryRequest = BrandRequest

// CategoryPatchRequest shares the brand patch shape
type CategoryPatchRequest = BrandPatchRequest

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse BrandResponse

// ToBrandResponse converts a domain Brand
func ToBrandResponse(b *catalog.Brand) BrandResponse {
	return BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToCategoryResponse converts a domain Category
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=15"`
	Description string          `json:"description" binding:"max=1000"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	Stock       int             `json:"stock" binding:"min=0"`
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
	BrandID     uuid.UUID       `json:"brand_id" binding:"required"`
}

// UpdateProductRequest is a full product update
type UpdateProductRequest = CreateProductRequest

// PatchProductRequest is a partial product update
type PatchProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=15"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price" swaggertype:"string"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	BrandID     *uuid.UUID       `json:"brand_id"`
}

func (r CreateProductRequest) fields() catalog.ProductFields {
	return catalog.ProductFields{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		CategoryID:  r.CategoryID,
		BrandID:     r.BrandID,
	}
}

func (r PatchProductRequest) applyTo(fields catalog.ProductFields) catalog.ProductFields {
	if r.Name != nil {
		fields.Name = *r.Name
	}
	if r.Description != nil {
		fields.Description = *r.Description
	}
	if r.Price != nil {
		fields.Price = *r.Price
	}
	if r.Stock != nil {
		fields.Stock = *r.Stock
	}
	if r.CategoryID != nil {
		fields.CategoryID = *r.CategoryID
	}
	if r.BrandID != nil {
		fields.BrandID = *r.BrandID
	}
	return fields
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	Stock       int             `json:"stock"`
	CategoryID  uuid.UUID       `json:"category_id"`
	BrandID     uuid.UUID       `json:"brand_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToProductResponse converts a domain Product
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Category string `form:"category"`
	Brand    string `form:"brand"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=name price stock created_at updated_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateReviewRequest represents a request to review a product
type CreateReviewRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	Rating      int       `json:"rating" binding:"required,min=1,max=5"`
	Description string    `json:"description" binding:"max=200"`
}

// UpdateReviewRequest is a full review update
type UpdateReviewRequest struct {
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Description string `json:"description" binding:"max=200"`
}

// PatchReviewRequest is a partial review update
type PatchReviewRequest struct {
	Rating      *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	UserID      uuid.UUID `json:"user_id"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToReviewResponse converts a domain Review
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		UserID:      r.UserID,
		Rating:      r.Rating,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// InitiateImageUploadRequest asks for a presigned upload URL for a product image
type InitiateImageUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// InitiateImageUploadResponse carries the presigned upload URL
type InitiateImageUploadResponse struct {
	ImageID   uuid.UUID `json:"image_id"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ImageResponse represents a product image in API responses
type ImageResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToImageResponse converts a domain ProductImage
func ToImageResponse(img *catalog.ProductImage) ImageResponse {
	return ImageResponse{
		ID:          img.ID,
		ProductID:   img.ProductID,
		FileName:    img.FileName,
		ContentType: img.ContentType,
		CreatedAt:   img.CreatedAt,
	}
}

// ProductSheetRow is one product line of an exported or imported spreadsheet
type ProductSheetRow struct {
	// Line is the 1-based spreadsheet row, set on import
	Line         int
	Name         string
	Description  string
	Price        string
	Stock        string
	CategoryName string
	BrandName    string
}

// ImportResult reports the outcome of a product import
type ImportResult struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Skipped int              `json:"skipped"`
	Errors  []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError explains why a row was skipped
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
