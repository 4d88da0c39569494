package catalog

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BrandService handles brand CRUD
type BrandService struct {
	brandRepo catalog.BrandRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brandRepo catalog.BrandRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo}
}

// Create creates a new brand
func (s *BrandService) Create(ctx context.Context, req BrandRequest) (*BrandResponse, error) {
	brand, err := catalog.NewBrand(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand)
	return &resp, nil
}

// GetByID retrieves a brand by ID
func (s *BrandService) GetByID(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBrandResponse(brand)
	return &resp, nil
}

// List retrieves a page of brands
func (s *BrandService) List(ctx context.Context, filter shared.Filter) ([]BrandResponse, int64, error) {
	brands, err := s.brandRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.brandRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]BrandResponse, len(brands))
	for i := range brands {
		items[i] = ToBrandResponse(&brands[i])
	}
	return items, total, nil
}

// Update replaces the name and description of a brand
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, req BrandRequest) (*BrandResponse, error) {
	return s.Patch(ctx, id, BrandPatchRequest{Name: &req.Name, Description: &req.Description})
}

// Patch updates the fields that are set
func (s *BrandService) Patch(ctx context.Context, id uuid.UUID, req BrandPatchRequest) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, description := brand.Name, brand.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := brand.Update(name, description); err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	resp := ToBrandResponse(brand)
	return &resp, nil
}

// Delete removes a brand and, through the foreign key, its products
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.brandRepo.Delete(ctx, id)
}
