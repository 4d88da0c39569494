package catalog

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var (
	errCategoryNotFound = shared.NewDomainError("INVALID_CATEGORY", "Category not found")
	errBrandNotFound    = shared.NewDomainError("INVALID_BRAND", "Brand not found")
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	brandRepo      catalog.BrandRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product under an existing category and brand
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	fields := req.fields()
	if err := s.checkReferences(ctx, fields); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(fields)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	_ = shared.PublishAndClear(ctx, s.eventPublisher, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves products filtered by category name, brand name and a name search
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Category != "" {
		domainFilter.Filters[catalog.FilterCategoryName] = filter.Category
	}
	if filter.Brand != "" {
		domainFilter.Filters[catalog.FilterBrandName] = filter.Brand
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update replaces all product fields
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	return s.update(ctx, id, func(catalog.ProductFields) catalog.ProductFields {
		return req.fields()
	})
}

// Patch updates only the fields that are set
func (s *ProductService) Patch(ctx context.Context, id uuid.UUID, req PatchProductRequest) (*ProductResponse, error) {
	return s.update(ctx, id, req.applyTo)
}

func (s *ProductService) update(ctx context.Context, id uuid.UUID, change func(catalog.ProductFields) catalog.ProductFields) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current := product.Fields()
	fields := change(current)
	if fields.CategoryID != current.CategoryID || fields.BrandID != current.BrandID {
		if err := s.checkReferences(ctx, fields); err != nil {
			return nil, err
		}
	}

	if err := product.Update(fields); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	_ = shared.PublishAndClear(ctx, s.eventPublisher, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) checkReferences(ctx context.Context, fields catalog.ProductFields) error {
	if fields.CategoryID != uuid.Nil {
		if _, err := s.categoryRepo.FindByID(ctx, fields.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errCategoryNotFound
			}
			return err
		}
	}
	if fields.BrandID != uuid.Nil {
		if _, err := s.brandRepo.FindByID(ctx, fields.BrandID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errBrandNotFound
			}
			return err
		}
	}
	return nil
}
