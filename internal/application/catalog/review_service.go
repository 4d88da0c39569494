package catalog

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReviewService handles product reviews
type ReviewService struct {
	reviewRepo  catalog.ReviewRepository
	productRepo catalog.ProductRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo catalog.ReviewRepository, productRepo catalog.ProductRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// Create records a review by userID
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}

	review, err := catalog.NewReview(req.ProductID, userID, req.Rating, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	resp := ToReviewResponse(review)
	return &resp, nil
}

// GetByID retrieves a review by ID
func (s *ReviewService) GetByID(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToReviewResponse(review)
	return &resp, nil
}

// List retrieves reviews, optionally for a single product
func (s *ReviewService) List(ctx context.Context, productID *uuid.UUID, filter shared.Filter) ([]ReviewResponse, int64, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	if productID != nil {
		filter.Filters[catalog.FilterProductID] = *productID
	}

	reviews, err := s.reviewRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reviewRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		items[i] = ToReviewResponse(&reviews[i])
	}
	return items, total, nil
}

// Update replaces the rating and description
func (s *ReviewService) Update(ctx context.Context, id uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	return s.Patch(ctx, id, PatchReviewRequest{Rating: &req.Rating, Description: &req.Description})
}

// Patch updates the fields that are set
func (s *ReviewService) Patch(ctx context.Context, id uuid.UUID, req PatchReviewRequest) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, description := review.Rating, review.Description
	if req.Rating != nil {
		rating = *req.Rating
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := review.Update(rating, description); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	resp := ToReviewResponse(review)
	return &resp, nil
}

// Delete deletes a review
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.reviewRepo.Delete(ctx, id)
}
