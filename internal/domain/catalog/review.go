package catalog

import (
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	MinRating                  = 1
	MaxRating                  = 5
	maxReviewDescriptionLength = 200
)

// Review is a customer's rating of a product
type Review struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID
	UserID      uuid.UUID
	Rating      int
	Description string
}

// NewReview creates a new review written by userID
func NewReview(productID, userID uuid.UUID, rating int, description string) (*Review, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	if err := validateReview(rating, description); err != nil {
		return nil, err
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		UserID:            userID,
		Rating:            rating,
		Description:       description,
	}, nil
}

// Update changes the rating and text of the review
func (r *Review) Update(rating int, description string) error {
	if err := validateReview(rating, description); err != nil {
		return err
	}
	r.Rating = rating
	r.Description = description
	r.IncrementVersion()
	return nil
}

func validateReview(rating int, description string) error {
	if rating < MinRating || rating > MaxRating {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return validateDescription("Review", description, maxReviewDescriptionLength)
}
