package catalog

import (
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
)

const (
	maxNameLength             = 15
	maxBrandDescriptionLength = 500
)

// Brand groups products by manufacturer
type Brand struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
}

// NewBrand creates a new brand
func NewBrand(name, description string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if err := validateName("Brand", name); err != nil {
		return nil, err
	}
	if err := validateDescription("Brand", description, maxBrandDescriptionLength); err != nil {
		return nil, err
	}

	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Update replaces the brand's name and description
func (b *Brand) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateName("Brand", name); err != nil {
		return err
	}
	if err := validateDescription("Brand", description, maxBrandDescriptionLength); err != nil {
		return err
	}

	b.Name = name
	b.Description = description
	b.IncrementVersion()
	return nil
}
