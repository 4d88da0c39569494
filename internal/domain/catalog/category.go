package catalog

import (
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
)

const maxCategoryDescriptionLength = 500

// Category is a flat product classification
type Category struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateName("Category", name); err != nil {
		return nil, err
	}
	if err := validateDescription("Category", description, maxCategoryDescriptionLength); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Update replaces the category's name and description
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateName("Category", name); err != nil {
		return err
	}
	if err := validateDescription("Category", description, maxCategoryDescriptionLength); err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	c.IncrementVersion()
	return nil
}

// Validation functions

func validateName(entity, name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", entity+" name cannot be empty")
	}
	if len([]rune(name)) > maxNameLength {
		return shared.NewDomainError("INVALID_NAME", entity+" name cannot exceed 15 characters")
	}
	return nil
}

func validateDescription(entity, description string, max int) error {
	if len([]rune(description)) > max {
		return shared.NewDomainError("INVALID_DESCRIPTION", entity+" description is too long")
	}
	return nil
}
