package catalog

import (
	"fmt"
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxProductDescriptionLength = 1000

// maxPrice is the largest value a decimal(6,2) column holds
var maxPrice = decimal.RequireFromString("9999.99")

// Product is a sellable item with a price and on-hand stock
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  uuid.UUID
	BrandID     uuid.UUID
}

// ProductFields holds the mutable attributes of a product
type ProductFields struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  uuid.UUID
	BrandID     uuid.UUID
}

// NewProduct creates a new product
func NewProduct(fields ProductFields) (*Product, error) {
	fields.Name = strings.TrimSpace(fields.Name)
	if err := validateProductFields(fields); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
	}
	product.apply(fields)
	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update replaces all mutable attributes of the product
func (p *Product) Update(fields ProductFields) error {
	fields.Name = strings.TrimSpace(fields.Name)
	if err := validateProductFields(fields); err != nil {
		return err
	}

	p.apply(fields)
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// Fields returns the current mutable attributes, used as the base of partial updates
func (p *Product) Fields() ProductFields {
	return ProductFields{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
	}
}

// DecreaseStock removes quantity units from stock
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !p.IsInStock(quantity) {
		return shared.ErrInsufficientStock.WithMessage(
			fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", p.Name, quantity, p.Stock))
	}

	oldStock := p.Stock
	p.Stock -= quantity
	p.IncrementVersion()
	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock))
	return nil
}

// IncreaseStock returns quantity units to stock
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	oldStock := p.Stock
	p.Stock += quantity
	p.IncrementVersion()
	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock))
	return nil
}

// IsInStock reports whether at least quantity units are available
func (p *Product) IsInStock(quantity int) bool {
	return p.Stock >= quantity
}

func (p *Product) apply(fields ProductFields) {
	p.Name = fields.Name
	p.Description = fields.Description
	p.Price = fields.Price.Round(2)
	p.Stock = fields.Stock
	p.CategoryID = fields.CategoryID
	p.BrandID = fields.BrandID
}

func validateProductFields(fields ProductFields) error {
	if err := validateName("Product", fields.Name); err != nil {
		return err
	}
	if err := validateDescription("Product", fields.Description, maxProductDescriptionLength); err != nil {
		return err
	}
	if fields.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if fields.Price.GreaterThan(maxPrice) {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot exceed 9999.99")
	}
	if fields.Stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	if fields.CategoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	if fields.BrandID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRAND", "Brand is required")
	}
	return nil
}
