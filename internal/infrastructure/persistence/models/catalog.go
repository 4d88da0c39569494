package models

import (
	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BrandModel is the persistence model for the Brand aggregate
type BrandModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(15);not null;index"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return "brands"
}

// ToDomain converts the model to a domain Brand
func (m *BrandModel) ToDomain() *catalog.Brand {
	return &catalog.Brand{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
	}
}

// BrandModelFromDomain creates a model from a domain Brand
func BrandModelFromDomain(b *catalog.Brand) *BrandModel {
	m := &BrandModel{Name: b.Name, Description: b.Description}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	return m
}

// CategoryModel is the persistence model for the Category aggregate
type CategoryModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(15);not null;index"`
	Description string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
	}
}

// CategoryModelFromDomain creates a model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{Name: c.Name, Description: c.Description}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(15);not null;index"`
	Description string          `gorm:"type:varchar(1000)"`
	Price       decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	BrandID     uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		Stock:             m.Stock,
		CategoryID:        m.CategoryID,
		BrandID:           m.BrandID,
	}
}

// ProductModelFromDomain creates a model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// ProductImageModel is the persistence model for a ProductImage
type ProductImageModel struct {
	BaseModel
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	StorageKey  string    `gorm:"type:varchar(512);not null;uniqueIndex"`
	ContentType string    `gorm:"type:varchar(100);not null"`
	FileName    string    `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (ProductImageModel) TableName() string {
	return "product_images"
}

// ToDomain converts the model to a domain ProductImage
func (m *ProductImageModel) ToDomain() *catalog.ProductImage {
	return &catalog.ProductImage{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProductID:   m.ProductID,
		StorageKey:  m.StorageKey,
		ContentType: m.ContentType,
		FileName:    m.FileName,
	}
}

// ProductImageModelFromDomain creates a model from a domain ProductImage
func ProductImageModelFromDomain(i *catalog.ProductImage) *ProductImageModel {
	m := &ProductImageModel{
		ProductID:   i.ProductID,
		StorageKey:  i.StorageKey,
		ContentType: i.ContentType,
		FileName:    i.FileName,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// ReviewModel is the persistence model for the Review aggregate
type ReviewModel struct {
	AggregateModel
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating      int       `gorm:"not null"`
	Description string    `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the model to a domain Review
func (m *ReviewModel) ToDomain() *catalog.Review {
	return &catalog.Review{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ProductID:         m.ProductID,
		UserID:            m.UserID,
		Rating:            m.Rating,
		Description:       m.Description,
	}
}

// ReviewModelFromDomain creates a model from a domain Review
func ReviewModelFromDomain(r *catalog.Review) *ReviewModel {
	m := &ReviewModel{
		ProductID:   r.ProductID,
		UserID:      r.UserID,
		Rating:      r.Rating,
		Description: r.Description,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}
