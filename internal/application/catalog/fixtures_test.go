package catalog

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var faker = gofakeit.New(42)

func shortName(s string) string {
	if len(s) > 15 {
		return s[:15]
	}
	return s
}

func newFakeBrand(t *testing.T) *catalog.Brand {
	t.Helper()
	brand, err := catalog.NewBrand(shortName(faker.CarMaker()), faker.Sentence(5))
	require.NoError(t, err)
	return brand
}

func newFakeCategory(t *testing.T) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory(shortName(faker.Word()), faker.Sentence(5))
	require.NoError(t, err)
	return category
}

func newFakeProduct(t *testing.T, category *catalog.Category, brand *catalog.Brand) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(catalog.ProductFields{
		Name:        shortName(faker.Word()),
		Description: faker.Sentence(8),
		Price:       decimal.NewFromFloat(faker.Price(1, 500)).Round(2),
		Stock:       faker.Number(1, 100),
		CategoryID:  category.ID,
		BrandID:     brand.ID,
	})
	require.NoError(t, err)
	return product
}
