package persistence

import (
	"context"
	"testing"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with every table migrated.
// One connection keeps all queries on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.ProfileModel{},
		&models.BrandModel{},
		&models.CategoryModel{},
		&models.ProductModel{},
		&models.ProductImageModel{},
		&models.ReviewModel{},
		&models.CartModel{},
		&models.CartItemModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.ShippingAddressModel{},
		&models.PaymentModel{},
		&models.TransactionModel{},
		&models.ShippingMethodModel{},
		&models.DeliveryModel{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, username+"@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(context.Background(), user))
	return user
}

type catalogFixture struct {
	phones   *catalog.Category
	laptops  *catalog.Category
	acme     *catalog.Brand
	globex   *catalog.Brand
	products map[string]*catalog.Product
}

// seedCatalog creates two categories, two brands and three products
func seedCatalog(t *testing.T, db *gorm.DB) catalogFixture {
	t.Helper()
	ctx := context.Background()

	phones, err := catalog.NewCategory("Phones", "")
	require.NoError(t, err)
	laptops, err := catalog.NewCategory("Laptops", "")
	require.NoError(t, err)
	acme, err := catalog.NewBrand("Acme", "")
	require.NoError(t, err)
	globex, err := catalog.NewBrand("Globex", "")
	require.NoError(t, err)

	categories := NewGormCategoryRepository(db)
	brands := NewGormBrandRepository(db)
	require.NoError(t, categories.Save(ctx, phones))
	require.NoError(t, categories.Save(ctx, laptops))
	require.NoError(t, brands.Save(ctx, acme))
	require.NoError(t, brands.Save(ctx, globex))

	f := catalogFixture{phones: phones, laptops: laptops, acme: acme, globex: globex, products: map[string]*catalog.Product{}}
	products := NewGormProductRepository(db)
	for _, row := range []struct {
		name     string
		price    string
		stock    int
		category *catalog.Category
		brand    *catalog.Brand
	}{
		{"Rocket Phone", "499.99", 10, phones, acme},
		{"Anvil Book", "1299.00", 3, laptops, acme},
		{"Globe Phone", "349.50", 0, phones, globex},
	} {
		p, err := catalog.NewProduct(catalog.ProductFields{
			Name:       row.name,
			Price:      decimal.RequireFromString(row.price),
			Stock:      row.stock,
			CategoryID: row.category.ID,
			BrandID:    row.brand.ID,
		})
		require.NoError(t, err)
		require.NoError(t, products.Save(ctx, p))
		f.products[row.name] = p
	}
	return f
}
