// Command seed fills a development database with an admin account and a
// generated catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"github.com/ecommerce/backend/internal/infrastructure/persistence"
)

func main() {
	var (
		n        counts
		admin    adminAccount
		seed     uint64
		logLevel string
	)
	flag.IntVar(&n.Brands, "brands", 5, "Brands to create")
	flag.IntVar(&n.Categories, "categories", 5, "Categories to create")
	flag.IntVar(&n.Products, "products", 50, "Products to create")
	flag.StringVar(&admin.Username, "admin", "admin", "Admin username; empty skips the account")
	flag.StringVar(&admin.Email, "admin-email", "admin@example.com", "Admin email")
	flag.Uint64Var(&seed, "seed", 0, "Random seed; 0 picks one")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()
	admin.Password = os.Getenv("SHOP_SEED_ADMIN_PASSWORD")

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	if admin.Username != "" && admin.Password == "" {
		log.Fatal("SHOP_SEED_ADMIN_PASSWORD must be set to create the admin account")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel)))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	products := persistence.NewGormProductRepository(db.DB)
	categories := persistence.NewGormCategoryRepository(db.DB)
	brands := persistence.NewGormBrandRepository(db.DB)
	s := &seeder{
		brands:     catalogapp.NewBrandService(brands),
		categories: catalogapp.NewCategoryService(categories),
		products:   catalogapp.NewProductService(products, categories, brands),
		users:      persistence.NewGormUserRepository(db.DB),
		faker:      gofakeit.New(seed),
		log:        log,
	}

	ctx := context.Background()
	if err := s.admin(ctx, admin); err != nil {
		log.Fatal("Failed to create admin user", zap.Error(err))
	}
	if _, err := s.catalog(ctx, n); err != nil {
		log.Fatal("Failed to seed catalog", zap.Error(err))
	}
}
