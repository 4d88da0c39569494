package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// catalog names are capped at 15 characters
const maxNameLength = 15

type counts struct {
	Brands     int
	Categories int
	Products   int
}

type adminAccount struct {
	Username string
	Email    string
	Password string
}

type seeder struct {
	brands     *catalogapp.BrandService
	categories *catalogapp.CategoryService
	products   *catalogapp.ProductService
	users      identity.UserRepository
	faker      *gofakeit.Faker
	log        *zap.Logger
}

func trimName(s string) string {
	if len(s) > maxNameLength {
		s = s[:maxNameLength]
	}
	return strings.TrimSpace(s)
}

// uniqueName draws names until one is unused; after a few misses it appends
// the attempt number so the loop always ends
func uniqueName(used map[string]bool, draw func() string) string {
	for attempt := 0; ; attempt++ {
		name := trimName(draw())
		if attempt >= 5 {
			suffix := fmt.Sprintf("-%d", attempt)
			name = trimName(name[:min(len(name), maxNameLength-len(suffix))] + suffix)
		}
		if name != "" && !used[name] {
			used[name] = true
			return name
		}
	}
}

// admin creates the admin account unless the username is taken
func (s *seeder) admin(ctx context.Context, acc adminAccount) error {
	if acc.Username == "" {
		return nil
	}
	exists, err := s.users.ExistsByUsername(ctx, acc.Username)
	if err != nil {
		return err
	}
	if exists {
		s.log.Info("Admin user already exists", zap.String("username", acc.Username))
		return nil
	}
	user, err := identity.NewAdminUser(acc.Username, acc.Email, acc.Password)
	if err != nil {
		return err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	s.log.Info("Admin user created", zap.String("username", acc.Username))
	return nil
}

// catalog fills brands, categories and products and returns the products created
func (s *seeder) catalog(ctx context.Context, n counts) (int, error) {
	if n.Products > 0 && (n.Brands < 1 || n.Categories < 1) {
		return 0, errors.New("products need at least one brand and one category")
	}

	used := make(map[string]bool)
	brandIDs := make([]uuid.UUID, 0, n.Brands)
	for range n.Brands {
		b, err := s.brands.Create(ctx, catalogapp.BrandRequest{
			Name:        uniqueName(used, s.faker.Company),
			Description: s.faker.Sentence(6),
		})
		if errors.Is(err, shared.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("seed brand: %w", err)
		}
		brandIDs = append(brandIDs, b.ID)
	}

	categoryIDs := make([]uuid.UUID, 0, n.Categories)
	for range n.Categories {
		c, err := s.categories.Create(ctx, catalogapp.CategoryRequest{
			Name:        uniqueName(used, s.faker.ProductCategory),
			Description: s.faker.Sentence(6),
		})
		if errors.Is(err, shared.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("seed category: %w", err)
		}
		categoryIDs = append(categoryIDs, c.ID)
	}
	if n.Products > 0 && (len(brandIDs) == 0 || len(categoryIDs) == 0) {
		return 0, errors.New("every brand or category name already exists")
	}

	created := 0
	for range n.Products {
		_, err := s.products.Create(ctx, catalogapp.CreateProductRequest{
			Name:        trimName(s.faker.ProductName()),
			Description: s.faker.ProductDescription(),
			Price:       decimal.NewFromFloat(s.faker.Price(1, 500)).Round(2),
			Stock:       s.faker.Number(0, 200),
			CategoryID:  categoryIDs[s.faker.Number(0, len(categoryIDs)-1)],
			BrandID:     brandIDs[s.faker.Number(0, len(brandIDs)-1)],
		})
		if err != nil {
			return created, fmt.Errorf("seed product: %w", err)
		}
		created++
	}

	s.log.Info("Catalog seeded",
		zap.Int("brands", len(brandIDs)),
		zap.Int("categories", len(categoryIDs)),
		zap.Int("products", created),
	)
	return created, nil
}
