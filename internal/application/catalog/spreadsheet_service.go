package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const exportPageSize = 500

// ProductSheetCodec encodes and decodes product spreadsheets
type ProductSheetCodec interface {
	WriteProducts(w io.Writer, rows []ProductSheetRow) error
	ReadProducts(r io.ReaderAt, size int64) ([]ProductSheetRow, error)
}

// SpreadsheetService exports the catalog to a spreadsheet and imports products from one
type SpreadsheetService struct {
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	brandRepo      catalog.BrandRepository
	codec          ProductSheetCodec
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSpreadsheetService creates a new SpreadsheetService
func NewSpreadsheetService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
	codec ProductSheetCodec,
	logger *zap.Logger,
) *SpreadsheetService {
	return &SpreadsheetService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		codec:        codec,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *SpreadsheetService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Export writes every product to w
func (s *SpreadsheetService) Export(ctx context.Context, w io.Writer) error {
	categories, err := s.categoryNames(ctx)
	if err != nil {
		return err
	}
	brands, err := s.brandNames(ctx)
	if err != nil {
		return err
	}

	var rows []ProductSheetRow
	filter := shared.DefaultFilter()
	filter.PageSize = exportPageSize
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	for {
		products, err := s.productRepo.FindAll(ctx, filter)
		if err != nil {
			return err
		}
		for _, p := range products {
			rows = append(rows, ProductSheetRow{
				Name:         p.Name,
				Description:  p.Description,
				Price:        p.Price.StringFixed(2),
				Stock:        strconv.Itoa(p.Stock),
				CategoryName: categories[p.CategoryID],
				BrandName:    brands[p.BrandID],
			})
		}
		if len(products) < filter.PageSize {
			break
		}
		filter.Page++
	}

	if err := s.codec.WriteProducts(w, rows); err != nil {
		return fmt.Errorf("write product sheet: %w", err)
	}
	s.logger.Info("Products exported", zap.Int("rows", len(rows)))
	return nil
}

// Import creates or updates products from a spreadsheet.
// A product with the same name is updated; rows that fail validation are skipped.
func (s *SpreadsheetService) Import(ctx context.Context, r io.ReaderAt, size int64) (*ImportResult, error) {
	rows, err := s.codec.ReadProducts(r, size)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", "Could not read spreadsheet: "+err.Error())
	}

	result := &ImportResult{}
	categoryIDs := make(map[string]uuid.UUID)
	brandIDs := make(map[string]uuid.UUID)

	for _, row := range rows {
		created, err := s.importRow(ctx, row, categoryIDs, brandIDs)
		if err != nil {
			var domainErr *shared.DomainError
			if !errors.As(err, &domainErr) {
				return nil, err
			}
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{Row: row.Line, Message: domainErr.Message})
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	s.logger.Info("Products imported",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *SpreadsheetService) importRow(ctx context.Context, row ProductSheetRow, categoryIDs, brandIDs map[string]uuid.UUID) (bool, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(row.Price))
	if err != nil {
		return false, shared.NewDomainError("INVALID_PRICE", fmt.Sprintf("Invalid price %q", row.Price))
	}
	stock, err := strconv.Atoi(strings.TrimSpace(row.Stock))
	if err != nil {
		return false, shared.NewDomainError("INVALID_STOCK", fmt.Sprintf("Invalid stock %q", row.Stock))
	}

	categoryID, err := lookupID(ctx, categoryIDs, row.CategoryName, func(ctx context.Context, name string) (uuid.UUID, error) {
		c, err := s.categoryRepo.FindByName(ctx, name)
		if err != nil {
			return uuid.Nil, err
		}
		return c.ID, nil
	})
	if err != nil {
		return false, referenceError(err, "Category", row.CategoryName)
	}
	brandID, err := lookupID(ctx, brandIDs, row.BrandName, func(ctx context.Context, name string) (uuid.UUID, error) {
		b, err := s.brandRepo.FindByName(ctx, name)
		if err != nil {
			return uuid.Nil, err
		}
		return b.ID, nil
	})
	if err != nil {
		return false, referenceError(err, "Brand", row.BrandName)
	}

	fields := catalog.ProductFields{
		Name:        row.Name,
		Description: row.Description,
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
		BrandID:     brandID,
	}

	existing, err := s.productRepo.FindByName(ctx, strings.TrimSpace(row.Name))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return false, err
	}

	var product *catalog.Product
	created := existing == nil
	if created {
		product, err = catalog.NewProduct(fields)
	} else {
		product = existing
		err = product.Update(fields)
	}
	if err != nil {
		return false, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return false, err
	}
	_ = shared.PublishAndClear(ctx, s.eventPublisher, product)
	return created, nil
}

func lookupID(ctx context.Context, cache map[string]uuid.UUID, name string, find func(context.Context, string) (uuid.UUID, error)) (uuid.UUID, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return uuid.Nil, shared.ErrNotFound
	}
	if id, ok := cache[key]; ok {
		return id, nil
	}
	id, err := find(ctx, strings.TrimSpace(name))
	if err != nil {
		return uuid.Nil, err
	}
	cache[key] = id
	return id, nil
}

func referenceError(err error, entity, name string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("INVALID_"+strings.ToUpper(entity), fmt.Sprintf("%s %q not found", entity, name))
	}
	return err
}

func (s *SpreadsheetService) categoryNames(ctx context.Context) (map[uuid.UUID]string, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = exportPageSize
	names := make(map[uuid.UUID]string)
	for {
		categories, err := s.categoryRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, c := range categories {
			names[c.ID] = c.Name
		}
		if len(categories) < filter.PageSize {
			return names, nil
		}
		filter.Page++
	}
}

func (s *SpreadsheetService) brandNames(ctx context.Context) (map[uuid.UUID]string, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = exportPageSize
	names := make(map[uuid.UUID]string)
	for {
		brands, err := s.brandRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, b := range brands {
			names[b.ID] = b.Name
		}
		if len(brands) < filter.PageSize {
			return names, nil
		}
		filter.Page++
	}
}
