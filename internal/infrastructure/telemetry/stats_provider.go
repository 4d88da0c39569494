package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormShopStatsProvider queries the products and orders tables directly
type GormShopStatsProvider struct {
	db *gorm.DB
}

// NewGormShopStatsProvider creates a GormShopStatsProvider
func NewGormShopStatsProvider(db *gorm.DB) *GormShopStatsProvider {
	return &GormShopStatsProvider{db: db}
}

// CountLowStockProducts counts products whose stock is at or below threshold
func (p *GormShopStatsProvider) CountLowStockProducts(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("stock <= ?", threshold).
		Count(&count).Error
	return count, err
}

// CountOrdersByStatus counts orders grouped by status
func (p *GormShopStatsProvider) CountOrdersByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := p.db.WithContext(ctx).
		Table("orders").
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
