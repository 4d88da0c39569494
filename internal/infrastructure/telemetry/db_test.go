package telemetry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func TestDetectOperation(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"SELECT * FROM products", "SELECT"},
		{"  insert into orders values (1)", "INSERT"},
		{"UPDATE carts SET updated_at = now()", "UPDATE"},
		{"delete from cart_items", "DELETE"},
		{"WITH totals AS (SELECT 1) SELECT * FROM totals", "OTHER"},
		{"", "OTHER"},
	}
	for _, tt := range tests {
		t.Run(tt.want+"_"+tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectOperation(tt.sql))
		})
	}
}

func TestDBConfig_Defaults(t *testing.T) {
	cfg := DBConfig{}.withDefaults()
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThreshold)
	assert.Equal(t, 15*time.Second, cfg.PoolStatsInterval)
	assert.Equal(t, "postgresql", cfg.DBSystem)

	custom := DBConfig{SlowQueryThreshold: time.Second, DBSystem: "sqlite"}.withDefaults()
	assert.Equal(t, time.Second, custom.SlowQueryThreshold)
	assert.Equal(t, "sqlite", custom.DBSystem)
}

func TestInstrumentMetrics_RecordsQueries(t *testing.T) {
	db := openTestDB(t)
	mp, reader := newManualMeterProvider(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m, err := InstrumentMetrics(ctx, db, mp, DBConfig{MetricsEnabled: true, PoolStatsInterval: time.Hour}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, m)
	defer m.Stop()

	require.NoError(t, db.Create(&widget{Name: "anvil"}).Error)
	var got widget
	require.NoError(t, db.First(&got).Error)
	require.NoError(t, db.Model(&got).Update("name", "rocket").Error)
	require.NoError(t, db.Delete(&got).Error)

	rm := collect(t, reader)
	assert.Equal(t, int64(1), intValue(t, rm, "db_query_total", AttrDBOperation.String("INSERT")))
	assert.Equal(t, int64(1), intValue(t, rm, "db_query_total", AttrDBOperation.String("SELECT")))
	assert.Equal(t, int64(1), intValue(t, rm, "db_query_total", AttrDBOperation.String("UPDATE")))
	assert.Equal(t, int64(1), intValue(t, rm, "db_query_total", AttrDBOperation.String("DELETE")))
	assert.Equal(t, uint64(4), histogramCount(t, rm, "db_query_duration_seconds"))
}

func TestInstrumentMetrics_Disabled(t *testing.T) {
	db := openTestDB(t)
	mp, _ := newManualMeterProvider(t)

	m, err := InstrumentMetrics(context.Background(), db, mp, DBConfig{MetricsEnabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, m)

	disabled, err := NewMeterProvider(context.Background(), MetricsConfig{}, zap.NewNop())
	require.NoError(t, err)
	m, err = InstrumentMetrics(context.Background(), db, disabled, DBConfig{MetricsEnabled: true}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestDBMetrics_SlowQueriesAndPool(t *testing.T) {
	mp, reader := newManualMeterProvider(t)
	m, err := NewDBMetrics(mp, DBConfig{SlowQueryThreshold: 10 * time.Millisecond}, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordQuery(ctx, "SELECT", "products", 50*time.Millisecond)
	m.RecordQuery(ctx, "SELECT", "", 50*time.Millisecond)
	m.RecordQuery(ctx, "", "orders", time.Millisecond)
	m.RecordPoolStats(ctx, sql.DBStats{MaxOpenConnections: 25, Idle: 3, InUse: 2, OpenConnections: 5})

	rm := collect(t, reader)
	assert.Equal(t, int64(1), intValue(t, rm, "db_slow_query_total", AttrDBTable.String("products")))
	assert.Equal(t, int64(1), intValue(t, rm, "db_slow_query_total", AttrDBTable.String("unknown")))
	assert.Equal(t, int64(1), intValue(t, rm, "db_query_total", AttrDBOperation.String("OTHER")))
	assert.Equal(t, int64(25), intValue(t, rm, "db_pool_connections_max"))
	assert.Equal(t, int64(3), intValue(t, rm, "db_pool_connections", AttrDBState.String("idle")))
	assert.Equal(t, int64(2), intValue(t, rm, "db_pool_connections", AttrDBState.String("in_use")))
}

func TestInstrumentTracing(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, InstrumentTracing(db, DBConfig{TracingEnabled: false}, zap.NewNop()))

	require.NoError(t, InstrumentTracing(db, DBConfig{TracingEnabled: true, DBSystem: "sqlite"}, zap.NewNop()))
	require.NoError(t, db.Create(&widget{Name: "traced"}).Error)

	var count int64
	require.NoError(t, db.Model(&widget{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
