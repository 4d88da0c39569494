package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned by NewBusinessMetrics without a meter
var ErrMeterNil = errors.New("business metrics: meter cannot be nil")

const (
	defaultCollectInterval   = 5 * time.Minute
	defaultLowStockThreshold = 5
)

// ShopStatsProvider answers the periodic gauge queries
type ShopStatsProvider interface {
	CountLowStockProducts(ctx context.Context, threshold int) (int64, error)
	CountOrdersByStatus(ctx context.Context) (map[string]int64, error)
}

// BusinessMetricsConfig configures NewBusinessMetrics
type BusinessMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	StatsProvider     ShopStatsProvider
	LowStockThreshold int
}

// BusinessMetrics records orders, payments, deliveries and sign-ups
type BusinessMetrics struct {
	ordersPlaced       *Counter
	orderRevenueCents  *Counter
	orderItems         *Histogram
	orderTransitions   *Counter
	ordersCancelled    *Counter
	payments           *Counter
	paymentAmountCents *Counter
	deliveries         *Counter
	usersRegistered    *Counter
	lowStockProducts   *Gauge
	ordersByStatus     *Gauge

	logger            *zap.Logger
	provider          ShopStatsProvider
	lowStockThreshold int
	stopCh            chan struct{}
	stopOnce          sync.Once
	startOnce         sync.Once
	wg                sync.WaitGroup
}

// NewBusinessMetrics creates the shop's business instruments
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := cfg.LowStockThreshold
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}

	bm := &BusinessMetrics{
		logger:            logger,
		provider:          cfg.StatsProvider,
		lowStockThreshold: threshold,
		stopCh:            make(chan struct{}),
	}

	m := cfg.Meter
	counters := []struct {
		dst              **Counter
		name, desc, unit string
	}{
		{&bm.ordersPlaced, "shop_orders_placed_total", "Orders placed at checkout", "{orders}"},
		{&bm.orderRevenueCents, "shop_order_revenue_cents_total", "Order totals in cents", "{cents}"},
		{&bm.orderTransitions, "shop_order_status_transitions_total", "Order status changes", "{transitions}"},
		{&bm.ordersCancelled, "shop_orders_cancelled_total", "Orders cancelled", "{orders}"},
		{&bm.payments, "shop_payments_total", "Payment attempts by method and outcome", "{payments}"},
		{&bm.paymentAmountCents, "shop_payment_amount_cents_total", "Captured payment amounts in cents", "{cents}"},
		{&bm.deliveries, "shop_deliveries_scheduled_total", "Shipping labels purchased by carrier", "{deliveries}"},
		{&bm.usersRegistered, "shop_users_registered_total", "Accounts registered", "{users}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(m, c.name, c.desc, c.unit)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	var err error
	if bm.orderItems, err = NewHistogram(m, HistogramOpts{
		Name:        "shop_order_items",
		Description: "Distinct products per order",
		Unit:        "{items}",
		Boundaries:  []float64{1, 2, 3, 5, 10, 20, 50},
	}); err != nil {
		return nil, err
	}
	if bm.lowStockProducts, err = NewGauge(m, "shop_low_stock_products", "Products at or below the low-stock threshold", "{products}"); err != nil {
		return nil, err
	}
	if bm.ordersByStatus, err = NewGauge(m, "shop_orders_by_status", "Orders currently in each status", "{orders}"); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordOrderPlaced counts an order with its total and item count
func (bm *BusinessMetrics) RecordOrderPlaced(ctx context.Context, total decimal.Decimal, items int) {
	bm.ordersPlaced.Inc(ctx)
	bm.orderRevenueCents.Add(ctx, toCents(total))
	bm.orderItems.Record(ctx, float64(items))
}

// RecordOrderStatusChanged counts a transition between two statuses
func (bm *BusinessMetrics) RecordOrderStatusChanged(ctx context.Context, from, to string) {
	bm.orderTransitions.Inc(ctx, AttrOrderFrom.String(from), AttrOrderStatus.String(to))
}

// RecordOrderCancelled counts a cancellation from the given status
func (bm *BusinessMetrics) RecordOrderCancelled(ctx context.Context, from string) {
	bm.ordersCancelled.Inc(ctx, AttrOrderFrom.String(from))
	bm.orderTransitions.Inc(ctx, AttrOrderFrom.String(from), AttrOrderStatus.String("cancelled"))
}

// RecordPayment counts a payment attempt; the amount is added only for completed ones
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, method, status string, amount decimal.Decimal) {
	bm.payments.Inc(ctx, AttrPaymentMethod.String(method), AttrPaymentStatus.String(status))
	if status == "completed" {
		bm.paymentAmountCents.Add(ctx, toCents(amount), AttrPaymentMethod.String(method))
	}
}

// RecordDeliveryScheduled counts a purchased label
func (bm *BusinessMetrics) RecordDeliveryScheduled(ctx context.Context, carrier string) {
	bm.deliveries.Inc(ctx, AttrCarrier.String(carrier))
}

// RecordUserRegistered counts a new account
func (bm *BusinessMetrics) RecordUserRegistered(ctx context.Context) {
	bm.usersRegistered.Inc(ctx)
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// StartPeriodicCollection samples the stats provider every interval until
// Stop or ctx ends. It does nothing without a provider or on a second call.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	if bm.provider == nil {
		return
	}
	if interval <= 0 {
		interval = defaultCollectInterval
	}
	bm.startOnce.Do(func() {
		bm.wg.Add(1)
		go func() {
			defer bm.wg.Done()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			bm.Collect(ctx)
			for {
				select {
				case <-ticker.C:
					bm.Collect(ctx)
				case <-bm.stopCh:
					return
				case <-ctx.Done():
					return
				}
			}
		}()
	})
}

// Collect records the gauges once
func (bm *BusinessMetrics) Collect(ctx context.Context) {
	if bm.provider == nil {
		return
	}
	if n, err := bm.provider.CountLowStockProducts(ctx, bm.lowStockThreshold); err != nil {
		bm.logger.Warn("Failed to count low-stock products", zap.Error(err))
	} else {
		bm.lowStockProducts.Record(ctx, n)
	}

	counts, err := bm.provider.CountOrdersByStatus(ctx)
	if err != nil {
		bm.logger.Warn("Failed to count orders by status", zap.Error(err))
		return
	}
	for status, n := range counts {
		bm.ordersByStatus.Record(ctx, n, AttrOrderStatus.String(status))
	}
}

// Stop ends periodic collection
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopCh)
	})
	bm.wg.Wait()
}
