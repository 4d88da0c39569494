package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

// newManualMeterProvider returns a provider whose data is read on demand
func newManualMeterProvider(t *testing.T) (*MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	sdk := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = sdk.Shutdown(context.Background()) })
	return NewMeterProviderFromSDK(sdk, zap.NewNop()), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

// intValue sums the int64 points of a sum or gauge whose attributes include attrs
func intValue(t *testing.T, rm metricdata.ResourceMetrics, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	m, ok := findMetric(rm, name)
	require.True(t, ok, "metric %s not recorded", name)

	var points []metricdata.DataPoint[int64]
	switch data := m.Data.(type) {
	case metricdata.Sum[int64]:
		points = data.DataPoints
	case metricdata.Gauge[int64]:
		points = data.DataPoints
	default:
		t.Fatalf("metric %s has unexpected data type %T", name, m.Data)
	}

	var total int64
	for _, p := range points {
		if hasAttributes(p.Attributes, attrs) {
			total += p.Value
		}
	}
	return total
}

func histogramCount(t *testing.T, rm metricdata.ResourceMetrics, name string) uint64 {
	t.Helper()
	m, ok := findMetric(rm, name)
	require.True(t, ok, "metric %s not recorded", name)
	data, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)

	var count uint64
	for _, p := range data.DataPoints {
		count += p.Count
	}
	return count
}

func hasAttributes(set attribute.Set, attrs []attribute.KeyValue) bool {
	for _, want := range attrs {
		got, ok := set.Value(want.Key)
		if !ok || got != want.Value {
			return false
		}
	}
	return true
}

func TestMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	require.False(t, mp.IsEnabled())
	require.NotNil(t, mp.Meter("test"))
	require.NoError(t, mp.Shutdown(context.Background()))
}

func TestInstruments_RecordThroughManualReader(t *testing.T) {
	mp, reader := newManualMeterProvider(t)
	meter := mp.Meter("test")
	ctx := context.Background()

	counter, err := NewCounter(meter, "test_total", "test counter", "{n}")
	require.NoError(t, err)
	hist, err := NewHistogram(meter, HistogramOpts{Name: "test_seconds", Unit: "s", Boundaries: HTTPDurationBuckets})
	require.NoError(t, err)
	gauge, err := NewGauge(meter, "test_gauge", "test gauge", "{n}")
	require.NoError(t, err)

	counter.Inc(ctx, AttrHTTPMethod.String("GET"))
	counter.Add(ctx, 4, AttrHTTPMethod.String("GET"))
	counter.Inc(ctx, AttrHTTPMethod.String("POST"))
	hist.Record(ctx, 0.2)
	hist.Record(ctx, 0.4)
	gauge.Record(ctx, 7)

	rm := collect(t, reader)
	require.Equal(t, int64(5), intValue(t, rm, "test_total", AttrHTTPMethod.String("GET")))
	require.Equal(t, int64(6), intValue(t, rm, "test_total"))
	require.Equal(t, uint64(2), histogramCount(t, rm, "test_seconds"))
	require.Equal(t, int64(7), intValue(t, rm, "test_gauge"))
}
