package event

import (
	"context"
	"time"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/payment"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/domain/shipping"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AuditLogHandler writes one structured line per domain event
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates an AuditLogHandler logging under "audit"
func NewAuditLogHandler(log *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: log.Named("audit")}
}

// EventTypes returns nil: the audit log receives every event
func (h *AuditLogHandler) EventTypes() []string { return nil }

// Handle logs evt with the request and trace fields found in ctx
func (h *AuditLogHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	logger.Enrich(ctx, h.logger).Info("Domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt().UTC().Truncate(time.Millisecond)),
	)
	return nil
}

// BusinessRecorder is the subset of telemetry.BusinessMetrics fed by events
type BusinessRecorder interface {
	RecordOrderPlaced(ctx context.Context, total decimal.Decimal, items int)
	RecordOrderStatusChanged(ctx context.Context, from, to string)
	RecordOrderCancelled(ctx context.Context, from string)
	RecordPayment(ctx context.Context, method, status string, amount decimal.Decimal)
	RecordDeliveryScheduled(ctx context.Context, carrier string)
	RecordUserRegistered(ctx context.Context)
}

// MetricsHandler turns order, payment, delivery and registration events into
// business metrics
type MetricsHandler struct {
	recorder BusinessRecorder
}

// NewMetricsHandler creates a MetricsHandler
func NewMetricsHandler(recorder BusinessRecorder) *MetricsHandler {
	return &MetricsHandler{recorder: recorder}
}

// EventTypes lists the events that carry business measurements
func (h *MetricsHandler) EventTypes() []string {
	return []string{
		order.EventTypeOrderPlaced,
		order.EventTypeOrderStatusChanged,
		order.EventTypeOrderCancelled,
		payment.EventTypePaymentCompleted,
		payment.EventTypePaymentFailed,
		shipping.EventTypeDeliveryScheduled,
		identity.EventTypeUserRegistered,
	}
}

// Handle records evt; unknown event types are ignored
func (h *MetricsHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	switch e := evt.(type) {
	case *order.OrderPlacedEvent:
		h.recorder.RecordOrderPlaced(ctx, e.TotalPrice, len(e.Items))
	case *order.OrderStatusChangedEvent:
		h.recorder.RecordOrderStatusChanged(ctx, string(e.OldStatus), string(e.NewStatus))
	case *order.OrderCancelledEvent:
		h.recorder.RecordOrderCancelled(ctx, string(e.OldStatus))
	case *payment.PaymentCompletedEvent:
		h.recorder.RecordPayment(ctx, string(e.Method), "completed", e.Amount)
	case *payment.PaymentFailedEvent:
		h.recorder.RecordPayment(ctx, string(e.Method), "failed", e.Amount)
	case *shipping.DeliveryScheduledEvent:
		h.recorder.RecordDeliveryScheduled(ctx, string(shipping.MethodShippo))
	case *identity.UserRegisteredEvent:
		h.recorder.RecordUserRegistered(ctx)
	}
	return nil
}
