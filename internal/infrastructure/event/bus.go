// Package event delivers domain events to in-process handlers once the
// producing transaction has committed.
package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrBusStopped is returned by Publish after Stop
var ErrBusStopped = errors.New("event bus stopped")

// InMemoryEventBus dispatches events synchronously in the publisher's
// goroutine. A failing or panicking handler is logged and does not stop
// delivery to the others. Handlers must not publish on the same bus.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	stopped  atomic.Bool
	inflight sync.RWMutex // read-held by each Publish
}

// NewInMemoryEventBus creates a bus that accepts events immediately
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger.Named("event_bus"),
	}
}

// Publish delivers events in order. Handler failures are logged, never returned.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	b.inflight.RLock()
	defer b.inflight.RUnlock()
	if b.stopped.Load() {
		return ErrBusStopped
	}

	for _, evt := range events {
		b.publishOne(ctx, evt)
	}
	return nil
}

func (b *InMemoryEventBus) publishOne(ctx context.Context, evt shared.DomainEvent) {
	handlers := b.registry.GetHandlers(evt.EventType())
	if len(handlers) == 0 {
		return
	}

	ctx, span := telemetry.StartSpan(ctx, "event.publish "+evt.EventType(),
		telemetry.AttrEventType.String(evt.EventType()),
		attribute.String("event.id", evt.EventID().String()),
		attribute.Int("event.handlers", len(handlers)),
	)
	var failures []error
	for _, handler := range handlers {
		if err := b.dispatch(ctx, handler, evt); err != nil {
			failures = append(failures, err)
			b.logger.Error("Event handler failed",
				zap.String("event_type", evt.EventType()),
				zap.String("event_id", evt.EventID().String()),
				zap.String("handler", fmt.Sprintf("%T", handler)),
				zap.Error(err),
			)
		}
	}
	telemetry.EndSpan(span, errors.Join(failures...))
}

// dispatch runs one handler, converting a panic into an error
func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, evt)
}

// Subscribe registers handler for eventTypes, falling back to the handler's
// own EventTypes. A handler with neither receives every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("Handler subscribed",
		zap.String("handler", fmt.Sprintf("%T", handler)),
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start reopens a stopped bus
func (b *InMemoryEventBus) Start(context.Context) error {
	b.stopped.Store(false)
	b.logger.Info("Event bus started", zap.Int("handlers", len(b.registry.GetAllHandlers())))
	return nil
}

// Stop rejects new events and waits for in-flight deliveries or ctx
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.stopped.Store(true)

	done := make(chan struct{})
	go func() {
		b.inflight.Lock()
		b.inflight.Unlock()
		close(done)
	}()
	select {
	case <-done:
		b.logger.Info("Event bus stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
