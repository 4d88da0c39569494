package event

import (
	"context"
	"testing"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

// mockHandler implements EventHandler for testing
type mockHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
}

func newMockHandler(eventTypes ...string) *mockHandler {
	return &mockHandler{
		eventTypes: eventTypes,
		handled:    make([]shared.DomainEvent, 0),
	}
}

func (h *mockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.handled = append(h.handled, event)
	return nil
}

func (h *mockHandler) EventTypes() []string {
	return h.eventTypes
}

func TestHandlerRegistry_Register_SpecificTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler("OrderPlaced", "OrderStatusChanged")

	registry.Register(handler, "OrderPlaced", "OrderStatusChanged")

	handlers := registry.GetHandlers("OrderPlaced")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])

	handlers = registry.GetHandlers("OrderStatusChanged")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])

	handlers = registry.GetHandlers("OrderCancelled")
	assert.Len(t, handlers, 0)
}

func TestHandlerRegistry_Register_Wildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler() // No event types = wildcard

	registry.Register(handler)

	handlers := registry.GetHandlers("OrderPlaced")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])

	handlers = registry.GetHandlers("AnyEventType")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])
}

func TestHandlerRegistry_Register_MixedTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	specificHandler := newMockHandler("OrderPlaced")
	wildcardHandler := newMockHandler()

	registry.Register(specificHandler, "OrderPlaced")
	registry.Register(wildcardHandler)

	handlers := registry.GetHandlers("OrderPlaced")
	assert.Len(t, handlers, 2)

	handlers = registry.GetHandlers("OtherEvent")
	assert.Len(t, handlers, 1)
	assert.Equal(t, wildcardHandler, handlers[0])
}

func TestHandlerRegistry_Unregister_SpecificHandler(t *testing.T) {
	registry := NewHandlerRegistry()
	handler1 := newMockHandler("OrderPlaced")
	handler2 := newMockHandler("OrderPlaced")

	registry.Register(handler1, "OrderPlaced")
	registry.Register(handler2, "OrderPlaced")

	handlers := registry.GetHandlers("OrderPlaced")
	assert.Len(t, handlers, 2)

	registry.Unregister(handler1)

	handlers = registry.GetHandlers("OrderPlaced")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler2, handlers[0])
}

func TestHandlerRegistry_Unregister_WildcardHandler(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcardHandler := newMockHandler()

	registry.Register(wildcardHandler)

	handlers := registry.GetHandlers("AnyEvent")
	assert.Len(t, handlers, 1)

	registry.Unregister(wildcardHandler)

	handlers = registry.GetHandlers("AnyEvent")
	assert.Len(t, handlers, 0)
}

func TestHandlerRegistry_GetAllHandlers(t *testing.T) {
	registry := NewHandlerRegistry()
	handler1 := newMockHandler("OrderPlaced")
	handler2 := newMockHandler("UserRegistered")
	wildcardHandler := newMockHandler()

	registry.Register(handler1, "OrderPlaced")
	registry.Register(handler2, "UserRegistered")
	registry.Register(wildcardHandler)

	allHandlers := registry.GetAllHandlers()
	assert.Len(t, allHandlers, 3)
}

func TestHandlerRegistry_GetAllHandlers_NoDuplicates(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler("OrderPlaced", "OrderStatusChanged")

	// Register same handler for multiple event types
	registry.Register(handler, "OrderPlaced", "OrderStatusChanged")

	allHandlers := registry.GetAllHandlers()
	assert.Len(t, allHandlers, 1)
}

func TestHandlerRegistry_Register_Duplicate(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler("OrderPlaced")

	registry.Register(handler, "OrderPlaced")
	registry.Register(handler, "OrderPlaced")
	registry.Register(handler)

	// a handler registered both ways is delivered once
	assert.Len(t, registry.GetHandlers("OrderPlaced"), 1)
	assert.Len(t, registry.GetHandlers("PaymentFailed"), 1)
}

func TestHandlerRegistry_Unregister_DropsEmptyTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler("OrderPlaced")
	registry.Register(handler, "OrderPlaced")

	registry.Unregister(handler)

	assert.Empty(t, registry.GetAllHandlers())
	assert.NotContains(t, registry.handlers, "OrderPlaced")
}
