package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ecommerce/backend/internal/infrastructure/cache"
	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Claim(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func (brokenStore) Release(context.Context, string) error { return nil }

func idempotencyEngine(store KeyClaimer, status *int, calls *int) *gin.Engine {
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(JWTUserIDKey, c.GetHeader("X-Test-User"))
		c.Next()
	})
	engine.POST("/payments/orders/:id", Idempotency(store, time.Hour, nil), func(c *gin.Context) {
		*calls++
		c.JSON(*status, gin.H{})
	})
	return engine
}

func postWithKey(engine *gin.Engine, user, path, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("X-Test-User", user)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	t.Run("replay is rejected", func(t *testing.T) {
		store := cache.NewInMemoryKeyStore()
		defer store.Close()
		status, calls := http.StatusCreated, 0
		engine := idempotencyEngine(store, &status, &calls)

		assert.Equal(t, http.StatusCreated, postWithKey(engine, "u1", "/payments/orders/1", "k-1").Code)
		w := postWithKey(engine, "u1", "/payments/orders/1", "k-1")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeDuplicateRequest)
		assert.Equal(t, 1, calls)
	})

	t.Run("keys are scoped by user and path", func(t *testing.T) {
		store := cache.NewInMemoryKeyStore()
		defer store.Close()
		status, calls := http.StatusCreated, 0
		engine := idempotencyEngine(store, &status, &calls)

		assert.Equal(t, http.StatusCreated, postWithKey(engine, "u1", "/payments/orders/1", "k-1").Code)
		assert.Equal(t, http.StatusCreated, postWithKey(engine, "u2", "/payments/orders/1", "k-1").Code)
		assert.Equal(t, http.StatusCreated, postWithKey(engine, "u1", "/payments/orders/2", "k-1").Code)
		assert.Equal(t, 3, calls)
	})

	t.Run("requests without a key always pass", func(t *testing.T) {
		store := cache.NewInMemoryKeyStore()
		defer store.Close()
		status, calls := http.StatusCreated, 0
		engine := idempotencyEngine(store, &status, &calls)

		postWithKey(engine, "u1", "/payments/orders/1", "")
		postWithKey(engine, "u1", "/payments/orders/1", "")
		assert.Equal(t, 2, calls)
		assert.Zero(t, store.Len())
	})

	t.Run("failed request releases the key", func(t *testing.T) {
		store := cache.NewInMemoryKeyStore()
		defer store.Close()
		status, calls := http.StatusBadRequest, 0
		engine := idempotencyEngine(store, &status, &calls)

		assert.Equal(t, http.StatusBadRequest, postWithKey(engine, "u1", "/payments/orders/1", "k-1").Code)
		status = http.StatusCreated
		assert.Equal(t, http.StatusCreated, postWithKey(engine, "u1", "/payments/orders/1", "k-1").Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("panicking handler releases the key", func(t *testing.T) {
		store := cache.NewInMemoryKeyStore()
		defer store.Close()
		calls := 0
		engine := gin.New()
		engine.Use(gin.RecoveryWithWriter(io.Discard))
		engine.POST("/payments/orders/:id", Idempotency(store, time.Hour, nil), func(c *gin.Context) {
			calls++
			if calls == 1 {
				panic("gateway client exploded")
			}
			c.JSON(http.StatusCreated, gin.H{})
		})

		assert.Equal(t, http.StatusInternalServerError, postWithKey(engine, "u1", "/payments/orders/1", "k-1").Code)
		assert.Zero(t, store.Len())
		assert.Equal(t, http.StatusCreated, postWithKey(engine, "u1", "/payments/orders/1", "k-1").Code)
		assert.Equal(t, 2, calls)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("oversized key", func(t *testing.T) {
		store := cache.NewInMemoryKeyStore()
		defer store.Close()
		status, calls := http.StatusCreated, 0
		engine := idempotencyEngine(store, &status, &calls)

		w := postWithKey(engine, "u1", "/payments/orders/1", strings.Repeat("k", MaxIdempotencyKeyLength+1))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, calls)
	})

	t.Run("store failure lets the request through", func(t *testing.T) {
		status, calls := http.StatusCreated, 0
		engine := idempotencyEngine(brokenStore{}, &status, &calls)

		require.Equal(t, http.StatusCreated, postWithKey(engine, "u1", "/payments/orders/1", "k-1").Code)
		assert.Equal(t, 1, calls)
	})
}
