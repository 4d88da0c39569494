package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/ecommerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func TestGetRequestID(t *testing.T) {
	t.Run("from header when middleware did not run", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/", "")
		c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
		assert.Equal(t, "header-id", getRequestID(c))
	})

	t.Run("empty when not set", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/", "")
		assert.Empty(t, getRequestID(c))
	})

	t.Run("middleware value is echoed in errors", func(t *testing.T) {
		engine := gin.New()
		engine.Use(middleware.RequestID())
		h := &BaseHandler{}
		engine.GET("/fail", func(c *gin.Context) { h.BadRequest(c, "nope") })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/fail", nil)
		req.Header.Set(middleware.RequestIDHeader, "client-id-1")
		engine.ServeHTTP(w, req)

		assert.Equal(t, "client-id-1", decodeError(t, w).RequestID)
	})
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND", shared.ErrNotFound.Message},
		{"already exists", shared.ErrAlreadyExists.WithMessage("Email already exists!"), http.StatusConflict, "ALREADY_EXISTS", "Email already exists!"},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", shared.ErrInsufficientStock.Message},
		{"unknown invalid code", shared.NewDomainError("INVALID_PHONE", "Invalid phone number"), http.StatusBadRequest, "INVALID_PHONE", "Invalid phone number"},
		{"wrapped domain error", fmt.Errorf("saving: %w", shared.ErrNotFound), http.StatusNotFound, "NOT_FOUND", shared.ErrNotFound.Message},
		{"plain error is hidden", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/", "")
			(&BaseHandler{}).HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			info := decodeError(t, w)
			assert.Equal(t, tt.code, info.Code)
			assert.Equal(t, tt.message, info.Message)
		})
	}

	t.Run("nil writes nothing", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", "")
		(&BaseHandler{}).HandleError(c, nil)
		assert.Zero(t, w.Body.Len())
	})
}

func TestParseID(t *testing.T) {
	h := &BaseHandler{}

	t.Run("valid", func(t *testing.T) {
		id := uuid.New()
		c, _ := newTestContext(http.MethodGet, "/", "")
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		got, ok := h.parseID(c, "id", "Product")
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("malformed is not found", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", "")
		c.Params = gin.Params{{Key: "id", Value: "42"}}

		_, ok := h.parseID(c, "id", "Product")
		assert.False(t, ok)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Product not found", decodeError(t, w).Message)
	})
}

func TestCallerID(t *testing.T) {
	h := &BaseHandler{}

	c, _ := newTestContext(http.MethodGet, "/", "")
	id := uuid.New()
	c.Set(middleware.JWTUserIDKey, id.String())
	got, ok := h.callerID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	c, w := newTestContext(http.MethodGet, "/", "")
	_, ok = h.callerID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListFilter(t *testing.T) {
	h := &BaseHandler{}

	t.Run("defaults", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/brands", "")
		filter, ok := h.listFilter(c)
		require.True(t, ok)
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 20, filter.PageSize)
		assert.Equal(t, "created_at", filter.OrderBy)
		assert.Equal(t, "desc", filter.OrderDir)
	})

	t.Run("query overrides", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/brands?page=3&page_size=5&order_by=name&order_dir=asc&search=acme", "")
		filter, ok := h.listFilter(c)
		require.True(t, ok)
		assert.Equal(t, 3, filter.Page)
		assert.Equal(t, 5, filter.PageSize)
		assert.Equal(t, "name", filter.OrderBy)
		assert.Equal(t, "asc", filter.OrderDir)
		assert.Equal(t, "acme", filter.Search)
	})

	t.Run("page size is bounded", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/brands?page_size=1000", "")
		_, ok := h.listFilter(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPageOrDefault(t *testing.T) {
	page, size := pageOrDefault(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	page, size = pageOrDefault(4, 50)
	assert.Equal(t, 4, page)
	assert.Equal(t, 50, size)
}

func TestBindOptionalJSON(t *testing.T) {
	h := &BaseHandler{}
	var body struct {
		RateID string `json:"rate_id"`
	}

	c, _ := newTestContext(http.MethodPost, "/", "")
	assert.True(t, h.bindOptionalJSON(c, &body))
	assert.Empty(t, body.RateID)

	c, _ = newTestContext(http.MethodPost, "/", `{"rate_id":"r1"}`)
	assert.True(t, h.bindOptionalJSON(c, &body))
	assert.Equal(t, "r1", body.RateID)

	c, w := newTestContext(http.MethodPost, "/", `{"rate_id":`)
	assert.False(t, h.bindOptionalJSON(c, &body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
