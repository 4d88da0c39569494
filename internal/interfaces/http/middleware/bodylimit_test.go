package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimit(16, 64))
	router.POST("/test", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	post := func(body, contentType string, chunked bool) int {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
		if chunked {
			req.ContentLength = -1
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("within limit", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, post("small", "application/json", false))
	})

	t.Run("declared length over limit", func(t *testing.T) {
		assert.Equal(t, http.StatusRequestEntityTooLarge, post(strings.Repeat("x", 17), "application/json", false))
	})

	t.Run("streamed body over limit", func(t *testing.T) {
		assert.Equal(t, http.StatusRequestEntityTooLarge, post(strings.Repeat("x", 17), "application/json", true))
	})

	t.Run("multipart uses the upload limit", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, post(strings.Repeat("x", 40), "multipart/form-data; boundary=x", false))
		assert.Equal(t, http.StatusRequestEntityTooLarge, post(strings.Repeat("x", 65), "multipart/form-data; boundary=x", false))
	})
}
