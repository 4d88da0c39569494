package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestProfiling(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		var labels map[string]string
		router := gin.New()
		router.Use(Profiling(enabled))
		router.POST("/api/v1/cart/items", func(c *gin.Context) {
			labels = map[string]string{}
			pprof.ForLabels(c.Request.Context(), func(k, v string) bool {
				labels[k] = v
				return true
			})
			c.Status(http.StatusCreated)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil))
		assert.Equal(t, http.StatusCreated, w.Code)

		if enabled {
			assert.Equal(t, map[string]string{"route": "/api/v1/cart/items", "method": "POST"}, labels)
		} else {
			assert.Empty(t, labels)
		}
	}
}
