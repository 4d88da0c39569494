package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the client chosen key of a retryable request
const IdempotencyKeyHeader = "Idempotency-Key"

// MaxIdempotencyKeyLength bounds client supplied keys
const MaxIdempotencyKeyLength = 255

// KeyClaimer reserves request keys; see cache.KeyStore
type KeyClaimer interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Idempotency rejects a request whose Idempotency-Key was already used by the
// same user on the same path within ttl. Requests without the header pass.
// A key is released again when the request fails or the handler panics, so
// the client can retry. Store errors let the request through.
func Idempotency(store KeyClaimer, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if raw == "" {
			c.Next()
			return
		}
		if len(raw) > MaxIdempotencyKeyLength {
			abortWithError(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Idempotency-Key is too long")
			return
		}

		key := c.GetString(JWTUserIDKey) + ":" + c.Request.Method + " " + c.Request.URL.Path + ":" + raw
		ctx := c.Request.Context()
		claimed, err := store.Claim(ctx, key, ttl)
		if err != nil {
			log.Warn("Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			abortWithError(c, http.StatusConflict, dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already processed")
			return
		}

		defer func() {
			recovered := recover()
			if recovered != nil || c.Writer.Status() >= http.StatusBadRequest {
				if err := store.Release(context.WithoutCancel(ctx), key); err != nil {
					log.Warn("Failed to release idempotency key", zap.Error(err))
				}
			}
			if recovered != nil {
				panic(recovered)
			}
		}()

		c.Next()
	}
}
