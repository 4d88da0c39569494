package router

import (
	"time"

	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"github.com/ecommerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const productionHSTSMaxAge = 365 * 24 * time.Hour

// EngineOptions carries the observability hooks of the engine. Zero values
// disable them.
type EngineOptions struct {
	Logger         *zap.Logger
	MeterProvider  *telemetry.MeterProvider
	TracingOptions []otelgin.Option
}

// Engine is the configured gin engine with the limiters it owns
type Engine struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
}

// Close stops the background work of the engine's rate limiters
func (e *Engine) Close() {
	for _, l := range e.limiters {
		l.Stop()
	}
}

// NewEngine builds a gin engine with the global middleware stack:
// request ID, recovery, tracing, request logging, metrics, profiling labels,
// security headers, CORS, body limits and the global rate limit.
func NewEngine(cfg *config.Config, opts EngineOptions) (*Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, opts.TracingOptions...))
		engine.Use(middleware.SpanEnricher())
	}
	engine.Use(logger.GinMiddleware(log))

	metrics, err := middleware.HTTPMetrics(opts.MeterProvider)
	if err != nil {
		return nil, err
	}
	engine.Use(metrics)
	engine.Use(middleware.Profiling(cfg.Telemetry.ProfilingEnabled))

	var hsts time.Duration
	if cfg.App.Env == "production" {
		hsts = productionHSTSMaxAge
	}
	engine.Use(middleware.Secure(hsts))

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(cors))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize, cfg.HTTP.MaxUploadSize))

	e := &Engine{Engine: engine}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		e.limiters = append(e.limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	return e, nil
}

// CredentialsLimit returns the stricter per-IP limit for register and login,
// or nil when it is disabled
func (e *Engine) CredentialsLimit(cfg config.HTTPConfig) gin.HandlerFunc {
	if !cfg.AuthRateLimitEnabled {
		return nil
	}
	limiter := middleware.NewRateLimiter(cfg.AuthRateLimitRequests, cfg.AuthRateLimitWindow)
	e.limiters = append(e.limiters, limiter)
	return middleware.RateLimit(limiter)
}

// MountSwagger serves the OpenAPI UI at /swagger when enabled
func (e *Engine) MountSwagger(cfg config.SwaggerConfig) {
	if !cfg.Enabled {
		return
	}
	e.GET("/swagger/*any",
		middleware.SwaggerAllowList(cfg.AllowedIPs),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)
}

// MountAPI registers the versioned API and the root health check
func (e *Engine) MountAPI(h Handlers, g Guards) {
	NewRouter(e.Engine).Register(APIGroups(h, g)...).Setup()
	e.GET("/health", h.System.Health)
}
