package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/ecommerce/backend/internal/application/cart"
	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	identityapp "github.com/ecommerce/backend/internal/application/identity"
	orderapp "github.com/ecommerce/backend/internal/application/order"
	paymentapp "github.com/ecommerce/backend/internal/application/payment"
	shippingapp "github.com/ecommerce/backend/internal/application/shipping"
	"github.com/ecommerce/backend/internal/domain/payment"
	"github.com/ecommerce/backend/internal/domain/shipping"
	"github.com/ecommerce/backend/internal/infrastructure/auth"
	"github.com/ecommerce/backend/internal/infrastructure/cache"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/ecommerce/backend/internal/infrastructure/event"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	paymentinfra "github.com/ecommerce/backend/internal/infrastructure/payment"
	"github.com/ecommerce/backend/internal/infrastructure/persistence"
	shippinginfra "github.com/ecommerce/backend/internal/infrastructure/shipping"
	"github.com/ecommerce/backend/internal/infrastructure/spreadsheet"
	"github.com/ecommerce/backend/internal/infrastructure/storage"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"github.com/ecommerce/backend/internal/interfaces/http/handler"
	"github.com/ecommerce/backend/internal/interfaces/http/middleware"
	"github.com/ecommerce/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/ecommerce/backend/docs"
)

const (
	shutdownTimeout       = 30 * time.Second
	businessStatsInterval = time.Minute
	lowStockThreshold     = 5
)

//	@title			Shop Backend API
//	@version		1.0
//	@description	E-commerce backend: accounts and profiles, catalog, carts, orders, Stripe payments and Shippo shipping.

//	@contact.name	API Support
//	@contact.url	https://github.com/ecommerce/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting shop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry: traces, metrics, logs and profiles
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdown(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer shutdown(log, "meter provider", meterProvider.Shutdown)

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer shutdown(log, "logger provider", loggerProvider.Shutdown)
	if loggerProvider.IsEnabled() {
		log = loggerProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbTelemetry := telemetry.DBConfig{
		TracingEnabled:     cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		MetricsEnabled:     cfg.Telemetry.MetricsEnabled,
		LogFullSQL:         cfg.Telemetry.DBLogFullSQL,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:           "postgresql",
	}
	if err := telemetry.InstrumentTracing(db.DB, dbTelemetry, log); err != nil {
		log.Fatal("Failed to instrument database tracing", zap.Error(err))
	}
	dbMetrics, err := telemetry.InstrumentMetrics(ctx, db.DB, meterProvider, dbTelemetry, log)
	if err != nil {
		log.Fatal("Failed to instrument database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		defer dbMetrics.Stop()
	}

	healthChecks := map[string]handler.HealthCheck{"database": db.Ping}

	// Token blacklist and idempotency keys: Redis when configured, otherwise process memory
	var (
		blacklist auth.TokenBlacklist
		keyStore  cache.KeyStore
	)
	if cfg.Redis.Enabled() {
		redisClient, err := auth.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		keyStore = cache.NewRedisKeyStore(redisClient, "")
		healthChecks["redis"] = redisPing(redisClient)
		log.Info("Redis token blacklist enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		keyStore = cache.NewInMemoryKeyStore()
		log.Warn("Redis not configured, revoked tokens and idempotency keys are kept in memory")
	}
	defer func() {
		if err := keyStore.Close(); err != nil {
			log.Error("Error closing idempotency key store", zap.Error(err))
		}
	}()

	// External providers
	objectStorage := newObjectStorage(ctx, cfg, log)

	var gateways []payment.Gateway
	if cfg.Stripe.SecretKey != "" {
		stripeGateway, err := paymentinfra.NewStripeGateway(cfg.Stripe, log)
		if err != nil {
			log.Fatal("Failed to initialize Stripe", zap.Error(err))
		}
		gateways = append(gateways, stripeGateway)
	} else {
		log.Warn("Stripe not configured, payments will be rejected")
	}

	var carrier shipping.Carrier = shippinginfra.UnconfiguredCarrier{}
	if cfg.Shippo.APIKey != "" {
		shippo, err := shippinginfra.NewShippoClient(cfg.Shippo, log)
		if err != nil {
			log.Fatal("Failed to initialize Shippo", zap.Error(err))
		}
		carrier = shippo
	} else {
		log.Warn("Shippo not configured, shipping requests will fail")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	imageRepo := persistence.NewGormProductImageRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, txScope, jwtService, blacklist, log)
	profileService := identityapp.NewProfileService(profileRepo, txScope, blacklist, cfg.JWT.RefreshTokenExpiration, log)
	brandService := catalogapp.NewBrandService(brandRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, brandRepo)
	spreadsheetService := catalogapp.NewSpreadsheetService(productRepo, categoryRepo, brandRepo, spreadsheet.NewXLSXCodec(), log)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo)
	imageService := catalogapp.NewImageService(imageRepo, productRepo, objectStorage, log)
	cartService := cartapp.NewCartService(cartRepo, productRepo)
	orderService := orderapp.NewOrderService(orderRepo, txScope, log)
	paymentService := paymentapp.NewPaymentService(orderRepo, paymentRepo, userRepo, txScope, log, gateways...)
	shippingService := shippingapp.NewShippingService(orderRepo, deliveryRepo, txScope, carrier, senderAddress(cfg.Shippo.From), log)

	// Domain events: audit log always, business metrics when exported
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:             meterProvider.Meter(telemetry.TracerName),
			Logger:            log,
			StatsProvider:     telemetry.NewGormShopStatsProvider(db.DB),
			LowStockThreshold: lowStockThreshold,
		})
		if err != nil {
			log.Fatal("Failed to initialize business metrics", zap.Error(err))
		}
		businessMetrics.StartPeriodicCollection(ctx, businessStatsInterval)
		defer businessMetrics.Stop()
		eventBus.Subscribe(event.NewMetricsHandler(businessMetrics))
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	authService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)
	spreadsheetService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	paymentService.SetEventPublisher(eventBus)
	shippingService.SetEventPublisher(eventBus)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine, err := router.NewEngine(cfg, router.EngineOptions{
		Logger:        log,
		MeterProvider: meterProvider,
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}
	defer engine.Close()

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Profile:  handler.NewProfileHandler(profileService),
		Brand:    handler.NewBrandHandler(brandService),
		Category: handler.NewCategoryHandler(categoryService),
		Product:  handler.NewProductHandler(productService, spreadsheetService),
		Review:   handler.NewReviewHandler(reviewService),
		Image:    handler.NewImageHandler(imageService),
		Cart:     handler.NewCartHandler(cartService),
		Order:    handler.NewOrderHandler(orderService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Shipping: handler.NewShippingHandler(shippingService),
		System:   handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion, healthChecks),
	}
	guards := router.Guards{
		Authenticated: middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		}),
		Admin:       middleware.RequireAdmin(),
		Credentials: engine.CredentialsLimit(cfg.HTTP),
		Idempotent:  middleware.Idempotency(keyStore, cfg.HTTP.IdempotencyTTL, log),
	}
	engine.MountSwagger(cfg.Swagger)
	engine.MountAPI(handlers, guards)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newObjectStorage returns S3 storage when a bucket is configured, otherwise
// the stub that hands out local URLs
func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) catalogapp.ObjectStorageService {
	if !cfg.Storage.Enabled() {
		log.Warn("Object storage not configured, image URLs point at the stub storage")
		return storage.NewStubObjectStorage("http://localhost:" + cfg.App.Port + "/media")
	}
	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	if cfg.Storage.CreateBucket {
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to create storage bucket", zap.Error(err), zap.String("bucket", cfg.Storage.Bucket))
		}
	}
	log.Info("Object storage enabled", zap.String("bucket", s3Storage.Bucket()))
	return s3Storage
}

func senderAddress(from config.SenderAddress) shipping.Address {
	return shipping.Address{
		Name:    from.Name,
		Street1: from.Street1,
		City:    from.City,
		State:   from.State,
		Zip:     from.Zip,
		Country: from.Country,
		Phone:   from.Phone,
		Email:   from.Email,
	}
}

func redisPing(client *redis.Client) handler.HealthCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

func shutdown(log *zap.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("Error shutting down "+name, zap.Error(err))
	}
}
