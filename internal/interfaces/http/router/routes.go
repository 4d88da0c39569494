package router

import (
	"github.com/ecommerce/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers are the HTTP handlers of every API area
type Handlers struct {
	Auth     *handler.AuthHandler
	Profile  *handler.ProfileHandler
	Brand    *handler.BrandHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Review   *handler.ReviewHandler
	Image    *handler.ImageHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	Shipping *handler.ShippingHandler
	System   *handler.SystemHandler
}

// Guards are the access checks routes are wrapped in
type Guards struct {
	// Authenticated validates the bearer token
	Authenticated gin.HandlerFunc
	// Admin requires the token's admin claim; it runs after Authenticated
	Admin gin.HandlerFunc
	// Credentials throttles register and login; nil disables it
	Credentials gin.HandlerFunc
	// Idempotent rejects replayed checkouts and charges; nil disables it
	Idempotent gin.HandlerFunc
}

func (g Guards) auth(h gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Authenticated, h}
}

func (g Guards) admin(h gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Authenticated, g.Admin, h}
}

func (g Guards) idempotent(h gin.HandlerFunc) []gin.HandlerFunc {
	if g.Idempotent == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{g.Idempotent, h}
}

func (g Guards) credentials(h gin.HandlerFunc) []gin.HandlerFunc {
	if g.Credentials == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{g.Credentials, h}
}

// APIGroups builds the route groups mounted under /api/v1
func APIGroups(h Handlers, g Guards) []RouteRegistrar {
	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", g.credentials(h.Auth.Register)...)
	authRoutes.POST("/login", g.credentials(h.Auth.Login)...)
	authRoutes.POST("/refresh", h.Auth.RefreshToken)
	authRoutes.POST("/logout", g.auth(h.Auth.Logout)...)

	profileRoutes := NewDomainGroup("profiles", "/profiles")
	profileRoutes.GET("", g.admin(h.Profile.List)...)
	profileRoutes.GET("/me", g.auth(h.Profile.Me)...)
	profileRoutes.GET("/:id", g.auth(h.Profile.Get)...)
	profileRoutes.PUT("/:id", g.admin(h.Profile.Update)...)
	profileRoutes.PATCH("/:id", g.admin(h.Profile.Patch)...)
	profileRoutes.DELETE("/:id", g.admin(h.Profile.Delete)...)

	catalogRoutes := NewDomainGroup("catalog", "/catalog")

	brands := catalogRoutes.Group("brands", "/brands")
	brands.GET("", h.Brand.List)
	brands.GET("/:id", h.Brand.Get)
	brands.POST("", g.admin(h.Brand.Create)...)
	brands.PUT("/:id", g.admin(h.Brand.Update)...)
	brands.PATCH("/:id", g.admin(h.Brand.Patch)...)
	brands.DELETE("/:id", g.admin(h.Brand.Delete)...)

	categories := catalogRoutes.Group("categories", "/categories")
	categories.GET("", h.Category.List)
	categories.GET("/:id", h.Category.Get)
	categories.POST("", g.admin(h.Category.Create)...)
	categories.PUT("/:id", g.admin(h.Category.Update)...)
	categories.PATCH("/:id", g.admin(h.Category.Patch)...)
	categories.DELETE("/:id", g.admin(h.Category.Delete)...)

	products := catalogRoutes.Group("products", "/products")
	products.GET("", h.Product.List)
	products.GET("/export", g.admin(h.Product.Export)...)
	products.POST("/import", g.admin(h.Product.Import)...)
	products.GET("/:id", h.Product.Get)
	products.POST("", g.admin(h.Product.Create)...)
	products.PUT("/:id", g.admin(h.Product.Update)...)
	products.PATCH("/:id", g.admin(h.Product.Patch)...)
	products.DELETE("/:id", g.admin(h.Product.Delete)...)
	products.GET("/:id/images", h.Image.List)
	products.POST("/:id/images", g.admin(h.Image.InitiateUpload)...)

	catalogRoutes.DELETE("/images/:id", g.admin(h.Image.Delete)...)

	reviews := catalogRoutes.Group("reviews", "/reviews")
	reviews.GET("", h.Review.List)
	reviews.GET("/:id", h.Review.Get)
	reviews.POST("", g.auth(h.Review.Create)...)
	reviews.PUT("/:id", g.admin(h.Review.Update)...)
	reviews.PATCH("/:id", g.admin(h.Review.Patch)...)
	reviews.DELETE("/:id", g.admin(h.Review.Delete)...)

	cartRoutes := NewDomainGroup("cart", "/cart").Use(g.Authenticated)
	cartRoutes.GET("", h.Cart.Get)
	cartRoutes.DELETE("", h.Cart.Clear)
	cartRoutes.POST("/items", h.Cart.AddItem)
	cartRoutes.PUT("/items/:id", h.Cart.UpdateItem)
	cartRoutes.DELETE("/items/:id", h.Cart.RemoveItem)

	orderRoutes := NewDomainGroup("orders", "/orders").Use(g.Authenticated)
	orderRoutes.GET("", g.Admin, h.Order.List)
	orderRoutes.GET("/mine", h.Order.ListMine)
	orderRoutes.GET("/admin/:id", g.Admin, h.Order.AdminGet)
	orderRoutes.GET("/:id", h.Order.Get)
	orderRoutes.POST("/checkout/:cart_id", g.idempotent(h.Order.Checkout)...)
	orderRoutes.PATCH("/:id/status", g.Admin, h.Order.UpdateStatus)

	paymentRoutes := NewDomainGroup("payments", "/payments").Use(g.Authenticated)
	paymentRoutes.POST("/orders/:id", g.idempotent(h.Payment.Process)...)
	paymentRoutes.GET("/orders/:id", h.Payment.ListByOrder)
	paymentRoutes.GET("/:id", h.Payment.Get)

	shippingRoutes := NewDomainGroup("shipping", "/shipping").Use(g.Authenticated)
	shippingRoutes.POST("/orders/:id/rates", h.Shipping.GetRates)
	shippingRoutes.POST("/orders/:id/deliveries", h.Shipping.PurchaseLabel)
	shippingRoutes.GET("/orders/:id/deliveries", h.Shipping.ListByOrder)
	shippingRoutes.POST("/deliveries/:id/status", g.Admin, h.Shipping.UpdateDeliveryStatus)
	shippingRoutes.GET("/deliveries/:id", g.Admin, h.Shipping.GetDelivery)

	systemRoutes := NewDomainGroup("system", "")
	systemRoutes.GET("/health", h.System.Health)
	systemRoutes.GET("/system/info", h.System.GetSystemInfo)

	return []RouteRegistrar{
		authRoutes,
		profileRoutes,
		catalogRoutes,
		cartRoutes,
		orderRoutes,
		paymentRoutes,
		shippingRoutes,
		systemRoutes,
	}
}
