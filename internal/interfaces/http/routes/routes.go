// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/loyalty-portal/internal/cache"
	"github.com/your-org/loyalty-portal/internal/config"
	"github.com/your-org/loyalty-portal/internal/domain/cart"
	"github.com/your-org/loyalty-portal/internal/domain/catalog"
	"github.com/your-org/loyalty-portal/internal/domain/checkout"
	"github.com/your-org/loyalty-portal/internal/domain/order"
	"github.com/your-org/loyalty-portal/internal/domain/session"
	"github.com/your-org/loyalty-portal/internal/domain/ui"
	"github.com/your-org/loyalty-portal/internal/interfaces/http/handlers"
	"github.com/your-org/loyalty-portal/internal/interfaces/http/middleware"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// Dependencies carries the shared services the route handlers close over
type Dependencies struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Cache    *cache.Cache
	Client   *loyalty.Client
	Sessions *session.Manager
	Carts    *cart.Store
	Catalog  *catalog.Service
	Checkout *checkout.Service
	Orders   *order.Service
	Feed     *ui.Feed
}

// SetupRoutes wires every portal endpoint under the given group
func SetupRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	respond := handlers.NewResponder(deps.Sessions, deps.Carts, deps.Feed, deps.Logger)

	setupAuthRoutes(rg, deps, respond)
	setupCatalogRoutes(rg, deps, respond)
	setupCompanyRoutes(rg, deps, respond)
	setupCartRoutes(rg, deps, respond)
	setupCheckoutRoutes(rg, deps, respond)
	setupOrderRoutes(rg, deps, respond)
	setupInventoryRoutes(rg, deps, respond)
	setupNotificationRoutes(rg, deps)
}

func setupAuthRoutes(rg *gin.RouterGroup, deps *Dependencies, respond *handlers.Responder) {
	authHandler := handlers.NewAuthHandler(deps.Sessions, deps.Client.Companies, respond, deps.Config, deps.Logger)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)

		// Development-only auto-login with the configured mock identity
		if deps.Config.Auth.DevAutoLogin && deps.Config.IsDevelopment() {
			auth.POST("/dev-login", authHandler.DevLogin)
		}

		protected := auth.Group("")
		protected.Use(middleware.RequireSession(deps.Sessions))
		{
			protected.GET("/session", authHandler.GetSession)
			protected.POST("/logout", authHandler.Logout)
		}
	}
}

func setupCatalogRoutes(rg *gin.RouterGroup, deps *Dependencies, respond *handlers.Responder) {
	productHandler := handlers.NewProductHandler(deps.Catalog, respond)

	products := rg.Group("/products")
	products.Use(middleware.OptionalSession(deps.Sessions))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/points-range", productHandler.GetProductsByPointsRange)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/brands", productHandler.GetBrands)
		products.GET("/:id", productHandler.GetProduct)
	}
}

func setupCompanyRoutes(rg *gin.RouterGroup, deps *Dependencies, respond *handlers.Responder) {
	companyHandler := handlers.NewCompanyHandler(deps.Client.Companies, deps.Cache, respond, deps.Config)

	companies := rg.Group("/companies")
	{
		companies.GET("", companyHandler.GetCompanies)
		companies.GET("/:id", companyHandler.GetCompany)
	}
}

func setupCartRoutes(rg *gin.RouterGroup, deps *Dependencies, respond *handlers.Responder) {
	cartHandler := handlers.NewCartHandler(deps.Carts, deps.Catalog, deps.Feed, respond)

	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.RequireSession(deps.Sessions))
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

func setupCheckoutRoutes(rg *gin.RouterGroup, deps *Dependencies, respond *handlers.Responder) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout, respond)

	checkoutGroup := rg.Group("/checkout")
	checkoutGroup.Use(middleware.RequireSession(deps.Sessions))
	{
		checkoutGroup.GET("/balance", checkoutHandler.GetBalance)
		checkoutGroup.POST("", checkoutHandler.Confirm)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, deps *Dependencies, respond *handlers.Responder) {
	orderHandler := handlers.NewOrderHandler(deps.Orders, respond)

	orders := rg.Group("/orders")
	orders.Use(middleware.RequireSession(deps.Sessions))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/statistics", orderHandler.GetStatistics)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/process", orderHandler.ProcessOrder)
		orders.POST("/:id/cancel", orderHandler.CancelOrder)
	}
}

func setupInventoryRoutes(rg *gin.RouterGroup, deps *Dependencies, respond *handlers.Responder) {
	inventoryHandler := handlers.NewInventoryHandler(deps.Client.Inventory, respond)

	inventory := rg.Group("/inventory")
	inventory.Use(middleware.RequireSession(deps.Sessions))
	{
		inventory.GET("/product/:id/availability", inventoryHandler.CheckAvailability)
	}
}

func setupNotificationRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	notificationHandler := handlers.NewNotificationHandler(deps.Feed)

	notifications := rg.Group("/notifications")
	notifications.Use(middleware.RequireSession(deps.Sessions))
	{
		notifications.GET("", notificationHandler.GetNotifications)
		notifications.DELETE("/:id", notificationHandler.DismissNotification)
		notifications.DELETE("", notificationHandler.ClearNotifications)
	}
}
