package routes

import (
	"net/http"

	"github.com/Madhav-Gupta-28/storefront-backend-go/config"
	"github.com/Madhav-Gupta-28/storefront-backend-go/handlers"
	customMiddleware "github.com/Madhav-Gupta-28/storefront-backend-go/middleware"
	"github.com/Madhav-Gupta-28/storefront-backend-go/services"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Catalog *services.CatalogService
	Orders  *services.OrderService
}

func SetupRoutes(e *echo.Echo, cfg *config.Config, svc Services) {
	orders := handlers.NewOrderHandler(svc.Orders)
	categories := handlers.NewCategoryHandler(svc.Catalog, cfg.Server.MaxUploadBytes)
	products := handlers.NewProductHandler(svc.Catalog)

	staff := customMiddleware.StaffAuth(cfg.Auth.JWTSecret, cfg.Auth.StaffRoles)

	// Public routes
	e.POST("/orders", orders.CreateOrder)
	e.GET("/categories", categories.GetCategories)
	e.GET("/categories/:id/products", categories.GetCategoryProducts)
	e.GET("/products", products.GetProducts)
	e.GET("/products/filters", products.GetProductFilters)
	e.GET("/products/:id", products.GetProduct)
	e.POST("/products/:id/view", products.RecordView)
	e.POST("/products/:id/rate", products.RateProduct)

	// Staff routes
	e.GET("/orders", orders.GetOrders, staff)
	e.GET("/orders/stats", orders.GetOrderStats, staff)
	e.GET("/orders/:id", orders.GetOrder, staff)
	e.PATCH("/orders/:id/status", orders.UpdateOrderStatus, staff)
	e.DELETE("/orders/:id", orders.DeleteOrder, staff)

	e.POST("/categories", categories.CreateCategory, staff)
	e.POST("/categories/reconcile", categories.ReconcileCounts, staff)
	e.PUT("/categories/:id", categories.UpdateCategory, staff)
	e.DELETE("/categories/:id", categories.DeleteCategory, staff)

	e.POST("/products", products.CreateProduct, staff)
	e.PUT("/products/:id", products.UpdateProduct, staff)
	e.DELETE("/products/:id", products.DeleteProduct, staff)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
