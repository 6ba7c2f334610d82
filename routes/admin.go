package routes

import (
	orderControllers "github.com/XTHN9RF/Foodify-API/controllers/order"
	productcontroller "github.com/XTHN9RF/Foodify-API/controllers/product"
	userControllers "github.com/XTHN9RF/Foodify-API/controllers/user"
	"github.com/XTHN9RF/Foodify-API/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	// Browsers cannot set headers on a websocket handshake, so the feed also takes ?api_key=.
	r.GET("/admin/orders/ws",
		middleware.ValidateAPIKeyOrQuery(d.AdminAPIKey),
		orderControllers.OrderWebSocketHandler(d.Feed),
	)

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.AdminAPIKey))
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(d.Profile))

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(d.Catalog, d.Storage))
			categoryAdmin.GET("", productcontroller.GetAllCategories(d.Catalog))
			categoryAdmin.DELETE("/:slug", productcontroller.DeleteCategory(d.Catalog, d.Storage))
		}

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(d.Catalog, d.Storage))
			productAdmin.GET("", productcontroller.GetProducts(d.Catalog))
			productAdmin.DELETE("/:slug", productcontroller.DeleteProduct(d.Catalog, d.Storage))
			productAdmin.POST("/import", productcontroller.ImportProductsFromExcel(d.Catalog))
			productAdmin.GET("/export", productcontroller.ExportProductsToExcel(d.Catalog))
		}

		// ─────────── Order Management ───────────
		adminGroup.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(d.Orders))
	}
}
