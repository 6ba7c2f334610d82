package routes

import (
	cartControllers "github.com/XTHN9RF/Foodify-API/controllers/cart"
	productcontroller "github.com/XTHN9RF/Foodify-API/controllers/product"
	userControllers "github.com/XTHN9RF/Foodify-API/controllers/user"
	"github.com/XTHN9RF/Foodify-API/middleware"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers profile, catalog browsing and cart endpoints. Requires a bearer token.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("")
	userGroup.Use(middleware.ValidateToken(d.Auth))
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/user", userControllers.GetUser(d.Profile))
		userGroup.PUT("/user", userControllers.UpdateUser(d.Profile))

		// ──────────────── Browse Catalog ────────────────
		userGroup.GET("/categories", productcontroller.GetAllCategories(d.Catalog))
		userGroup.GET("/products", productcontroller.GetProducts(d.Catalog))
		userGroup.GET("/products/:slug", productcontroller.GetProductBySlug(d.Catalog))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(d.Cart))
			cartGroup.POST("", cartControllers.AddCartItem(d.Cart))
			cartGroup.DELETE("", cartControllers.ClearUserCart(d.Cart))
			cartGroup.DELETE("/:slug", cartControllers.DeleteCartItem(d.Cart))
		}
	}
}
