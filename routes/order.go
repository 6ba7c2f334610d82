package routes

import (
	orderControllers "github.com/XTHN9RF/Foodify-API/controllers/order"
	"github.com/XTHN9RF/Foodify-API/middleware"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(r *gin.Engine, d Deps) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(d.Auth))
	{
		// Convert the caller's cart into an order
		orders.POST("", orderControllers.PlaceOrderHandler(d.Orders))

		// Caller's orders, newest first
		orders.GET("", orderControllers.GetUserOrdersHandler(d.Orders))
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(d.Orders))
	}
}
