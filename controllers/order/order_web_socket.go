package orderControllers

import (
	"github.com/XTHN9RF/Foodify-API/feed"
	"github.com/gin-gonic/gin"
)

// GET /admin/orders/ws
// Admin dashboards receive order.placed and order.status_changed events.
func OrderWebSocketHandler(hub *feed.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	}
}
