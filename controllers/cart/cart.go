package cartControllers

import (
	"net/http"

	"github.com/XTHN9RF/Foodify-API/controllers/respond"
	"github.com/XTHN9RF/Foodify-API/middleware"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/gin-gonic/gin"
)

type CartItemInput struct {
	ProductSlug string `json:"product_slug"`
	Quantity    int    `json:"quantity"`
}

// POST /cart
func AddCartItem(cart *services.Cart) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadInput(c, err)
			return
		}

		line, err := cart.Add(c.Request.Context(), userID, input.ProductSlug, input.Quantity)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, line)
	}
}

// GET /cart
func GetUserCart(cart *services.Cart) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		lines, err := cart.List(c.Request.Context(), userID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

// DELETE /cart/:slug
func DeleteCartItem(cart *services.Cart) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		if err := cart.Remove(c.Request.Context(), userID, c.Param("slug")); err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /cart
func ClearUserCart(cart *services.Cart) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		if err := cart.Clear(c.Request.Context(), userID); err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
