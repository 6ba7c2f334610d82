package productcontroller

import (
	"net/http"

	"github.com/XTHN9RF/Foodify-API/controllers/respond"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/gin-gonic/gin"
)

// GetProductBySlug returns a single product with its category.
// URL param: /products/:slug
func GetProductBySlug(catalog *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.Product(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
