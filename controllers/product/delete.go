package productcontroller

import (
	"net/http"

	"github.com/XTHN9RF/Foodify-API/controllers/respond"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/XTHN9RF/Foodify-API/uploads"
	"github.com/gin-gonic/gin"
)

// DELETE /admin/products/:slug
func DeleteProduct(catalog *services.Catalog, storage *uploads.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.DeleteProduct(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		storage.Remove(product.Image)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
