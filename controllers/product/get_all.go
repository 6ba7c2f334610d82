package productcontroller

import (
	"net/http"

	"github.com/XTHN9RF/Foodify-API/controllers/respond"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/XTHN9RF/Foodify-API/store"
	"github.com/gin-gonic/gin"
)

// GET /products?search=&category=
// search matches name or description; category is a category slug.
func GetProducts(catalog *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.Products(c.Request.Context(), store.ProductFilter{
			Search:       c.Query("search"),
			CategorySlug: c.Query("category"),
		})
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
