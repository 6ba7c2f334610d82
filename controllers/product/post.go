package productcontroller

import (
	"net/http"

	"github.com/XTHN9RF/Foodify-API/controllers/respond"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/XTHN9RF/Foodify-API/uploads"
	"github.com/gin-gonic/gin"
)

// CreateProduct creates a product from a multipart form.
// Fields: name, description, price, category_slug, optional image.
func CreateProduct(catalog *services.Catalog, storage *uploads.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var imageURL string
		if file, err := c.FormFile("image"); err == nil {
			if imageURL, err = storage.Save(file, uploads.Products); err != nil {
				respond.Error(c, err)
				return
			}
		}

		product, err := catalog.CreateProduct(c.Request.Context(), services.ProductInput{
			Name:         c.PostForm("name"),
			Description:  c.PostForm("description"),
			Price:        c.PostForm("price"),
			CategorySlug: c.PostForm("category_slug"),
			Image:        imageURL,
		})
		if err != nil {
			storage.Remove(imageURL)
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
