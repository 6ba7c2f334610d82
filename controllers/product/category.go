package productcontroller

import (
	"net/http"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/controllers/respond"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/XTHN9RF/Foodify-API/uploads"
	"github.com/gin-gonic/gin"
)

// POST /admin/categories (multipart: name, optional image)
func CreateCategory(catalog *services.Catalog, storage *uploads.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		if name == "" {
			respond.Error(c, apperr.New(apperr.Validation, "name is required"))
			return
		}

		var imageURL string
		if file, err := c.FormFile("image"); err == nil {
			if imageURL, err = storage.Save(file, uploads.Categories); err != nil {
				respond.Error(c, err)
				return
			}
		}

		category, err := catalog.CreateCategory(c.Request.Context(), services.CategoryInput{Name: name, Image: imageURL})
		if err != nil {
			storage.Remove(imageURL)
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// GET /categories?search=
func GetAllCategories(catalog *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := catalog.Categories(c.Request.Context(), c.Query("search"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// DELETE /admin/categories/:slug
// The category's products go with it, and so do their images.
func DeleteCategory(catalog *services.Catalog, storage *uploads.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := catalog.DeleteCategory(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		storage.Remove(category.Image)
		for _, product := range category.Products {
			storage.Remove(product.Image)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
