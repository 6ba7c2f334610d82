package productcontroller

import (
	"net/http"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/controllers/respond"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/gin-gonic/gin"
)

// POST /admin/products/import (multipart: file)
func ImportProductsFromExcel(catalog *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			respond.Error(c, apperr.New(apperr.Validation, "Excel file is required"))
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			respond.Error(c, err)
			return
		}
		defer file.Close()

		result, err := catalog.ImportProducts(c.Request.Context(), file, excelFileHeader.Size)
		if err != nil {
			respond.Error(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": result.Created,
			"updated_count": result.Updated,
			"skipped_count": result.Skipped,
		})
	}
}
