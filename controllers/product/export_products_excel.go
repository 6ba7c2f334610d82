package productcontroller

import (
	"bytes"
	"net/http"

	"github.com/XTHN9RF/Foodify-API/controllers/respond"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /admin/products/export
func ExportProductsToExcel(catalog *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Buffer first so a failure can still be reported as JSON.
		var buf bytes.Buffer
		if err := catalog.ExportProducts(c.Request.Context(), &buf); err != nil {
			respond.Error(c, err)
			return
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Expires", "0")
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}
