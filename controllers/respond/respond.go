// Package respond writes error responses in the API's {"error": "..."} shape.
package respond

import (
	"log"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/gin-gonic/gin"
)

// Error aborts the request with the status and message of err. Causes of
// server-side failures are logged and never sent to the client.
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal || kind == apperr.TransactionFailed {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(kind.Status(), gin.H{"error": apperr.Message(err)})
}

// ErrorWithStatus is Error with a fixed status code.
func ErrorWithStatus(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": apperr.Message(err)})
}

// BadInput reports a body that could not be decoded.
func BadInput(c *gin.Context, err error) {
	Error(c, apperr.New(apperr.Validation, "Invalid input: "+err.Error()))
}
