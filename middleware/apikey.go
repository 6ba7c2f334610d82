package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const APIKeyHeader = "X-API-KEY"

// ValidateAPIKey guards admin routes with the configured key. An empty key
// locks the routes entirely.
func ValidateAPIKey(key string) gin.HandlerFunc {
	return apiKeyGuard(key, false)
}

// ValidateAPIKeyOrQuery also accepts the key as the api_key query parameter,
// for browser websocket clients that cannot set headers.
func ValidateAPIKeyOrQuery(key string) gin.HandlerFunc {
	return apiKeyGuard(key, true)
}

func apiKeyGuard(key string, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(APIKeyHeader)
		if got == "" && allowQuery {
			got = c.Query("api_key")
		}
		if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			return
		}
		c.Next()
	}
}
