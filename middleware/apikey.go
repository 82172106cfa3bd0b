package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAPIKey gates the admin group on the X-API-KEY header. With no key
// configured it is a pass-through, which matches the storefront's default
// open-admin deployment.
func RequireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key != "" && c.GetHeader("X-API-KEY") != key {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
