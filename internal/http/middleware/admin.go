package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKey guards operator-facing mutations. An empty configured key
// disables the check entirely.
func AdminKey(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if required == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-Admin-Key") != required {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid admin key",
				},
			})
			return
		}
		c.Next()
	}
}
