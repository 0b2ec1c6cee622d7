package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyAuth returns middleware that checks the X-API-Key header against
// the configured bcrypt hashes. An empty hash list disables the check,
// which keeps local development zero-config.
func APIKeyAuth(hashes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(hashes) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_API_KEY",
					"message": "X-API-Key header is required",
				},
			})
			return
		}

		for _, hash := range hashes {
			if bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_API_KEY",
				"message": "API key is not valid",
			},
		})
	}
}
