package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-be/internal/entities"
)

// RequireAdmin restricts a route to accounts carrying the admin role.
// Must be mounted after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextRole)
		if !ok || role != entities.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
			return
		}
		c.Next()
	}
}
