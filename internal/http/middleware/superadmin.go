package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trisers/shopauth/domain"
)

// RequireSuperAdmin restricts a route to superadmin tokens. Runs after
// RequireAuth.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok || claims.Role != domain.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"message": "superadmin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
