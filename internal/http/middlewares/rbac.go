package middlewares

import (
	"net/http"

	"github.com/TARUN062005/MERNNETFLIX/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// RequireRole gates a route on an explicit set of permitted role variants.
// A missing identity is a 401; a present identity outside the set is a 403,
// so callers can tell "not logged in" from "not allowed".
func (m *AuthMiddleware) RequireRole(allowed ...user.Role) gin.HandlerFunc {
	permitted := make(map[user.Role]struct{}, len(allowed))

	for _, role := range allowed {
		permitted[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "No token provided",
			})
			return
		}

		if _, ok := permitted[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  false,
				"message": "Forbidden: insufficient privileges",
			})
			return
		}

		c.Next()
	}
}
