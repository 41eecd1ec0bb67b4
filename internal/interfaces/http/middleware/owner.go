package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartauto/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// RequireOwner gates a route group on the owner role taken from the
// validated token claims. The role claim comes from the server-issued
// token, never from anything the client can set directly.
func RequireOwner(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		if identity.Role(role) != identity.RoleOwner {
			if logger != nil {
				logger.Warn("Owner route denied",
					zap.String("role", role),
					zap.String("user_id", GetJWTUserID(c)),
					zap.String("path", c.Request.URL.Path),
				)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Owner access required",
				},
			})
			return
		}

		c.Next()
	}
}
