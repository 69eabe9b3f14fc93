package middleware

import (
	"net/http"

	"github.com/clubstack/backend/internal/models"
	"github.com/clubstack/backend/internal/services"
	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on the caller's resolved role. It
// assumes TenantRequired has already stored a scope in the context.
func RequirePermission(entity services.Entity, required services.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := GetScope(c)
		if scope == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "no club membership", "code": "no_tenant"})
			c.Abort()
			return
		}

		if !services.Allowed(scope.Role, entity, required) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// SuperadminRequired gates platform administration routes.
func SuperadminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := GetScope(c)
		if scope == nil || scope.Role != models.RoleSuperadmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "superadmin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
