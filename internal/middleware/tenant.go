package middleware

import (
	"errors"
	"net/http"

	"github.com/clubstack/backend/internal/services"
	"github.com/gin-gonic/gin"
)

const ContextScope = "scope"

// TenantRequired resolves the authenticated user's club membership and
// stores the resulting scope in the request context. Users without a
// membership get 403; a failing membership lookup gets 503, never a
// silently empty scope.
func TenantRequired(ts *services.TenantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		membership, err := ts.Resolve(userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNoTenant):
				c.JSON(http.StatusForbidden, gin.H{"error": "no club membership", "code": "no_tenant"})
			case errors.Is(err, services.ErrBackendUnavailable):
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "membership lookup failed"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve membership"})
			}
			c.Abort()
			return
		}

		c.Set(ContextScope, services.ScopeFromMembership(membership))
		c.Next()
	}
}

// GetScope gets the resolved scope from context
func GetScope(c *gin.Context) *services.Scope {
	if v, exists := c.Get(ContextScope); exists {
		if scope, ok := v.(*services.Scope); ok {
			return scope
		}
	}
	return nil
}
