package routes

import (
	"log/slog"

	"vehicle-access-control/internal/access"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates one route on a role permission. It runs after
// AuthMiddleware, which put the caller's role on the context.
func RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		rbac := c.MustGet("rbac").(*access.RBAC)

		if !rbac.Can(role, resource, action) {
			slog.Warn("Permission denied",
				"username", c.GetString("username"),
				"role", role,
				"resource", resource,
				"action", action)
			AbortWithError(c, ErrForbidden)
			return
		}
	}
}
