package routes

import (
	"vehicle-access-control/internal/config"

	"github.com/gin-gonic/gin"
)

// Guard produces the middleware protecting one entity operation. With
// auth disabled it is a no-op, preserving the open API contract.
type Guard func(resource, action string) gin.HandlerFunc

func entityGuard() Guard {
	if !config.Cfg.Auth.Enabled {
		return func(resource, action string) gin.HandlerFunc {
			return func(c *gin.Context) {}
		}
	}
	return func(resource, action string) gin.HandlerFunc {
		requireAuth := AuthMiddleware()
		requirePermission := RequirePermission(resource, action)
		// The composed middlewares never call c.Next() themselves. A
		// Next() here would run the route handler before the permission
		// check, so the chain only advances after both checks pass.
		return func(c *gin.Context) {
			requireAuth(c)
			if c.IsAborted() {
				return
			}
			requirePermission(c)
		}
	}
}

// RegisterRoutes attaches all API routes to the engine.
func RegisterRoutes(r *gin.Engine) {
	root := r.Group("/")
	Health(root)

	if config.Cfg.Auth.Enabled {
		AuthRoutes(root.Group("/auth"))
	}

	guard := entityGuard()
	VehicleRoutes(root, guard)
	VisitorRoutes(root, guard)
	ResidentRoutes(root, guard)
	UserRoutes(root, guard)
	AccessPermissionRoutes(root, guard)
	IncidentReportRoutes(root, guard)
	SecurityStaffRoutes(root, guard)
	GateRoutes(root, guard)
	EntryExitLogRoutes(root, guard)
	PassRoutes(root, guard)
}
