package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health answers liveness probes. The database round trip makes it a
// readiness check as well.
func Health(r *gin.RouterGroup) {
	r.GET("/health", func(c *gin.Context) {
		if err := Storage(c).Ping(c.Request.Context()); err != nil {
			AbortWithError(c, err)
			return
		}

		msg := c.DefaultQuery("ping", "pong")
		c.JSON(http.StatusOK, gin.H{"message": msg})
	})
}
