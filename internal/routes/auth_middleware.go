// Authentication middleware
// Checks for a valid bearer token in the Authorization header.
// If valid, sets the user information in the context.
// If invalid, returns 401 Unauthorized.
package routes

import (
	"log/slog"
	"strings"

	"vehicle-access-control/internal/jwt"

	"github.com/gin-gonic/gin"
)

const authHeaderPrefix = "Bearer "

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, authHeaderPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, authHeaderPrefix))
	return token, token != ""
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := jwt.DecodeAPIJWT(token)
		if err != nil {
			slog.Warn("Invalid auth token", "error", err)
			AbortWithError(c, jwt.ErrNonValidToken)
			return
		}

		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
	}
}
