package routes

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"vehicle-access-control/internal/config"
	"vehicle-access-control/internal/jwt"
	"vehicle-access-control/internal/storage"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func AuthRoutes(r *gin.RouterGroup) {
	r.POST("/login", login)

	// Route to check authentication status
	r.GET("/status", AuthMiddleware(), func(c *gin.Context) {
		// If we reach here, the token is valid
		c.JSON(http.StatusOK, gin.H{
			"status":   "authenticated",
			"username": c.GetString("username"),
			"role":     c.GetString("role"),
		})
	})
}

// login verifies credentials against the User table and issues a
// bearer token carrying the user's role.
func login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := Storage(c).GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Same response as a wrong password, no user enumeration
			AbortWithError(c, ErrInvalidCredentials)
			return
		}
		AbortWithError(c, err)
		return
	}

	if user.Password == nil ||
		subtle.ConstantTimeCompare([]byte(*user.Password), []byte(req.Password)) != 1 {
		slog.Warn("Failed login attempt", "username", req.Username)
		AbortWithError(c, ErrInvalidCredentials)
		return
	}

	claim := jwt.NewAPIClaim(user.Username, user.Role)
	token, err := jwt.GenerateJWT(claim)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	slog.Info("User logged in", "username", user.Username, "role", user.Role)
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": config.Cfg.Auth.TokenTTL,
		"role":       user.Role,
	})
}
