package app

import (
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"

	"vehicle-access-control/internal/config"
	"vehicle-access-control/internal/routes"

	"github.com/gin-gonic/gin"
)

func securityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")

	// Disable caching, responses carry live gate data
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Next()
}

// Middleware to check if the IP is allowed.
func IPAccessControl(allowedCIDRs []string) gin.HandlerFunc {
	// Parse allowed CIDRs
	var parsedCIDRs []*net.IPNet

	// Allow local networks in debug mode
	if os.Getenv("GIN_MODE") != "release" {
		localhostCIDRs := []string{"127.0.0.1/8", "::1/128"}
		allowedCIDRs = append(allowedCIDRs, localhostCIDRs...)
	}

	for _, cidr := range allowedCIDRs {
		_, net, err := net.ParseCIDR(cidr)
		if err != nil {
			slog.Warn("Invalid CIDR", "cidr", cidr)
			continue
		}
		slog.Debug("Allowed CIDR", "cidr", cidr)
		parsedCIDRs = append(parsedCIDRs, net)
	}

	return func(c *gin.Context) {
		clientIP := net.ParseIP(c.ClientIP())
		if clientIP == nil {
			// Should not happen
			slog.Warn("Invalid client IP", "ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		for _, cidr := range parsedCIDRs {
			if cidr.Contains(clientIP) {
				c.Next()
				return
			}
		}
		slog.Warn("IP not allowed", "ip", clientIP)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}

// HTTPServer builds the engine with the base middleware chain. Route
// registration is left to the caller so tests can wire their own
// storage and policy.
func HTTPServer() *gin.Engine {
	r := gin.Default()

	if config.Cfg.AllowedNetworks != "" {
		slog.Debug("Enabling IP access control", "allowed_networks", config.Cfg.AllowedNetworks)
		var allowedCIDRs []string

		for cidr := range strings.SplitSeq(config.Cfg.AllowedNetworks, ",") {
			// Remove spaces and ignore empty sets
			if cidr := strings.TrimSpace(cidr); cidr != "" {
				allowedCIDRs = append(allowedCIDRs, cidr)
			}
		}

		r.Use(IPAccessControl(allowedCIDRs))
	}
	r.Use(securityHeaders)
	r.Use(routes.ErrorHandler())

	return r
}
