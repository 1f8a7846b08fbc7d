package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// UrlFor builds an absolute URL for path as seen by the client,
// honoring X-Forwarded-Proto when the service sits behind a proxy.
func UrlFor(c *gin.Context, path string) string {
	var b strings.Builder
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		b.WriteString("https://")
	} else {
		b.WriteString("http://")
	}
	b.WriteString(c.Request.Host)
	if !strings.HasPrefix(path, "/") {
		b.WriteByte('/')
	}
	b.WriteString(path)
	return b.String()
}
