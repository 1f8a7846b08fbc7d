package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Success bool     `json:"success"`
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Code    []string `json:"code,omitempty"`
}

// ErrorHandler turns errors collected on the gin context into one JSON
// error body. Handlers report errors through AbortWithError and friends
// instead of writing responses themselves.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// The last error decides the status and message
		err := c.Errors.Last().Err
		statusCode := GetErrorStatus(err)
		errorInfo := GetErrorInfo(err)

		logArgs := []any{
			"error", err,
			"status", statusCode,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		}
		if statusCode >= 500 {
			slog.Error("Request failed", logArgs...)
		} else {
			slog.Warn("Request rejected", logArgs...)
		}

		if c.Writer.Written() {
			return
		}

		// Stop codes from every error on the chain, not just the last
		var stopCodes []string
		for _, ginErr := range c.Errors {
			stopCodes = append(stopCodes, GetErrorInfo(ginErr.Err).StopCodes...)
		}

		c.AbortWithStatusJSON(statusCode, errorResponse{
			Success: false,
			Status:  "error",
			Message: errorInfo.Message,
			Code:    stopCodes,
		})
	}
}

// AbortWithError records err for the ErrorHandler middleware and stops
// the handler chain.
func AbortWithError(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
	// Pre-set the status so gin does not default to 200
	c.Status(GetErrorStatus(err))
}

// AbortWithHTTPError aborts with an explicit status and user message.
func AbortWithHTTPError(c *gin.Context, statusCode int, err error, message string, stopCodes ...string) {
	c.Error(NewHTTPError(statusCode, err, message, stopCodes...))
	c.Abort()
	c.Status(statusCode)
}
