package routes

import (
	"errors"
	"net/http"

	"vehicle-access-control/internal/jwt"
	"vehicle-access-control/internal/storage"
)

// HTTPError carries a status code and user-facing message alongside the
// underlying error.
type HTTPError struct {
	Err        error
	StatusCode int
	Message    string
	StopCodes  []string
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(statusCode int, err error, message string, stopCodes ...string) *HTTPError {
	return &HTTPError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
		StopCodes:  stopCodes,
	}
}

// ErrorInfo is the user-facing part of a classified error.
type ErrorInfo struct {
	Message   string
	StopCodes []string
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrInternalServer     = errors.New("internal server error")
)

// errorClass describes how one sentinel error is surfaced. An empty
// Message means the error's own text is returned, which keeps driver
// constraint messages visible on conflict responses.
type errorClass struct {
	Status    int
	Message   string
	StopCodes []string
}

var errorClasses = map[error]errorClass{
	ErrInvalidRequest:   {Status: http.StatusBadRequest},
	ErrInvalidParameter: {Status: http.StatusBadRequest},
	storage.ErrConflict: {Status: http.StatusBadRequest},

	ErrUnauthorized: {
		Status:    http.StatusUnauthorized,
		Message:   "Authentication required",
		StopCodes: []string{"AUTH_REQUIRED"},
	},
	jwt.ErrNonValidToken: {
		Status:    http.StatusUnauthorized,
		Message:   "Invalid or expired authentication token",
		StopCodes: []string{"AUTH_INVALID_TOKEN"},
	},
	ErrInvalidCredentials: {
		Status:    http.StatusUnauthorized,
		Message:   "Invalid credentials provided",
		StopCodes: []string{"AUTH_INVALID_CREDENTIALS"},
	},

	ErrForbidden: {
		Status:    http.StatusForbidden,
		Message:   "Access denied",
		StopCodes: []string{"FORBIDDEN"},
	},

	storage.ErrNotFound: {Status: http.StatusNotFound},

	ErrInternalServer: {
		Status:  http.StatusInternalServerError,
		Message: "An internal error occurred",
	},
	storage.ErrConnection: {Status: http.StatusInternalServerError},
}

// classify resolves err to its class, unwrapping as needed. Unmatched
// errors are treated as internal.
func classify(err error) (errorClass, bool) {
	if class, ok := errorClasses[err]; ok {
		return class, true
	}
	for sentinel, class := range errorClasses {
		if errors.Is(err, sentinel) {
			return class, true
		}
	}
	return errorClass{Status: http.StatusInternalServerError}, false
}

// GetErrorStatus returns the HTTP status for err.
func GetErrorStatus(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	class, _ := classify(err)
	return class.Status
}

// GetErrorInfo returns the user-facing message and stop codes for err.
func GetErrorInfo(err error) ErrorInfo {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return ErrorInfo{
			Message:   httpErr.Message,
			StopCodes: httpErr.StopCodes,
		}
	}

	class, _ := classify(err)
	if class.Message == "" {
		return ErrorInfo{Message: err.Error(), StopCodes: class.StopCodes}
	}
	return ErrorInfo{Message: class.Message, StopCodes: class.StopCodes}
}

func GetErrorMessage(err error) string {
	return GetErrorInfo(err).Message
}
