// Package response writes the JSON envelope shared by every API endpoint.
package response

import (
	"net/http"

	deliverycontext "bathroom/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// ApiResponse is the envelope of every response body.
type ApiResponse struct {
	Success   bool              `json:"success"`
	Data      any               `json:"data,omitempty"`
	Error     string            `json:"error,omitempty"`  // User-friendly error message
	Code      string            `json:"code,omitempty"`   // Machine-readable error code, e.g. "VALIDATION_FAILED"
	Fields    map[string]string `json:"fields,omitempty"` // Per-field violations, 400 only
	RequestID string            `json:"requestId,omitempty"`
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, ApiResponse{
		Success:   true,
		Data:      data,
		RequestID: deliverycontext.GetRequestID(c),
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string) error {
	return c.JSON(statusCode, ApiResponse{
		Success:   false,
		Error:     message,
		Code:      errorCode,
		RequestID: deliverycontext.GetRequestID(c),
	})
}

// ValidationFailed returns a 400 error listing every field violation
func ValidationFailed(c echo.Context, errorCode string, message string, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, ApiResponse{
		Success:   false,
		Error:     message,
		Code:      errorCode,
		Fields:    fields,
		RequestID: deliverycontext.GetRequestID(c),
	})
}

// BindingError returns a binding error response
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message)
}
