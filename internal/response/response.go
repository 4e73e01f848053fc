package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error codes used across the service layer
const (
	ErrCodeValidation   = "VALIDATION_FAILED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// AppError is the error type returned by the service layer.
// Validation failures carry the violated fields and the rejected
// changes so the caller can re-render a form.
type AppError struct {
	Code    string
	Message string
	Details string
	Fields  map[string][]string
	Changes map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewValidationError creates a VALIDATION_FAILED AppError carrying the
// field violations and the rejected changeset state
func NewValidationError(message string, fields map[string][]string, changes map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Fields:  fields,
		Changes: changes,
	}
}

// SuccessResponse is the envelope for successful responses
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for error responses
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   interface{} `json:"error,omitempty"`
}

// ErrorPayload is the error body inside ErrorResponse
type ErrorPayload struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Fields  map[string][]string    `json:"fields,omitempty"`
	Changes map[string]interface{} `json:"changes,omitempty"`
}

// SendSuccess writes a success envelope with the given status and data
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// SendError writes an error envelope with the given status, code and message
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error: ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// SendAppError writes an error envelope preserving field violations and
// rejected changes from the AppError
func SendAppError(c *gin.Context, status int, err *AppError) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error: ErrorPayload{
			Code:    err.Code,
			Message: err.Message,
			Fields:  err.Fields,
			Changes: err.Changes,
		},
	})
}

// SendValidationError writes an error envelope from raw field violations
func SendValidationError(c *gin.Context, status int, message string, fields map[string][]string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error: ErrorPayload{
			Code:    ErrCodeValidation,
			Message: message,
			Fields:  fields,
		},
	})
}
