package domain

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// Common error types for RFC 7807 Problem Details
const (
	ErrorTypeValidation   = "https://fmportal.app/errors/validation"
	ErrorTypeBadRequest   = "https://fmportal.app/errors/bad-request"
	ErrorTypeUnauthorized = "https://fmportal.app/errors/unauthorized"
	ErrorTypeForbidden    = "https://fmportal.app/errors/forbidden"
	ErrorTypeNotFound     = "https://fmportal.app/errors/not-found"
	ErrorTypeConflict     = "https://fmportal.app/errors/conflict"
	ErrorTypeInternal     = "https://fmportal.app/errors/internal"
	ErrorTypeUnavailable  = "https://fmportal.app/errors/unavailable"
)

// ValidationMessages provides human-readable validation error messages
// These map validator tags to user-friendly messages
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"gte":      "Must be greater than or equal to minimum value",
	"lte":      "Must be less than or equal to maximum value",
	"oneof":    "Must be one of the allowed values",
	"datetime": "Must be a valid date",
	"numeric":  "Must be a numeric value",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}
