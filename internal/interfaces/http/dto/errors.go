package dto

import (
	"net/http"

	"github.com/hrs/backend/internal/domain/shared"
)

// Interface-level error codes for failures that never reach the domain
const (
	// ErrCodeBadRequest is used for malformed request bodies or parameters
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request binding validation fails
	ErrCodeValidation = "VALIDATION"
	// ErrCodeUnauthorized is used when the actor headers are missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the actor role does not allow the operation
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL"
)

// ErrorCodeHTTPStatus maps domain and interface error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Interface errors
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeInternal:     http.StatusInternalServerError,

	// Domain errors
	shared.CodeNotFound:            http.StatusNotFound,
	shared.CodeInvalidInput:        http.StatusBadRequest,
	shared.CodeInvalidTransition:   http.StatusUnprocessableEntity,
	shared.CodeRegionMismatch:      http.StatusForbidden,
	shared.CodeInvalidHotel:        http.StatusUnprocessableEntity,
	shared.CodeDuplicateNumber:     http.StatusConflict,
	shared.CodeMissingFinanceData:  http.StatusUnprocessableEntity,
	shared.CodeNoDocumentGenerated: http.StatusNotFound,
	shared.CodeDocumentStoreFailure: http.StatusBadGateway,
	shared.CodeConcurrencyConflict: http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
