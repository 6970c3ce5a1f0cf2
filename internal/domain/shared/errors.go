package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Stable domain error codes
const (
	CodeNotFound             = "NOT_FOUND"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeInvalidTransition    = "INVALID_TRANSITION"
	CodeRegionMismatch       = "REGION_MISMATCH"
	CodeInvalidHotel         = "INVALID_HOTEL"
	CodeDuplicateNumber      = "DUPLICATE_NUMBER"
	CodeMissingFinanceData   = "MISSING_FINANCE_DATA"
	CodeNoDocumentGenerated  = "NO_DOCUMENT_GENERATED"
	CodeDocumentStoreFailure = "DOCUMENT_STORE_FAILURE"
	CodeConcurrencyConflict  = "CONCURRENCY_CONFLICT"
)

// Common domain errors
var (
	ErrNotFound             = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput         = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrRegionMismatch       = NewDomainError(CodeRegionMismatch, "Actor region does not match the request region")
	ErrInvalidHotel         = NewDomainError(CodeInvalidHotel, "Referenced hotel does not exist")
	ErrDuplicateNumber      = NewDomainError(CodeDuplicateNumber, "Purchase order number already exists")
	ErrMissingFinanceData   = NewDomainError(CodeMissingFinanceData, "Request has no finance data to reconcile")
	ErrNoDocumentGenerated  = NewDomainError(CodeNoDocumentGenerated, "No purchase order document has been generated for this request")
	ErrDocumentStoreFailure = NewDomainError(CodeDocumentStoreFailure, "Document store operation failed")
	ErrConcurrencyConflict  = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
)
