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

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	// ErrInvalidStatementFormat signals that statement content carries no
	// recognizable transaction marker. Callers treat it as an empty import,
	// never as a fatal failure.
	ErrInvalidStatementFormat = NewDomainError("INVALID_FORMAT", "Statement content has no recognizable format marker")

	// ErrConfigurationError signals that configured rates cannot produce a
	// valid price (tax + commission + margin >= 100%).
	ErrConfigurationError = NewDomainError("CONFIGURATION_ERROR", "Financial rates configuration is unusable")

	// ErrDuplicateCommission signals that a caller attempted to create a
	// commission entry of a kind that already exists for the order. This is
	// an invariant violation and propagates as a hard failure.
	ErrDuplicateCommission = NewDomainError("DUPLICATE_COMMISSION", "Commission entry of this kind already exists for the order")
)
