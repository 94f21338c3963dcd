package primary

// ValidationError reports malformed input rejected before any write occurs.
// Transports map it to a 400-class response; everything else from the
// services is either a not-found sentinel (see ports/secondary) or a storage
// failure passed through unchanged.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError wraps a guard reason as a ValidationError.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
