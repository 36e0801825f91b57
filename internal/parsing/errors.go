package parsing

import "fmt"

// IngestError represents a failure to normalize an external structuring payload
type IngestError struct {
	Message string
	Cause   error
}

func (e *IngestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingest error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ingest error: %s", e.Message)
}

func (e *IngestError) Unwrap() error {
	return e.Cause
}

// FieldError represents a payload field that is missing or malformed
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Message)
}
