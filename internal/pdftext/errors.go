package pdftext

import "fmt"

// ReadError is returned when a source document cannot be opened or decoded.
type ReadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Path != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Cause)
		}
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
