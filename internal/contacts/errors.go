package contacts

import "fmt"

// DataError is returned when a contact table is unreadable or lacks a required column.
// It is fatal for the run that loads the table.
type DataError struct {
	Path    string
	Message string
	Cause   error
}

func (e *DataError) Error() string {
	prefix := e.Message
	if e.Path != "" {
		prefix = fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", prefix, e.Cause)
	}
	return prefix
}

func (e *DataError) Unwrap() error {
	return e.Cause
}
