package mailer

import "fmt"

// TransportError is returned when connecting, authenticating or sending fails.
type TransportError struct {
	Op      string // "connect", "tls", "auth", "send"
	Attempt int    // set by callers that retry
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Attempt > 0 {
		return fmt.Sprintf("smtp %s failed (attempt %d): %v", e.Op, e.Attempt, e.Cause)
	}
	return fmt.Sprintf("smtp %s failed: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
