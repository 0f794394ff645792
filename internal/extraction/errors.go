// Package extraction turns loosely tabular text lines into structured HR contact records.
package extraction

import "fmt"

// Reasons recorded on a Diagnostic.
const (
	ReasonNoEmail = "no email found"

	// HintBrokenEmail marks a line whose text looks like an address split apart by
	// PDF text extraction; such lines usually need a manual fix.
	HintBrokenEmail = "possible broken email"
)

// Diagnostic records why a data line did not produce a contact.
// Lines that fail are always routed here, never dropped.
type Diagnostic struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
	Reason  string `json:"reason"`
	Hint    string `json:"hint,omitempty"`
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Reason)
}

func invalidEmailReason(email string) string {
	return fmt.Sprintf("invalid email: %s", email)
}
