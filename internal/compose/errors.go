package compose

import (
	"fmt"
	"strings"
)

// TemplateError reports every placeholder problem found when a template is loaded.
// A template with a TemplateError must not be used for a send run.
type TemplateError struct {
	Path    string
	Missing []string // recognized placeholders absent from the body
	Unknown []string // {identifier} tokens that are not recognized
}

func (e *TemplateError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing placeholders: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown placeholders: "+strings.Join(e.Unknown, ", "))
	}
	msg := strings.Join(parts, "; ")
	if e.Path != "" {
		return fmt.Sprintf("template %s: %s", e.Path, msg)
	}
	return "template: " + msg
}
