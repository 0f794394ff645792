// Package types provides type definitions for structured data used throughout the hr-outreach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Defaults used when a contact field cannot be recovered from the source listing.
const (
	DefaultName  = "HR Manager"
	DefaultTitle = "HR Representative"

	// FallbackHRName and FallbackCompany are used when personalizing a message
	// for a contact row whose optional columns were left blank.
	FallbackHRName  = "Hiring Manager"
	FallbackCompany = "Your Company"
)

// Contact is a single HR contact record.
// Email is the field of record; every other field always carries a value once
// produced by the extractor.
type Contact struct {
	Serial  string `json:"serial,omitempty"`
	Name    string `json:"hr_name"`
	Title   string `json:"position"`
	Company string `json:"company"`
	Email   string `json:"email"`
}

// EmailKey returns the case-insensitive identity of the contact.
func (c Contact) EmailKey() string {
	return EmailKey(c.Email)
}

// EmailKey normalizes an address for equality checks.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Profile holds the candidate details substituted into outgoing messages.
type Profile struct {
	CandidateName string `json:"candidate_name"`
	PhoneNumber   string `json:"phone_number"`
	EmailAddress  string `json:"email_address"`
}
