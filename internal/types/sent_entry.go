package types

import "time"

// SentEntry is one row of the append-only sent log.
// The set of Email values across all entries is the exclusion set for future sends.
type SentEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	HRName    string    `json:"hr_name"`
	Subject   string    `json:"subject"`
	RunID     string    `json:"run_id,omitempty"`
}
