package extraction

import "github.com/jonathan/hr-outreach/internal/types"

// DedupeResult separates first occurrences from later repeats.
type DedupeResult struct {
	Unique     []types.Contact
	Duplicates []types.Contact
}

// Dedupe keeps the first contact for each case-insensitive email and
// preserves input order. Applying it to its own Unique output is a no-op.
func Dedupe(contacts []types.Contact) DedupeResult {
	seen := make(map[string]struct{}, len(contacts))
	res := DedupeResult{Unique: make([]types.Contact, 0, len(contacts))}
	for _, c := range contacts {
		key := c.EmailKey()
		if _, ok := seen[key]; ok {
			res.Duplicates = append(res.Duplicates, c)
			continue
		}
		seen[key] = struct{}{}
		res.Unique = append(res.Unique, c)
	}
	return res
}
