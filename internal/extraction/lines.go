package extraction

import (
	"strings"
	"unicode"
)

// Line is one data line of the source listing.
// Number is 1-based and counts data lines only (headers and blanks are skipped).
type Line struct {
	Number int
	Text   string
}

// headerTokens are column labels that open a header row in the source listing.
// Matching is case-insensitive and requires the token to end at a word boundary.
var headerTokens = []string{
	"sno",
	"s.no",
	"s. no",
	"sr.no",
	"sr. no",
	"serial no",
	"name",
}

// DataLines trims raw lines, drops blank and header lines and numbers the rest.
func DataLines(raw []string) []Line {
	out := make([]Line, 0, len(raw))
	n := 0
	for _, text := range raw {
		text = strings.TrimSpace(text)
		if text == "" || IsHeader(text) {
			continue
		}
		n++
		out = append(out, Line{Number: n, Text: text})
	}
	return out
}

// IsHeader reports whether a trimmed line is a column header row.
// A line carrying an email address is never treated as a header.
func IsHeader(text string) bool {
	if emailPattern.MatchString(text) {
		return false
	}
	lower := strings.ToLower(text)
	for _, tok := range headerTokens {
		if !strings.HasPrefix(lower, tok) {
			continue
		}
		rest := lower[len(tok):]
		if rest == "" {
			return true
		}
		r := []rune(rest)[0]
		if !unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
