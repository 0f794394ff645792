// Package util holds small helpers shared by the CLI and its packages.
package util

import (
	"regexp"
	"strings"
)

var (
	// SMTP AUTH payloads echoed back in server errors.
	authPlainRe = regexp.MustCompile(`(?i)\bAUTH\s+(PLAIN|LOGIN)\s+[^\s"']+`)

	// Common key=value formats that sometimes leak in error strings.
	passwordKVRe = regexp.MustCompile(`(?i)\b(password|passwd|app[_-]?password|outreach[_-]?password)\b\s*[:=]\s*[^\s"',]+`)

	// database URLs with inline credentials
	urlUserInfoRe = regexp.MustCompile(`([a-z][a-z0-9+.-]*://[^:/\s@]+):[^@\s]+@`)
)

// RedactSecrets removes obvious secret-bearing substrings from error and log strings.
// Any extra literal secrets, such as the configured SMTP password, are masked too.
func RedactSecrets(s string, secrets ...string) string {
	if s == "" {
		return ""
	}
	out := s
	for _, secret := range secrets {
		if len(secret) >= 4 {
			out = strings.ReplaceAll(out, secret, "<redacted>")
		}
	}
	out = authPlainRe.ReplaceAllString(out, "AUTH $1 <redacted>")
	out = passwordKVRe.ReplaceAllString(out, "<redacted_kv>")
	out = urlUserInfoRe.ReplaceAllString(out, "$1:<redacted>@")
	return strings.TrimSpace(out)
}
