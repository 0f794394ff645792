package extraction

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/hr-outreach/internal/types"
)

var emailPattern = regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`)

// brokenEmailMarkers are artefacts left when PDF extraction splits an address.
var brokenEmailMarkers = []string{"@ ", " @", ".c om", ". com"}

// Result is the outcome of extracting a batch of lines.
type Result struct {
	Contacts    []types.Contact
	Diagnostics []Diagnostic
	DataLines   int
}

// Extract parses every data line in raw. Each line produces exactly one
// contact or one diagnostic.
func Extract(raw []string) Result {
	lines := DataLines(raw)
	res := Result{DataLines: len(lines)}
	for _, line := range lines {
		c, diag := ParseLine(line)
		if diag != nil {
			res.Diagnostics = append(res.Diagnostics, *diag)
			continue
		}
		res.Contacts = append(res.Contacts, c)
	}
	return res
}

// ParseLine extracts one contact from a data line, or a diagnostic
// explaining why it could not.
func ParseLine(line Line) (types.Contact, *Diagnostic) {
	email := emailPattern.FindString(line.Text)
	if email == "" {
		return types.Contact{}, &Diagnostic{
			Line:    line.Number,
			Content: line.Text,
			Reason:  ReasonNoEmail,
			Hint:    brokenEmailHint(line.Text),
		}
	}

	segs := segment(strings.ReplaceAll(line.Text, email, emailSentinel))
	serial, segs := takeSerial(segs)

	var pre, post []string
	if at := indexOf(segs, emailSentinel); at >= 0 {
		pre = withoutSentinel(segs[:at])
		post = withoutSentinel(segs[at+1:])
	}

	name, title := AssignNameTitle(pre)
	name = trimLeadingDigits(name)
	title = trimLeadingDigits(title)
	company := trimLeadingDigits(strings.Join(post, " "))

	if name == "" {
		name = types.DefaultName
	}
	if title == "" {
		title = types.DefaultTitle
	}
	if company == "" {
		company = placeholderCompany(serial, line.Number)
	}

	if !plausibleEmail(email) {
		return types.Contact{}, &Diagnostic{
			Line:    line.Number,
			Content: line.Text,
			Reason:  invalidEmailReason(email),
		}
	}

	return types.Contact{
		Serial:  serial,
		Name:    name,
		Title:   title,
		Company: company,
		Email:   email,
	}, nil
}

// placeholderCompany is used when no company text follows the email.
func placeholderCompany(serial string, lineNumber int) string {
	if serial != "" {
		return "Company_" + serial
	}
	return fmt.Sprintf("Company_%d", lineNumber)
}

// plausibleEmail requires an "@" with a "." somewhere after it.
func plausibleEmail(email string) bool {
	at := strings.Index(email, "@")
	return at >= 0 && strings.Contains(email[at+1:], ".")
}

func brokenEmailHint(text string) string {
	for _, m := range brokenEmailMarkers {
		if strings.Contains(text, m) {
			return HintBrokenEmail
		}
	}
	return ""
}
