// Package compose builds personalized outreach messages from an HTML template.
package compose

import (
	_ "embed"
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"

	"github.com/jonathan/hr-outreach/internal/types"
)

// Recognized placeholder names.
const (
	PlaceholderCompany   = "company_name"
	PlaceholderHRName    = "hr_name"
	PlaceholderCandidate = "candidate_name"
	PlaceholderPhone     = "phone_number"
	PlaceholderEmail     = "email_address"
)

// Placeholders lists every recognized placeholder. A body must use all of them.
var Placeholders = []string{
	PlaceholderCompany,
	PlaceholderHRName,
	PlaceholderCandidate,
	PlaceholderPhone,
	PlaceholderEmail,
}

// DefaultSubject is used when no subject template is configured.
const DefaultSubject = "Application for Developer Role – {candidate_name}"

// DefaultTemplate is the body written by setup.
//
//go:embed default_template.html
var DefaultTemplate string

var (
	placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)
	generatedCompany   = regexp.MustCompile(`^Company_\d+$`)
)

// Template is a validated message template.
type Template struct {
	Path    string
	Body    string
	Subject string
}

// Message is a personalized message ready for MIME encoding.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// Parse validates a body and subject. All recognized placeholders must appear
// in the body and no unrecognized {identifier} token may appear in either.
func Parse(body, subject string) (*Template, error) {
	if strings.TrimSpace(subject) == "" {
		subject = DefaultSubject
	}

	used := make(map[string]bool)
	var unknown []string
	for i, src := range []string{body, subject} {
		for _, m := range placeholderPattern.FindAllStringSubmatch(src, -1) {
			name := m[1]
			if !isPlaceholder(name) {
				if !contains(unknown, name) {
					unknown = append(unknown, name)
				}
				continue
			}
			if i == 0 {
				used[name] = true
			}
		}
	}

	var missing []string
	for _, p := range Placeholders {
		if !used[p] {
			missing = append(missing, p)
		}
	}

	if len(missing) > 0 || len(unknown) > 0 {
		return nil, &TemplateError{Missing: missing, Unknown: unknown}
	}
	return &Template{Body: body, Subject: subject}, nil
}

// LoadTemplate reads and validates a template file.
func LoadTemplate(path, subject string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	t, err := Parse(string(data), subject)
	if err != nil {
		if te, ok := err.(*TemplateError); ok {
			te.Path = path
		}
		return nil, err
	}
	t.Path = path
	return t, nil
}

// Values returns the substitution values for a contact, applying fallbacks
// for missing company and HR name.
func Values(c types.Contact, p types.Profile) map[string]string {
	company := strings.TrimSpace(c.Company)
	if company == "" || generatedCompany.MatchString(company) {
		company = types.FallbackCompany
	}
	hrName := strings.TrimSpace(c.Name)
	if hrName == "" {
		hrName = types.FallbackHRName
	}
	return map[string]string{
		PlaceholderCompany:   company,
		PlaceholderHRName:    hrName,
		PlaceholderCandidate: p.CandidateName,
		PlaceholderPhone:     p.PhoneNumber,
		PlaceholderEmail:     p.EmailAddress,
	}
}

// Personalize fills the template for one contact. Values are HTML-escaped in
// the body; Text is the plain-text rendering of the filled body.
func (t *Template) Personalize(c types.Contact, p types.Profile) (Message, error) {
	values := Values(c, p)

	escaped := make(map[string]string, len(values))
	for k, v := range values {
		escaped[k] = html.EscapeString(v)
	}

	body := Format(t.Body, escaped)
	text, err := PlainText(body)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Subject: Format(t.Subject, values),
		HTML:    body,
		Text:    text,
	}, nil
}

// Format replaces {name} placeholders with values from data.
// Tokens without a value are left as they are.
func Format(template string, data map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(tok string) string {
		if v, ok := data[tok[1:len(tok)-1]]; ok {
			return v
		}
		return tok
	})
}

func isPlaceholder(name string) bool {
	return contains(Placeholders, name)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
