package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder values written into a generated config.
const (
	PlaceholderEmail    = "your_email@gmail.com"
	PlaceholderPassword = "your_app_password"
	PlaceholderPhone    = "+91-XXXXXXXXXX"
	placeholderName     = "Your Name"
)

// phonePatterns validate phone numbers per country code.
var phonePatterns = map[string]*regexp.Regexp{
	"IN": regexp.MustCompile(`^\+91[6-9]\d{9}$`),
}

// PlaceholderIssues lists settings that still hold generated placeholder
// values or are otherwise not ready for sending.
func (c *Config) PlaceholderIssues() []string {
	var issues []string
	if c.Email == "" || c.Email == PlaceholderEmail {
		issues = append(issues, "email is not set")
	}
	if c.Password == "" || c.Password == PlaceholderPassword {
		issues = append(issues, "password is not set (use an app password)")
	}
	if c.CandidateName == "" || c.CandidateName == placeholderName {
		issues = append(issues, "candidate_name is not set")
	}
	if c.PhoneNumber == "" || c.PhoneNumber == PlaceholderPhone {
		issues = append(issues, "phone_number is not set")
	} else if !ValidPhone(c.CountryCode, c.PhoneNumber) {
		issues = append(issues, fmt.Sprintf("phone_number %q is not valid for country %s", c.PhoneNumber, c.CountryCode))
	}
	return issues
}

// ValidPhone checks a phone number against the country's pattern after
// removing spaces and dashes. Countries without a pattern accept any number.
func ValidPhone(country, phone string) bool {
	re, ok := phonePatterns[strings.ToUpper(country)]
	if !ok {
		return true
	}
	return re.MatchString(NormalizePhone(phone))
}

// NormalizePhone strips spaces, dashes and parentheses.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}
