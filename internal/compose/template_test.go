package compose

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hr-outreach/internal/types"
)

const fullBody = "<p>Dear {hr_name} at {company_name},</p><p>{candidate_name} {phone_number} {email_address}</p>"

var profile = types.Profile{CandidateName: "Jo Dev", PhoneNumber: "+919876543210", EmailAddress: "jo@dev.io"}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		subject     string
		wantMissing []string
		wantUnknown []string
	}{
		{
			name: "all placeholders",
			body: fullBody,
		},
		{
			name:        "missing placeholders listed together",
			body:        "Hello {hr_name}",
			wantMissing: []string{PlaceholderCompany, PlaceholderCandidate, PlaceholderPhone, PlaceholderEmail},
		},
		{
			name:        "unknown token in body",
			body:        fullBody + "{salary}{salary}",
			wantUnknown: []string{"salary"},
		},
		{
			name:        "unknown token in subject",
			body:        fullBody,
			subject:     "Hi from {team}",
			wantUnknown: []string{"team"},
		},
		{
			name:        "subject placeholders do not satisfy the body",
			body:        "<p>{hr_name} {company_name} {phone_number} {email_address}</p>",
			subject:     "{candidate_name}",
			wantMissing: []string{PlaceholderCandidate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := Parse(tt.body, tt.subject)
			if tt.wantMissing == nil && tt.wantUnknown == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.body, tpl.Body)
				return
			}
			var te *TemplateError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.wantMissing, te.Missing)
			assert.Equal(t, tt.wantUnknown, te.Unknown)
		})
	}
}

func TestParse_DefaultSubject(t *testing.T) {
	tpl, err := Parse(fullBody, "  ")
	require.NoError(t, err)
	assert.Equal(t, DefaultSubject, tpl.Subject)
}

func TestDefaultTemplateIsValid(t *testing.T) {
	_, err := Parse(DefaultTemplate, "")
	assert.NoError(t, err)
}

func TestTemplateError_Error(t *testing.T) {
	err := &TemplateError{Path: "t.html", Missing: []string{"hr_name"}, Unknown: []string{"x"}}
	assert.Equal(t, "template t.html: missing placeholders: hr_name; unknown placeholders: x", err.Error())
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.html")
	bad := filepath.Join(dir, "bad.html")
	require.NoError(t, os.WriteFile(good, []byte(fullBody), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("{hr_name}"), 0o644))

	tpl, err := LoadTemplate(good, "")
	require.NoError(t, err)
	assert.Equal(t, good, tpl.Path)

	_, err = LoadTemplate(bad, "")
	var te *TemplateError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, bad, te.Path)

	_, err = LoadTemplate(filepath.Join(dir, "missing.html"), "")
	assert.Error(t, err)
}

func TestPersonalize(t *testing.T) {
	tpl, err := Parse(fullBody, "")
	require.NoError(t, err)

	msg, err := tpl.Personalize(types.Contact{Name: "Ann", Company: "AT&T", Email: "ann@att.com"}, profile)
	require.NoError(t, err)
	assert.Equal(t, "Application for Developer Role – Jo Dev", msg.Subject)
	assert.Contains(t, msg.HTML, "Dear Ann at AT&amp;T,")
	assert.Equal(t, "Dear Ann at AT&T,\nJo Dev +919876543210 jo@dev.io", msg.Text)
}

func TestPersonalize_Fallbacks(t *testing.T) {
	tpl, err := Parse(fullBody, "")
	require.NoError(t, err)

	tests := []struct {
		name    string
		contact types.Contact
		want    string
	}{
		{"empty fields", types.Contact{Email: "x@y.io"}, "Dear Hiring Manager at Your Company,"},
		{"generated company", types.Contact{Name: "Ann", Company: "Company_12", Email: "x@y.io"}, "Dear Ann at Your Company,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := tpl.Personalize(tt.contact, profile)
			require.NoError(t, err)
			assert.Contains(t, msg.Text, tt.want)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "Hi Ann, {unset}", Format("Hi {hr_name}, {unset}", map[string]string{"hr_name": "Ann"}))
	assert.Equal(t, "p{color:red}", Format("p{color:red}", map[string]string{"color": "x"}))
}
