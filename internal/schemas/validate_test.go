package schemas

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schemadocs "github.com/jonathan/hr-outreach/schemas"
)

func validConfig() map[string]any {
	return map[string]any{
		"smtp_server":     "smtp.gmail.com",
		"smtp_port":       587,
		"email":           "me@example.com",
		"password":        "app-password",
		"daily_limit":     500,
		"holidays":        []string{"2026-10-02"},
		"delay_policy":    "adaptive",
		"schedule":        []string{"09:00", "14:30"},
		"country_code":    "IN",
		"sent_emails_log": "sent_emails.csv",
	}
}

func TestValidateValue_Config(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(doc map[string]any)
		wantField string
	}{
		{name: "valid", mutate: func(map[string]any) {}},
		{name: "missing password", mutate: func(doc map[string]any) { delete(doc, "password") }, wantField: "(root)"},
		{name: "port out of range", mutate: func(doc map[string]any) { doc["smtp_port"] = 70000 }, wantField: "smtp_port"},
		{name: "port as string", mutate: func(doc map[string]any) { doc["smtp_port"] = "587" }, wantField: "smtp_port"},
		{name: "holiday not a date", mutate: func(doc map[string]any) { doc["holidays"] = []string{"Diwali"} }, wantField: "holidays.0"},
		{name: "unknown delay policy", mutate: func(doc map[string]any) { doc["delay_policy"] = "random" }, wantField: "delay_policy"},
		{name: "slot past midnight", mutate: func(doc map[string]any) { doc["schedule"] = []string{"24:00"} }, wantField: "schedule.0"},
		{name: "three letter country", mutate: func(doc map[string]any) { doc["country_code"] = "IND" }, wantField: "country_code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validConfig()
			tt.mutate(doc)

			err := ValidateValue(schemadocs.Config, doc)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			fields := make([]string, 0, len(ve.Errors))
			for _, fe := range ve.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidateFileString_SentLog(t *testing.T) {
	tests := []struct {
		file      string
		wantValid bool
	}{
		{file: "valid.json", wantValid: true},
		{file: "missing_timestamp.json"},
		{file: "bad_timestamp.json"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			err := ValidateFileString(schemadocs.SentLog, filepath.Join("testdata", "sent_log", tt.file))
			if tt.wantValid {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			assert.True(t, errors.As(err, &ve), "got %v", err)
		})
	}
}

func TestValidateFileString_MissingFile(t *testing.T) {
	err := ValidateFileString(schemadocs.SentLog, filepath.Join(t.TempDir(), "sent.json"))
	require.Error(t, err)

	var ve *ValidationError
	assert.False(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "sent.json")
}

func TestValidateJSONString_LoadFailures(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		document string
	}{
		{name: "malformed schema", schema: `{"type": `, document: `{}`},
		{name: "malformed document", schema: schemadocs.SentLog, document: `[{"email": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(tt.schema, tt.document)

			var le *SchemaLoadError
			require.True(t, errors.As(err, &le), "got %v", err)
			assert.NotNil(t, errors.Unwrap(err))
		})
	}
}

func TestValidateValue_Unencodable(t *testing.T) {
	err := ValidateValue(schemadocs.Config, map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode document")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "smtp_port", Message: "Must be less than or equal to 65535"},
		{Field: "(root)", Message: "password is required"},
	}}

	want := "validation failed:\n" +
		"  1. smtp_port: Must be less than or equal to 65535\n" +
		"  2. (root): password is required\n"
	assert.Equal(t, want, err.Error())
}
