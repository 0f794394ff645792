package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "John.Smith@ACME.com", "john.smith@acme.com"},
		{"trims whitespace", "  careers@foo.io \t", "careers@foo.io"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EmailKey(tt.input))
		})
	}
}

func TestContact_JSONFieldNames(t *testing.T) {
	c := Contact{
		Serial:  "7",
		Name:    "Sarah Johnson",
		Title:   "Senior HR Manager",
		Company: "TechCorp Solutions",
		Email:   "sarah.johnson@techcorp.com",
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Sarah Johnson", raw["hr_name"])
	assert.Equal(t, "Senior HR Manager", raw["position"])
	assert.Equal(t, "TechCorp Solutions", raw["company"])
	assert.Equal(t, "sarah.johnson@techcorp.com", raw["email"])
	assert.Equal(t, "sarah.johnson@techcorp.com", c.EmailKey())
}
