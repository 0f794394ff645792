package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHeader(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"SNo Name Designation Email Company", true},
		{"S.No  Name  Email", true},
		{"Name  Title  Email", true},
		{"name", true},
		{"Nameeta Rao Recruiter", false},
		{"Snowden Recruiter", false},
		{"Name Recruiter name@acme.com Acme", false},
		{"1 John Smith john@acme.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHeader(tt.text))
		})
	}
}

func TestDataLines(t *testing.T) {
	raw := []string{"  SNo Name Email ", "", "  first@a.com  ", "\t", "second@b.com"}

	got := DataLines(raw)
	assert.Equal(t, []Line{
		{Number: 1, Text: "first@a.com"},
		{Number: 2, Text: "second@b.com"},
	}, got)
}
