package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/hr-outreach/internal/campaign"
	"github.com/jonathan/hr-outreach/internal/compose"
	"github.com/jonathan/hr-outreach/internal/extraction"
	"github.com/jonathan/hr-outreach/internal/sentlog"
	"github.com/jonathan/hr-outreach/internal/types"
)

func TestPrintExtraction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	res := extraction.Result{
		DataLines: 7,
		Contacts: []types.Contact{
			{Email: "a@x.com"}, {Email: "b@x.com"}, {Email: "A@x.com"},
		},
		Diagnostics: []extraction.Diagnostic{
			{Line: 2, Content: "line two", Reason: extraction.ReasonNoEmail},
			{Line: 3, Content: "line three", Reason: extraction.ReasonNoEmail, Hint: extraction.HintBrokenEmail},
			{Line: 4, Content: "line four", Reason: extraction.ReasonNoEmail},
			{Line: 5, Content: "line five", Reason: extraction.ReasonNoEmail},
		},
	}
	dd := extraction.Dedupe(res.Contacts)

	p.PrintExtraction(res, dd)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTION SUMMARY")
	assert.Contains(t, output, "Contacts found: 3")
	assert.Contains(t, output, "Duplicates:     1")
	assert.Contains(t, output, "Possibly broken emails: 1")
	assert.Contains(t, output, "no email found (4):")
	assert.Contains(t, output, "line 4: line four")
	assert.NotContains(t, output, "line five")
	assert.Contains(t, output, "... and 1 more")
}

func TestPrintExtraction_InvalidEmailsGrouped(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	res := extraction.Result{Diagnostics: []extraction.Diagnostic{
		{Line: 1, Content: "x", Reason: "invalid email: a@b"},
	}}
	p.PrintExtraction(res, extraction.DedupeResult{})

	assert.Contains(t, buf.String(), "invalid email (1):")
}

func TestPrintBatchReport(t *testing.T) {
	tests := []struct {
		name   string
		report campaign.BatchReport
		want   []string
	}{
		{
			name:   "limit reached",
			report: campaign.BatchReport{RunID: "run-1", Queued: 5, Sent: 3, SentToday: 10, DailyLimit: 10, LimitReached: true},
			want:   []string{"SEND SUMMARY", "run-1", "Sent:       3", "Today:      10/10", "daily limit reached"},
		},
		{
			name: "failures listed",
			report: campaign.BatchReport{
				Failed:   1,
				Failures: []campaign.Failure{{Email: "b@x.com", Err: errors.New("550 rejected")}},
				Duration: 90 * time.Second,
			},
			want: []string{"Failed:     1", "b@x.com: 550 rejected", "1m30s"},
		},
		{
			name:   "window never opens",
			report: campaign.BatchReport{WindowWaits: 1, NoOpenWindow: true},
			want:   []string{"Waited:     1 times for business hours", "sending window never opens"},
		},
		{
			name:   "cancelled",
			report: campaign.BatchReport{Cancelled: true, LogErrors: 2},
			want:   []string{"interrupted", "2 sends could not be written"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintBatchReport(tt.report)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	st := sentlog.Stats{
		Total:      4,
		Today:      1,
		Recipients: 4,
		Last:       time.Date(2026, 10, 12, 10, 0, 0, 0, time.Local),
		Days:       []sentlog.DayCount{{Day: "2026-10-12", Count: 1}, {Day: "2026-10-11", Count: 3}},
	}
	NewPrinter(&buf).PrintStats(st, 500, 12)
	output := buf.String()

	assert.Contains(t, output, "SENT LOG")
	assert.Contains(t, output, "Today:       1/500")
	assert.Contains(t, output, "Pending:     12")
	assert.Contains(t, output, "2026-10-12 10:00:00")
	assert.Contains(t, output, "2026-10-11  3")
}

func TestPrintSetupIssues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSetupIssues(nil)
	assert.Contains(t, buf.String(), "CONFIGURATION READY")

	buf.Reset()
	p.PrintSetupIssues([]string{"email is not set", "password is not set"})
	assert.Contains(t, buf.String(), "Found 2 issues")
	assert.Contains(t, buf.String(), "⚠ email is not set")
}

func TestPrintPreview(t *testing.T) {
	var buf bytes.Buffer
	c := types.Contact{Name: "Jane Doe", Company: "Acme", Email: "jane@acme.com"}
	NewPrinter(&buf).PrintPreview(c, compose.Message{Subject: "Hello", Text: "Dear Jane Doe"})

	output := buf.String()
	assert.Contains(t, output, "MESSAGE PREVIEW")
	assert.Contains(t, output, "Jane Doe <jane@acme.com>")
	assert.True(t, strings.HasSuffix(output, "Dear Jane Doe\n"))
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.printBox("TITLE", strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
	assert.Contains(t, buf.String(), "...")
}
