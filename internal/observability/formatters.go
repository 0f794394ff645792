// Package observability provides formatted output and logging for the outreach CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/hr-outreach/internal/campaign"
	"github.com/jonathan/hr-outreach/internal/compose"
	"github.com/jonathan/hr-outreach/internal/extraction"
	"github.com/jonathan/hr-outreach/internal/sentlog"
	"github.com/jonathan/hr-outreach/internal/types"
	"github.com/jonathan/hr-outreach/internal/util"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxExamples is the number of sample lines shown per diagnostic group
	maxExamples = 3
)

// Printer handles formatted output for CLI summaries
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printBanner prints a single-line box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBanner(text string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, text)
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintExtraction outputs the extraction summary: counts, skipped lines grouped
// by reason with a few examples each, and duplicate removals.
func (p *Printer) PrintExtraction(res extraction.Result, dd extraction.DedupeResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Data lines:     %d\n", res.DataLines))
	sb.WriteString(fmt.Sprintf("Contacts found: %d\n", len(res.Contacts)))
	sb.WriteString(fmt.Sprintf("Duplicates:     %d\n", len(dd.Duplicates)))
	sb.WriteString(fmt.Sprintf("Unique:         %d\n", len(dd.Unique)))
	sb.WriteString(fmt.Sprintf("Skipped:        %d\n", len(res.Diagnostics)))

	if broken := extraction.BrokenEmailCount(res.Diagnostics); broken > 0 {
		sb.WriteString(fmt.Sprintf("Possibly broken emails: %d\n", broken))
	}

	for _, g := range extraction.GroupDiagnostics(res.Diagnostics) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s (%d):\n", reasonLabel(g.Reason), len(g.Items)))
		count := min(len(g.Items), maxExamples)
		for i := 0; i < count; i++ {
			d := g.Items[i]
			sb.WriteString(fmt.Sprintf("  • line %d: %s\n", d.Line, d.Content))
		}
		if len(g.Items) > maxExamples {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(g.Items)-maxExamples))
		}
	}

	p.printBox("EXTRACTION SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// reasonLabel collapses per-address invalid-email reasons into one label.
func reasonLabel(reason string) string {
	if strings.HasPrefix(reason, "invalid email: ") {
		return "invalid email"
	}
	return reason
}

// PrintBatchReport outputs the result of a send run.
func (p *Printer) PrintBatchReport(r campaign.BatchReport) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:        %s\n", r.RunID))
	sb.WriteString(fmt.Sprintf("Queued:     %d\n", r.Queued))
	sb.WriteString(fmt.Sprintf("Sent:       %d\n", r.Sent))
	sb.WriteString(fmt.Sprintf("Failed:     %d\n", r.Failed))
	sb.WriteString(fmt.Sprintf("Today:      %d/%d\n", r.SentToday, r.DailyLimit))
	sb.WriteString(fmt.Sprintf("Duration:   %s\n", r.Duration.Round(time.Second)))
	if r.WindowWaits > 0 {
		sb.WriteString(fmt.Sprintf("Waited:     %d times for business hours\n", r.WindowWaits))
	}
	if r.LogErrors > 0 {
		sb.WriteString(fmt.Sprintf("⚠ %d sends could not be written to the sent log\n", r.LogErrors))
	}

	switch {
	case r.Cancelled:
		sb.WriteString("\nStopped: interrupted\n")
	case r.LimitReached:
		sb.WriteString("\nStopped: daily limit reached\n")
	case r.NoOpenWindow:
		sb.WriteString("\nStopped: sending window never opens\n")
	}

	if len(r.Failures) > 0 {
		sb.WriteString("\nFailures:\n")
		count := min(len(r.Failures), maxItemsToShow)
		for i := 0; i < count; i++ {
			f := r.Failures[i]
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", f.Email, util.RedactSecrets(f.Err.Error())))
		}
		if len(r.Failures) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Failures)-maxItemsToShow))
		}
	}

	p.printBox("SEND SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStats outputs sent-log statistics.
func (p *Printer) PrintStats(st sentlog.Stats, dailyLimit, pending int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total sent:  %d\n", st.Total))
	sb.WriteString(fmt.Sprintf("Recipients:  %d\n", st.Recipients))
	sb.WriteString(fmt.Sprintf("Today:       %d/%d\n", st.Today, dailyLimit))
	sb.WriteString(fmt.Sprintf("Pending:     %d\n", pending))
	if !st.Last.IsZero() {
		sb.WriteString(fmt.Sprintf("Last sent:   %s\n", st.Last.Local().Format("2006-01-02 15:04:05")))
	}
	if len(st.Days) > 0 {
		sb.WriteString("\nRecent days:\n")
		for _, d := range st.Days {
			sb.WriteString(fmt.Sprintf("  %s  %d\n", d.Day, d.Count))
		}
	}
	p.printBox("SENT LOG", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSetupIssues outputs configuration problems, or a ready banner when there are none.
func (p *Printer) PrintSetupIssues(issues []string) {
	if len(issues) == 0 {
		p.printBanner("✅ CONFIGURATION READY")
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(issues)))
	for _, issue := range issues {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", issue))
	}
	p.printBox("SETUP CHECK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPreview outputs a personalized message for review.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPreview(c types.Contact, msg compose.Message) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("To:       %s <%s>\n", c.Name, c.Email))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", c.Company))
	sb.WriteString(fmt.Sprintf("Subject:  %s", msg.Subject))
	p.printBox("MESSAGE PREVIEW", sb.String())
	fmt.Fprintln(p.out, msg.Text)
}
