package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-outreach/internal/contacts"
	"github.com/jonathan/hr-outreach/internal/extraction"
	"github.com/jonathan/hr-outreach/internal/observability"
	"github.com/jonathan/hr-outreach/internal/pdftext"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract HR contacts from PDF or text listings",
	Long: "Extract HR contacts from one or more PDF (or plain text) listings. Every data line " +
		"yields a contact or a skipped-line diagnostic; duplicates by email are removed.",
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

var (
	extractOutFile     string
	extractSkippedFile string
)

func init() {
	extractCmd.Flags().StringVarP(&extractOutFile, "out", "o", "hr_contacts.csv", "Output contact table (.csv or .xlsx)")
	extractCmd.Flags().StringVar(&extractSkippedFile, "skipped", "skipped_lines.csv", "Write skipped lines here for manual review (empty to disable)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	docs, err := pdftext.ExtractFiles(cmd.Context(), args)
	if err != nil {
		return err
	}

	var lines []string
	for _, doc := range docs {
		logger.Debug("extract.document", "path", doc.Path, "pages", doc.Pages)
		lines = append(lines, doc.Lines()...)
	}

	res := extraction.Extract(lines)
	dd := extraction.Dedupe(res.Contacts)

	if err := contacts.Save(extractOutFile, dd.Unique); err != nil {
		return err
	}
	logger.Info("extract.saved", "path", extractOutFile, "contacts", len(dd.Unique), "skipped", len(res.Diagnostics))

	if extractSkippedFile != "" && len(res.Diagnostics) > 0 {
		if err := writeSkipped(extractSkippedFile, res.Diagnostics); err != nil {
			return err
		}
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintExtraction(res, dd)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Contacts: %s\n", extractOutFile)
	if extractSkippedFile != "" && len(res.Diagnostics) > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Skipped lines: %s\n", extractSkippedFile)
	}
	return nil
}

func writeSkipped(path string, diags []extraction.Diagnostic) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create skipped-lines file: %w", err)
	}
	if err := contacts.WriteDiagnosticsCSV(f, diags); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write skipped lines: %w", err)
	}
	return f.Close()
}
