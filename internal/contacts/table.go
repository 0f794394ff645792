// Package contacts reads and writes the HR contact table in CSV or XLSX form.
package contacts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/hr-outreach/internal/extraction"
	"github.com/jonathan/hr-outreach/internal/types"
)

// Column names of the contact table.
const (
	ColSerial   = "serial"
	ColCompany  = "company"
	ColHRName   = "hr_name"
	ColEmail    = "email"
	ColPosition = "position"
)

// Columns is the order used when writing tables.
var Columns = []string{ColSerial, ColCompany, ColHRName, ColEmail, ColPosition}

// Load reads a contact table, choosing the format from the file extension.
func Load(path string) ([]types.Contact, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadXLSX(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, &DataError{Path: path, Message: "failed to open contact table", Cause: err}
		}
		defer func() { _ = f.Close() }()
		out, err := ReadCSV(f)
		if err != nil {
			var de *DataError
			if errors.As(err, &de) {
				de.Path = path
			}
			return nil, err
		}
		return out, nil
	}
}

// ReadCSV reads a CSV contact table. The header row is required and must
// contain an email column; header names are matched case-insensitively.
func ReadCSV(r io.Reader) ([]types.Contact, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &DataError{Message: "failed to parse CSV", Cause: err}
	}
	return fromRows(records)
}

// fromRows converts a header row plus data rows into contacts.
// Rows without an email are skipped.
func fromRows(rows [][]string) ([]types.Contact, error) {
	if len(rows) == 0 {
		return nil, &DataError{Message: "contact table is empty"}
	}

	idx := headerIndex(rows[0])
	emailCol, ok := idx[ColEmail]
	if !ok {
		return nil, &DataError{Message: fmt.Sprintf("missing required column %q", ColEmail)}
	}

	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]types.Contact, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if emailCol >= len(row) || strings.TrimSpace(row[emailCol]) == "" {
			continue
		}
		out = append(out, types.Contact{
			Serial:  get(row, ColSerial),
			Name:    get(row, ColHRName),
			Title:   get(row, ColPosition),
			Company: get(row, ColCompany),
			Email:   get(row, ColEmail),
		})
	}
	return out, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

func toRow(c types.Contact) []string {
	return []string{c.Serial, c.Company, c.Name, c.Email, c.Title}
}

// WriteCSV writes contacts with a header row in Columns order.
func WriteCSV(w io.Writer, contacts []types.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, c := range contacts {
		if err := cw.Write(toRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes contacts to path as CSV or XLSX depending on the extension.
func Save(path string, contacts []types.Contact) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return saveXLSX(path, contacts)
	default:
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := WriteCSV(f, contacts); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return f.Close()
	}
}

// WriteDiagnosticsCSV writes skipped lines for manual review.
func WriteDiagnosticsCSV(w io.Writer, diags []extraction.Diagnostic) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"line", "reason", "hint", "content"}); err != nil {
		return err
	}
	for _, d := range diags {
		if err := cw.Write([]string{fmt.Sprint(d.Line), d.Reason, d.Hint, d.Content}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Merge appends contacts from extra whose email is not already in base.
// It returns the merged list and the extras that were skipped as duplicates.
func Merge(base, extra []types.Contact) (merged, skipped []types.Contact) {
	seen := make(map[string]struct{}, len(base)+len(extra))
	merged = make([]types.Contact, 0, len(base)+len(extra))
	for _, c := range base {
		seen[c.EmailKey()] = struct{}{}
		merged = append(merged, c)
	}
	for _, c := range extra {
		key := c.EmailKey()
		if _, ok := seen[key]; ok || key == "" {
			skipped = append(skipped, c)
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, c)
	}
	return merged, skipped
}
