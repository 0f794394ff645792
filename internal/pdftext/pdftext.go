// Package pdftext extracts line-oriented plain text from PDF and text sources.
package pdftext

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"
)

// maxParallel bounds concurrent document decodes in ExtractFiles.
const maxParallel = 4

// Document is the text of one source file.
type Document struct {
	Path  string
	Pages int
	Text  string
}

// Lines returns the document text split into lines.
func (d Document) Lines() []string {
	return SplitLines(d.Text)
}

// ExtractText reads every page of a PDF and rebuilds its lines from glyph
// positions, so rows placed with Td or Tm come out one per line.
// Pages without content are skipped.
func ExtractText(r io.ReaderAt, size int64) (doc Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &ReadError{Message: "malformed PDF", Cause: fmt.Errorf("%v", rec)}
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return Document{}, &ReadError{Message: "failed to open PDF", Cause: err}
	}

	var text strings.Builder
	doc.Pages = reader.NumPage()
	for i := 1; i <= doc.Pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, line := range layoutLines(page.Content().Text) {
			text.WriteString(line)
			text.WriteString("\n")
		}
	}
	doc.Text = text.String()
	return doc, nil
}

// ExtractFile reads a single source. Files ending in .txt are read as-is;
// anything else is decoded as PDF.
func ExtractFile(path string) (Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		data, err := os.ReadFile(path)
		if err != nil {
			return Document{}, &ReadError{Path: path, Message: "failed to read file", Cause: err}
		}
		return Document{Path: path, Pages: 1, Text: string(data)}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Document{}, &ReadError{Path: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return Document{}, &ReadError{Path: path, Message: "failed to stat file", Cause: err}
	}

	doc, err := ExtractText(f, info.Size())
	if err != nil {
		if re, ok := err.(*ReadError); ok {
			re.Path = path
		}
		return Document{}, err
	}
	doc.Path = path
	return doc, nil
}

// ExtractFiles reads several sources concurrently. Results keep the order of
// paths; the first failure cancels the rest.
func ExtractFiles(ctx context.Context, paths []string) ([]Document, error) {
	docs := make([]Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := ExtractFile(path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// SplitLines normalizes line endings and splits text into lines.
// Blank lines are kept so callers can count them or not.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
