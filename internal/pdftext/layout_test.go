package pdftext

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cells lays out each string as monospace glyphs starting at x on baseline y.
func cells(y float64, parts ...any) []pdf.Text {
	var out []pdf.Text
	for i := 0; i+1 < len(parts); i += 2 {
		x := parts[i].(float64)
		for _, r := range parts[i+1].(string) {
			out = append(out, pdf.Text{FontSize: 10, X: x, Y: y, W: 6, S: string(r)})
			x += 6
		}
	}
	return out
}

func TestLayoutLines(t *testing.T) {
	tests := []struct {
		name   string
		glyphs []pdf.Text
		want   []string
	}{
		{
			name:   "empty",
			glyphs: nil,
			want:   []string{},
		},
		{
			name:   "column gap becomes two spaces",
			glyphs: cells(700, 72.0, "1", 120.0, "Asha Rao", 240.0, "asha@acme.com"),
			want:   []string{"1  Asha Rao  asha@acme.com"},
		},
		{
			name:   "word gap becomes one space",
			glyphs: cells(700, 72.0, "Acme", 99.0, "Corp"),
			want:   []string{"Acme Corp"},
		},
		{
			name: "rows ordered top to bottom",
			glyphs: append(
				cells(686, 72.0, "2", 120.0, "b@y.com"),
				cells(700, 72.0, "1", 120.0, "a@x.com")...,
			),
			want: []string{"1  a@x.com", "2  b@y.com"},
		},
		{
			name: "small baseline jitter stays on one row",
			glyphs: append(
				cells(700, 72.0, "1"),
				cells(699.2, 120.0, "a@x.com")...,
			),
			want: []string{"1  a@x.com"},
		},
		{
			name: "out of order glyphs are sorted by x",
			glyphs: append(
				cells(700, 240.0, "a@x.com"),
				cells(700, 72.0, "1")...,
			),
			want: []string{"1  a@x.com"},
		},
		{
			name:   "line break markers are dropped",
			glyphs: append(cells(700, 72.0, "abc"), pdf.Text{FontSize: 10, X: 90, Y: 700, S: "\n"}),
			want:   []string{"abc"},
		},
		{
			name:   "missing widths fall back to estimate",
			glyphs: []pdf.Text{{X: 72, Y: 700, S: "abc"}, {X: 140, Y: 700, S: "def"}},
			want:   []string{"abc  def"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layoutLines(tt.glyphs))
		})
	}
}

// tablePDF assembles a one-page PDF whose rows are positioned with Td and Tm
// operators the way spreadsheet exports write them.
func tablePDF(t *testing.T) []byte {
	t.Helper()

	widths := strings.TrimSpace(strings.Repeat("600 ", 95))
	content := strings.Join([]string{
		"BT /F1 10 Tf 72 700 Td (SNo) Tj 48 0 Td (Name) Tj 120 0 Td (Email) Tj 180 0 Td (Company) Tj ET",
		"BT /F1 10 Tf 72 686 Td (1) Tj 48 0 Td (Asha Rao) Tj 120 0 Td (asha@acme.com) Tj 180 0 Td (Acme Corp) Tj ET",
		"BT /F1 10 Tf 1 0 0 1 72 672 Tm (2) Tj 1 0 0 1 120 672 Tm (Ravi K) Tj 1 0 0 1 240 672 Tm (ravi@globex.in) Tj ET",
	}, "\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Courier /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [" + widths + "] >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content)+1, content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractText_PositionedRows(t *testing.T) {
	data := tablePDF(t)

	doc, err := ExtractText(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Pages)
	assert.Equal(t, []string{
		"SNo  Name  Email  Company",
		"1  Asha Rao  asha@acme.com  Acme Corp",
		"2  Ravi K  ravi@globex.in",
	}, doc.Lines())
}
