package pdftext

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Gaps and row tolerance are expressed in multiples of the font size.
const (
	columnGapEm     = 1.0
	wordGapEm       = 0.15
	rowToleranceEm  = 0.35
	defaultFontSize = 10.0
)

type glyphRow struct {
	y      float64
	glyphs []pdf.Text
}

// layoutLines rebuilds reading-order lines from positioned glyphs. Glyphs on
// the same baseline form one line, top of the page first. Cells separated by
// a wide horizontal gap are joined with two spaces so table columns survive.
func layoutLines(glyphs []pdf.Text) []string {
	visible := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S == "" || g.S == "\n" {
			continue
		}
		visible = append(visible, g)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].Y != visible[j].Y {
			return visible[i].Y > visible[j].Y
		}
		return visible[i].X < visible[j].X
	})

	var rows []glyphRow
	for _, g := range visible {
		if n := len(rows); n > 0 && rows[n-1].y-g.Y <= rowToleranceEm*fontSize(g) {
			rows[n-1].glyphs = append(rows[n-1].glyphs, g)
			continue
		}
		rows = append(rows, glyphRow{y: g.Y, glyphs: []pdf.Text{g}})
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row.glyphs, func(i, j int) bool {
			return row.glyphs[i].X < row.glyphs[j].X
		})
		if line := joinRow(row.glyphs); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// joinRow concatenates glyphs sorted left to right, inserting a space for a
// word gap and two spaces for a column gap.
func joinRow(glyphs []pdf.Text) string {
	var b strings.Builder
	for i, g := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			gap := g.X - (prev.X + glyphWidth(prev))
			size := fontSize(prev)
			spaced := strings.HasSuffix(prev.S, " ") || strings.HasPrefix(g.S, " ")
			switch {
			case gap >= columnGapEm*size:
				b.WriteString("  ")
			case gap >= wordGapEm*size && !spaced:
				b.WriteString(" ")
			}
		}
		b.WriteString(g.S)
	}
	return strings.TrimSpace(b.String())
}

func fontSize(g pdf.Text) float64 {
	if g.FontSize > 0 {
		return g.FontSize
	}
	return defaultFontSize
}

// glyphWidth falls back to half an em per rune when the font carries no widths.
func glyphWidth(g pdf.Text) float64 {
	if g.W > 0 {
		return g.W
	}
	return float64(utf8.RuneCountInString(g.S)) * fontSize(g) * 0.5
}
