// Package native extracts tables directly from a PDF's text layer, without
// rasterization or OCR.
//
// Two backends are provided, mirroring the two classic approaches to
// borderless table recovery:
//
//   - [RowsExtractor] groups each visual row's words into cells by
//     horizontal gap and accumulates contiguous multi-cell rows
//     ([model.SourceTextRows]).
//   - [ColumnGridExtractor] first infers shared column boundaries from word
//     positions across rows, then slots each row's words into that grid
//     ([model.SourceColumnGrid]).
//
// Both operate on the embedded text layer via ledongthuc/pdf and therefore
// find nothing in purely scanned documents; the OCR pipeline covers those.
// Backend failures are reported as errors and the caller is expected to
// degrade to an empty table set rather than abort the conversion.
package native

import (
	"strings"
)

// span is one positioned piece of text on a visual row.
type span struct {
	x        float64
	w        float64
	fontSize float64
	text     string
}

// end returns the x coordinate of the span's right edge.
func (s span) end() float64 {
	return s.x + s.w
}

// cell is a group of adjacent spans forming one table cell.
type cell struct {
	x    float64
	text string
}

// groupCells merges a row's spans (already sorted left to right) into
// cells. A horizontal gap wider than cellGap starts a new cell; a smaller
// gap wider than a fraction of the font size separates words within the
// cell.
func groupCells(spans []span, cellGap float64) []cell {
	var cells []cell
	var sb strings.Builder
	var startX float64

	flush := func() {
		text := strings.TrimSpace(sb.String())
		if text != "" {
			cells = append(cells, cell{x: startX, text: text})
		}
		sb.Reset()
	}

	for i, s := range spans {
		if i == 0 {
			startX = s.x
			sb.WriteString(s.text)
			continue
		}

		gap := s.x - spans[i-1].end()
		switch {
		case gap > cellGap:
			flush()
			startX = s.x
		case gap > wordGap(spans[i-1]):
			sb.WriteString(" ")
		}
		sb.WriteString(s.text)
	}
	flush()

	return cells
}

// wordGap returns the minimum horizontal gap treated as a word break within
// a cell, scaled by font size.
func wordGap(s span) float64 {
	if s.fontSize <= 0 {
		return 1.0
	}
	return s.fontSize * 0.25
}

func cellTexts(cells []cell) []string {
	texts := make([]string, len(cells))
	for i, c := range cells {
		texts[i] = c.text
	}
	return texts
}
