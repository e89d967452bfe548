package model

import (
	"regexp"
	"strings"
)

// TableSource identifies which extraction backend produced a table.
type TableSource int

const (
	SourceUnknown TableSource = iota
	SourceTextRows              // native text-layer extraction, row grouping
	SourceColumnGrid            // native text-layer extraction, column-grid analysis
	SourceOCR                   // whitespace-pattern detection over OCR text
)

func (s TableSource) String() string {
	switch s {
	case SourceTextRows:
		return "text-rows"
	case SourceColumnGrid:
		return "column-grid"
	case SourceOCR:
		return "ocr"
	default:
		return "unknown"
	}
}

// Table is a candidate grid of rows and cells. Rows are in top-to-bottom
// order and cells in left-to-right order; neither is ever reordered.
type Table struct {
	Rows [][]string
}

// RowCount returns the number of rows.
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of cells in the widest row.
func (t Table) ColCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// IsBlank reports whether every cell in every row is empty or whitespace.
// Blank tables are degenerate OCR noise and are dropped at consolidation.
func (t Table) IsBlank() bool {
	for _, row := range t.Rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return false
			}
		}
	}
	return true
}

// ToCSV converts the table to CSV format.
func (t Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			if strings.ContainsAny(cell, ",\"\n") {
				cell = "\"" + strings.ReplaceAll(cell, "\"", "\"\"") + "\""
			}
			sb.WriteString(cell)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToTSV converts the table to tab-separated format.
func (t Table) ToTSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// TaggedTable is a table together with the backend that produced it.
type TaggedTable struct {
	Source TableSource
	Table  Table
}

// TableSet is an ordered collection of tables from a single backend.
type TableSet struct {
	Source TableSource
	Tables []Table
}

// cellSep matches the separators between cells on one visual row: a run of
// two or more whitespace characters, a tab, or a vertical bar.
var cellSep = regexp.MustCompile(`\s{2,}|\t|\|`)

// SplitCells splits one line of text into its cell sequence. Separators are
// runs of two or more whitespace characters, tabs, and vertical bars; empty
// tokens are discarded. A line with no separators yields a single cell, and
// a blank line yields none.
//
// The structuring pipeline does not call this: its detector keys purely on
// whitespace layout and treats a vertical bar as cell content. SplitCells is
// the general-purpose rule, for callers assembling [Table] rows from their
// own line sources, where a bar is a drawn column border.
func SplitCells(line string) []string {
	var cells []string
	for _, tok := range cellSep.Split(strings.TrimSpace(line), -1) {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			cells = append(cells, tok)
		}
	}
	return cells
}
