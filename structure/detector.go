package structure

import (
	"regexp"
	"strings"

	"github.com/tsawler/sheetgrid/model"
)

// DetectorConfig holds configuration for whitespace-pattern table detection.
type DetectorConfig struct {
	// MinRows is the minimum number of accumulated rows for a candidate to
	// be emitted.
	MinRows int

	// MinCols is the minimum number of cells for a line to count as a
	// table row.
	MinCols int
}

// DefaultDetectorConfig returns the default detection thresholds: a
// candidate needs at least two rows of at least two cells each.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		MinRows: 2,
		MinCols: 2,
	}
}

// rowSep matches the separators between cells of a tabular row: a run of
// two or more spaces, or a tab. Unlike model.SplitCells this does not treat
// a vertical bar as a separator; the detector keys purely on whitespace
// layout.
var rowSep = regexp.MustCompile(`\s{2,}|\t`)

// Detector finds table candidates in page text by grouping contiguous
// multi-column-looking lines. A blank line or a line that does not split
// into enough cells closes the current candidate; candidates below the
// minimum row count are discarded silently.
type Detector struct {
	config DetectorConfig
}

// NewDetector creates a detector with default configuration.
func NewDetector() *Detector {
	return NewDetectorWithConfig(DefaultDetectorConfig())
}

// NewDetectorWithConfig creates a detector with custom configuration.
func NewDetectorWithConfig(config DetectorConfig) *Detector {
	return &Detector{config: config}
}

// DetectTables scans the page's lines in order and returns the table
// candidates found, in order of appearance. Every returned table satisfies
// the minimum row and column thresholds. A page of uniformly tabular text
// with no separators yields exactly one candidate spanning the whole page;
// an isolated tabular line yields none.
func (d *Detector) DetectTables(pageText string) []model.Table {
	var tables []model.Table
	var current [][]string

	flush := func() {
		if len(current) >= d.config.MinRows {
			tables = append(tables, model.Table{Rows: current})
		}
		current = nil
	}

	for _, line := range splitLines(pageText) {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		cells := splitRow(line)
		if len(cells) >= d.config.MinCols {
			current = append(current, cells)
		} else {
			flush()
		}
	}
	flush()

	return tables
}

// splitRow splits a trimmed line into cells on runs of two or more spaces
// or a tab, discarding empty tokens.
func splitRow(line string) []string {
	var cells []string
	for _, tok := range rowSep.Split(line, -1) {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			cells = append(cells, tok)
		}
	}
	return cells
}

// splitLines splits page text on line breaks, tolerating CRLF endings.
func splitLines(pageText string) []string {
	return strings.Split(strings.ReplaceAll(pageText, "\r\n", "\n"), "\n")
}

// DetectTables finds table candidates using the default detector
// configuration.
func DetectTables(pageText string) []model.Table {
	return defaultDetector.DetectTables(pageText)
}

var defaultDetector = NewDetector()
