package native

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/sheetgrid/model"
)

// ColumnGridConfig holds configuration for column-grid table extraction.
type ColumnGridConfig struct {
	// CellGap is the minimum horizontal gap (in points) between words that
	// starts a new cell when rows are pre-grouped.
	CellGap float64

	// Tolerance is the maximum distance (in points) between cell start
	// positions considered to lie on the same column boundary.
	Tolerance float64

	// MinSupport is the minimum number of rows that must share a boundary
	// for it to count as a column.
	MinSupport int

	// MinRows is the minimum number of contiguous grid rows for a table to
	// be emitted.
	MinRows int
}

// DefaultColumnGridConfig returns the default column-grid thresholds.
func DefaultColumnGridConfig() ColumnGridConfig {
	return ColumnGridConfig{
		CellGap:    12.0,
		Tolerance:  6.0,
		MinSupport: 2,
		MinRows:    2,
	}
}

// ColumnGridExtractor recovers tables from the text layer by first inferring
// shared column boundaries from cell start positions across a page's rows,
// then slotting each row's cells into the inferred grid. Compared to
// RowsExtractor this aligns ragged rows onto common columns, at the cost of
// assuming one dominant grid per contiguous block.
type ColumnGridExtractor struct {
	config ColumnGridConfig
}

// NewColumnGridExtractor creates a column-grid extractor with default
// configuration.
func NewColumnGridExtractor() *ColumnGridExtractor {
	return NewColumnGridExtractorWithConfig(DefaultColumnGridConfig())
}

// NewColumnGridExtractorWithConfig creates a column-grid extractor with
// custom configuration.
func NewColumnGridExtractorWithConfig(config ColumnGridConfig) *ColumnGridExtractor {
	return &ColumnGridExtractor{config: config}
}

// Extract reads the PDF's text layer and returns all grid-aligned tables
// found, in page order. A PDF with no text layer yields an empty set, not
// an error.
func (e *ColumnGridExtractor) Extract(path string) (model.TableSet, error) {
	set := model.TableSet{Source: model.SourceColumnGrid}

	pageRows, err := readPages(path)
	if err != nil {
		return set, fmt.Errorf("column-grid extraction: %w", err)
	}

	for _, rows := range pageRows {
		set.Tables = append(set.Tables, e.tablesFromRows(rows)...)
	}
	return set, nil
}

// tablesFromRows finds contiguous blocks of multi-cell rows, infers each
// block's column boundaries, and emits the blocks that align onto at least
// two columns.
func (e *ColumnGridExtractor) tablesFromRows(rows [][]span) []model.Table {
	var tables []model.Table
	var block [][]cell

	flush := func() {
		if table, ok := e.gridFromBlock(block); ok {
			tables = append(tables, table)
		}
		block = nil
	}

	for _, row := range rows {
		cells := groupCells(row, e.config.CellGap)
		if len(cells) >= 2 {
			block = append(block, cells)
		} else {
			flush()
		}
	}
	flush()

	return tables
}

// gridFromBlock aligns one contiguous block of rows onto inferred column
// boundaries.
func (e *ColumnGridExtractor) gridFromBlock(block [][]cell) (model.Table, bool) {
	if len(block) < e.config.MinRows {
		return model.Table{}, false
	}

	var starts []float64
	for _, row := range block {
		for _, c := range row {
			starts = append(starts, c.x)
		}
	}

	cols := clusterBoundaries(starts, e.config.Tolerance, e.config.MinSupport)
	if len(cols) < 2 {
		return model.Table{}, false
	}

	table := model.Table{Rows: make([][]string, len(block))}
	for i, row := range block {
		table.Rows[i] = slotRow(row, cols)
	}
	return table, true
}

// clusterBoundaries merges nearby start positions into column boundaries,
// keeping only boundaries supported by enough cells.
func clusterBoundaries(starts []float64, tolerance float64, minSupport int) []float64 {
	if len(starts) == 0 {
		return nil
	}
	sort.Float64s(starts)

	var boundaries []float64
	clusterStart := starts[0]
	sum := starts[0]
	count := 1

	emit := func() {
		if count >= minSupport {
			boundaries = append(boundaries, sum/float64(count))
		}
	}

	for _, x := range starts[1:] {
		if x-clusterStart <= tolerance {
			sum += x
			count++
			continue
		}
		emit()
		clusterStart = x
		sum = x
		count = 1
	}
	emit()

	return boundaries
}

// slotRow places each cell into the column whose boundary is nearest its
// start position. When two cells land in the same column the later one is
// appended with a space; empty columns stay empty strings.
func slotRow(row []cell, cols []float64) []string {
	out := make([]string, len(cols))
	for _, c := range row {
		idx := nearestColumn(c.x, cols)
		if out[idx] == "" {
			out[idx] = c.text
		} else {
			out[idx] += " " + c.text
		}
	}
	return out
}

func nearestColumn(x float64, cols []float64) int {
	best := 0
	bestDist := math.Abs(x - cols[0])
	for i, col := range cols[1:] {
		if d := math.Abs(x - col); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}
	return best
}
