package native

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/sheetgrid/model"
)

// RowsConfig holds configuration for row-grouping table extraction.
type RowsConfig struct {
	// CellGap is the minimum horizontal gap (in points) between words that
	// starts a new cell.
	CellGap float64

	// MinRows is the minimum number of contiguous multi-cell rows for a
	// table to be emitted.
	MinRows int

	// MinCols is the minimum number of cells for a row to count as
	// tabular.
	MinCols int
}

// DefaultRowsConfig returns the default row-grouping thresholds.
func DefaultRowsConfig() RowsConfig {
	return RowsConfig{
		CellGap: 12.0,
		MinRows: 2,
		MinCols: 2,
	}
}

// RowsExtractor recovers tables from the text layer by grouping each visual
// row's words into cells and accumulating contiguous multi-cell rows, the
// same close rule the OCR-side detector applies to whitespace runs.
type RowsExtractor struct {
	config RowsConfig
}

// NewRowsExtractor creates a row-grouping extractor with default
// configuration.
func NewRowsExtractor() *RowsExtractor {
	return NewRowsExtractorWithConfig(DefaultRowsConfig())
}

// NewRowsExtractorWithConfig creates a row-grouping extractor with custom
// configuration.
func NewRowsExtractorWithConfig(config RowsConfig) *RowsExtractor {
	return &RowsExtractor{config: config}
}

// Extract reads the PDF's text layer and returns all tables found, in page
// order. A PDF with no text layer yields an empty set, not an error.
func (e *RowsExtractor) Extract(path string) (model.TableSet, error) {
	set := model.TableSet{Source: model.SourceTextRows}

	pageRows, err := readPages(path)
	if err != nil {
		return set, fmt.Errorf("text-rows extraction: %w", err)
	}

	for _, rows := range pageRows {
		set.Tables = append(set.Tables, e.tablesFromRows(rows)...)
	}
	return set, nil
}

// tablesFromRows applies the accumulate/close rule to one page's rows.
func (e *RowsExtractor) tablesFromRows(rows [][]span) []model.Table {
	var tables []model.Table
	var current [][]string

	flush := func() {
		if len(current) >= e.config.MinRows {
			tables = append(tables, model.Table{Rows: current})
		}
		current = nil
	}

	for _, row := range rows {
		cells := groupCells(row, e.config.CellGap)
		if len(cells) >= e.config.MinCols {
			current = append(current, cellTexts(cells))
		} else {
			flush()
		}
	}
	flush()

	return tables
}

// readPages loads the text layer of every page as rows of positioned spans,
// top to bottom, words left to right.
func readPages(path string) ([][][]span, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF text layer: %w", err)
	}
	defer f.Close()

	var pages [][][]span
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, nil)
			continue
		}

		textRows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d text: %w", i, err)
		}

		var rows [][]span
		for _, row := range textRows {
			var spans []span
			for _, t := range row.Content {
				if t.S == "" {
					continue
				}
				spans = append(spans, span{
					x:        t.X,
					w:        t.W,
					fontSize: t.FontSize,
					text:     t.S,
				})
			}
			if len(spans) > 0 {
				rows = append(rows, spans)
			}
		}
		pages = append(pages, rows)
	}
	return pages, nil
}
