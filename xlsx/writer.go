// Package xlsx projects a consolidated document model onto an Excel
// workbook.
//
// The layout matches what a spreadsheet consumer of converted PDF data
// expects: a "Data" sheet holding every recovered table's rows as adjacent
// spreadsheet rows followed by the header, financial, list, and paragraph
// buckets as single-column entries, and a "Summary" sheet with per-bucket
// counts and the conversion timestamp. Bucket order on the Data sheet is a
// presentation policy of this writer, not of the structuring engine.
package xlsx

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/sheetgrid/model"
)

// Config holds workbook layout options.
type Config struct {
	// DataSheet is the name of the sheet holding tables and buckets.
	DataSheet string

	// SummarySheet is the name of the counts sheet. Empty disables the
	// summary.
	SummarySheet string

	// Now supplies the conversion timestamp; nil uses time.Now. Tests
	// inject a fixed clock here.
	Now func() time.Time
}

// DefaultConfig returns the default workbook layout.
func DefaultConfig() Config {
	return Config{
		DataSheet:    "Data",
		SummarySheet: "Summary",
		Now:          nil,
	}
}

// Writer converts a model.Document into an Excel workbook.
type Writer struct {
	config Config
}

// NewWriter creates a writer with default configuration.
func NewWriter() *Writer {
	return NewWriterWithConfig(DefaultConfig())
}

// NewWriterWithConfig creates a writer with custom configuration.
func NewWriterWithConfig(config Config) *Writer {
	if config.DataSheet == "" {
		config.DataSheet = DefaultConfig().DataSheet
	}
	return &Writer{config: config}
}

// Write builds the workbook for doc and writes it to w.
func (wr *Writer) Write(doc *model.Document, w io.Writer) error {
	f, err := wr.build(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile builds the workbook for doc and saves it at path.
func (wr *Writer) WriteFile(doc *model.Document, path string) error {
	f, err := wr.build(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (wr *Writer) build(doc *model.Document) (*excelize.File, error) {
	f := excelize.NewFile()

	// The workbook starts with a default sheet; rename it into the data
	// sheet rather than juggling an extra delete.
	if err := f.SetSheetName("Sheet1", wr.config.DataSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name data sheet: %w", err)
	}

	if err := wr.writeData(f, doc); err != nil {
		f.Close()
		return nil, err
	}

	if wr.config.SummarySheet != "" {
		if err := wr.writeSummary(f, doc); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// writeData lays out tables then buckets on the data sheet. Rows whose
// every cell is blank are skipped; blank bucket entries are skipped too.
func (wr *Writer) writeData(f *excelize.File, doc *model.Document) error {
	sheet := wr.config.DataSheet
	row := 1

	for _, tagged := range doc.Tables {
		for _, cells := range tagged.Table.Rows {
			if allBlank(cells) {
				continue
			}
			for col, value := range cells {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return fmt.Errorf("failed to compute cell name: %w", err)
				}
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return fmt.Errorf("failed to set cell %s: %w", cell, err)
				}
			}
			row++
		}
	}

	for _, bucket := range [][]string{doc.Headers, doc.Financial, doc.Lists, doc.Paragraphs} {
		for _, entry := range bucket {
			if strings.TrimSpace(entry) == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, entry); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
			row++
		}
	}
	return nil
}

// writeSummary adds the counts sheet: a bold title, a content-type/count
// table, and the conversion timestamp.
func (wr *Writer) writeSummary(f *excelize.File, doc *model.Document) error {
	sheet := wr.config.SummarySheet
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	set := func(cell string, value any) error {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
		return nil
	}

	if err := set("A1", "PDF to Excel Data Conversion Summary"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return fmt.Errorf("failed to style title: %w", err)
	}

	if err := set("A3", "Content Type"); err != nil {
		return err
	}
	if err := set("B3", "Count"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A3", "B3", boldStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	sum := doc.Summarize()
	counts := []struct {
		label string
		count int
	}{
		{"Total Tables", sum.Tables},
		{"Headers", sum.Headers},
		{"Lists", sum.Lists},
		{"Financial Data", sum.Financial},
		{"Paragraphs", sum.Paragraphs},
	}
	row := 4
	for _, c := range counts {
		if err := set(fmt.Sprintf("A%d", row), c.label); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("B%d", row), c.count); err != nil {
			return err
		}
		row++
	}

	now := time.Now
	if wr.config.Now != nil {
		now = wr.config.Now
	}
	row++
	if err := set(fmt.Sprintf("A%d", row), "Conversion Date"); err != nil {
		return err
	}
	return set(fmt.Sprintf("B%d", row), now().Format("2006-01-02 15:04:05"))
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Write builds a workbook for doc with the default layout and writes it to
// w.
func Write(doc *model.Document, w io.Writer) error {
	return NewWriter().Write(doc, w)
}

// WriteFile builds a workbook for doc with the default layout and saves it
// at path.
func WriteFile(doc *model.Document, path string) error {
	return NewWriter().WriteFile(doc, path)
}
