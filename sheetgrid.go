// Package sheetgrid converts PDF documents into structured spreadsheet
// data. Pages are rasterized and OCR'd, the recovered text is classified
// into tables, headers, list items, financial-data lines, and paragraphs,
// native text-layer tables are extracted alongside, and everything is
// consolidated into a single document model ready to be written as an
// Excel workbook.
//
// Basic usage:
//
//	doc, err := sheetgrid.Open("statement.pdf").Convert(ctx)
//	if err != nil {
//	    // handle error
//	}
//	err = sheetgrid.Open("statement.pdf").WriteXLSXFile(ctx, "statement.xlsx")
//
// With options:
//
//	doc, err := sheetgrid.Open("report.pdf").
//	    Pages(1, 2, 3).
//	    DPI(300).
//	    Grayscale().
//	    Convert(ctx)
//
// OCR requires the "ocr" build tag and a Tesseract installation; without
// it Convert returns ocr.ErrOCRNotEnabled unless a custom recognizer is
// supplied. The lower-level structure, native, render, ocr, and xlsx
// packages are available for advanced use.
package sheetgrid

// Open prepares a converter for the given PDF file. Configuration methods
// return new Converter values, so a converter can be stored and branched
// safely; nothing is opened until a terminal method such as Convert runs.
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}
