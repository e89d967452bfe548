package structure

import (
	"github.com/tsawler/sheetgrid/model"
)

// Consolidate merges native table extractions and per-page structuring
// results into one document model.
//
// Native table sets are appended first, in the order the caller supplies
// them, each table tagged with its set's source. Then every page's table
// candidates are appended tagged model.SourceOCR, and its four buckets are
// concatenated onto the document-level buckets, in page order. Tables whose
// every cell is blank are dropped as degenerate OCR noise; no other
// filtering, reordering, or deduplication occurs, so a table captured both
// natively and via OCR appears twice.
//
// The pages slice must already be in true page order; Consolidate does not
// detect or repair a misordered input. It performs no I/O and cannot fail:
// zero pages yield an empty document, not an error.
func Consolidate(native []model.TableSet, pages []model.PageStructure) *model.Document {
	doc := &model.Document{}

	for _, set := range native {
		for _, table := range set.Tables {
			if table.IsBlank() {
				continue
			}
			doc.Tables = append(doc.Tables, model.TaggedTable{Source: set.Source, Table: table})
		}
	}

	for _, page := range pages {
		for _, table := range page.Tables {
			if table.IsBlank() {
				continue
			}
			doc.Tables = append(doc.Tables, model.TaggedTable{Source: model.SourceOCR, Table: table})
		}
		doc.Headers = append(doc.Headers, page.Headers...)
		doc.Lists = append(doc.Lists, page.Lists...)
		doc.Paragraphs = append(doc.Paragraphs, page.Paragraphs...)
		doc.Financial = append(doc.Financial, page.Financial...)
	}

	return doc
}
