// Package model provides the intermediate representation (IR) for structured
// content recovered from scanned document pages.
//
// This package defines the user-facing data structures produced by the
// structuring engine. All page analysis and consolidation operations
// ultimately produce these types, making them the primary API for consuming
// converted content.
//
// # Document Structure
//
// The [Document] type is the consolidated result for a whole file: every
// recovered table, tagged with the [TableSource] that produced it, plus the
// four semantic buckets (headers, lists, paragraphs, financial data)
// concatenated across pages in page order.
//
// # Per-Page Results
//
// A [PageStructure] holds one page's buckets and the table candidates the
// whitespace-pattern detector found on that page. Page structures are value
// types, built once per page and never mutated afterwards.
//
// # Tables
//
// A [Table] is a provisional grid of rows and string cells inferred either
// from the PDF text layer or from OCR whitespace layout. It is not guaranteed
// to correspond to a real source table; consumers should treat it as a
// candidate. Export helpers ToCSV() and ToTSV() are provided for debugging
// and plain-text output.
package model
