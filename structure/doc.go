// Package structure recovers tabular and semantic structure from raw,
// single-column-per-line page text such as OCR output.
//
// The package provides four independently testable components:
//
//   - [Classifier] - labels one line as header, list item, financial data,
//     paragraph, or unclassified, using ordered first-match rules
//   - [Detector] - groups contiguous multi-column-looking lines into table
//     candidates using a whitespace-run heuristic
//   - [Structurer] - runs both analyses over a full page and returns one
//     [model.PageStructure]
//   - [Consolidate] - merges per-page results and native table extractions
//     into a single [model.Document]
//
// All components are pure functions over their text input: no I/O, no
// shared state, and no error paths for well-formed text. A page with no
// extractable structure degrades to an empty result rather than failing.
//
// # Configuration
//
// Each component can be configured independently:
//
//	config := structure.DefaultClassifierConfig()
//	config.MinParagraphLength = 40
//	classifier := structure.NewClassifierWithConfig(config)
//
// # Known Limitations
//
// The table detector does not attempt column alignment, type inference, or
// merging of candidates split by an incidental non-tabular line (such as a
// running header in the middle of a table). A table interrupted that way is
// reported as two candidates. Likewise, a table captured both natively and
// via OCR appears twice in the consolidated document, once per source; the
// consolidator tags tables but never reconciles them.
package structure
