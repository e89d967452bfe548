package model

// Document is the consolidated result for a whole file. Tables from every
// backend appear in Tables in the order the backends supplied them, each
// tagged with its source; the four buckets are the per-page buckets
// concatenated in page order. Insertion order is the only order; nothing
// in the pipeline sorts, reorders, or deduplicates.
type Document struct {
	Tables     []TaggedTable
	Headers    []string
	Lists      []string
	Paragraphs []string
	Financial  []string
}

// Summary holds per-bucket counts for a document, suitable for a report's
// summary sheet.
type Summary struct {
	Tables     int
	Headers    int
	Lists      int
	Paragraphs int
	Financial  int
}

// Summarize returns the bucket and table counts for the document.
func (d *Document) Summarize() Summary {
	return Summary{
		Tables:     len(d.Tables),
		Headers:    len(d.Headers),
		Lists:      len(d.Lists),
		Paragraphs: len(d.Paragraphs),
		Financial:  len(d.Financial),
	}
}

// TablesBySource returns the document's tables from one backend, in their
// original order.
func (d *Document) TablesBySource(source TableSource) []Table {
	var tables []Table
	for _, tt := range d.Tables {
		if tt.Source == source {
			tables = append(tables, tt.Table)
		}
	}
	return tables
}

// IsEmpty reports whether the document holds no tables and no bucket
// entries. An empty document is a valid result for a blank or image-free
// input, not an error.
func (d *Document) IsEmpty() bool {
	return len(d.Tables) == 0 &&
		len(d.Headers) == 0 &&
		len(d.Lists) == 0 &&
		len(d.Paragraphs) == 0 &&
		len(d.Financial) == 0
}
