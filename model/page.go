package model

// PageStructure is the complete structuring result for a single page: the
// four semantic buckets in line order, plus the table candidates found by
// whitespace-pattern detection. A PageStructure is built once and treated
// as immutable afterwards; the document consolidator owns it after append.
type PageStructure struct {
	Headers    []string
	Lists      []string
	Paragraphs []string
	Financial  []string
	Tables     []Table
}

// IsEmpty reports whether the page produced no content at all.
func (p PageStructure) IsEmpty() bool {
	return len(p.Headers) == 0 &&
		len(p.Lists) == 0 &&
		len(p.Paragraphs) == 0 &&
		len(p.Financial) == 0 &&
		len(p.Tables) == 0
}

// Bucket returns the bucket contents for a classification, or nil for
// Unclassified.
func (p PageStructure) Bucket(c Classification) []string {
	switch c {
	case Header:
		return p.Headers
	case ListItem:
		return p.Lists
	case Paragraph:
		return p.Paragraphs
	case Financial:
		return p.Financial
	default:
		return nil
	}
}
