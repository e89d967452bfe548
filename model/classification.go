package model

// Classification is the semantic label assigned to one line of page text.
// Every non-empty line receives exactly one label.
type Classification int

const (
	Unclassified Classification = iota
	Header
	ListItem
	Financial
	Paragraph
)

func (c Classification) String() string {
	switch c {
	case Header:
		return "header"
	case ListItem:
		return "list-item"
	case Financial:
		return "financial"
	case Paragraph:
		return "paragraph"
	default:
		return "unclassified"
	}
}
