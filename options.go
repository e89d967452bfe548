package sheetgrid

import (
	"github.com/tsawler/sheetgrid/structure"
)

// ConvertOptions holds configuration for a conversion run.
type ConvertOptions struct {
	// Page selection (1-indexed in API, stored as-is; nil means all pages)
	pages []int

	// Rendering
	dpi       float64
	maxWidth  int
	grayscale bool

	// OCR
	language string

	// Native text-layer extraction
	nativeTables bool

	// Input guards
	maxFileSize int64

	// Structuring
	structurer structure.StructurerConfig
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		pages:        nil,
		dpi:          200,
		maxWidth:     0,
		grayscale:    false,
		language:     "",
		nativeTables: true,
		maxFileSize:  100 * 1024 * 1024,
		structurer:   structure.DefaultStructurerConfig(),
	}
}

// clone creates a deep copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	newOpts := o
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	if o.structurer.Classifier.HeaderPrefixes != nil {
		prefixes := make([]string, len(o.structurer.Classifier.HeaderPrefixes))
		copy(prefixes, o.structurer.Classifier.HeaderPrefixes)
		newOpts.structurer.Classifier.HeaderPrefixes = prefixes
	}
	return newOpts
}

// selectsPage reports whether the 1-indexed page is included by the page
// selection.
func (o ConvertOptions) selectsPage(page int) bool {
	if o.pages == nil {
		return true
	}
	for _, p := range o.pages {
		if p == page {
			return true
		}
	}
	return false
}
