package structure

import (
	"strings"

	"github.com/tsawler/sheetgrid/model"
)

// StructurerConfig holds configuration for page structuring.
type StructurerConfig struct {
	Classifier ClassifierConfig
	Detector   DetectorConfig
}

// DefaultStructurerConfig returns a configuration with the default
// classifier and detector settings.
func DefaultStructurerConfig() StructurerConfig {
	return StructurerConfig{
		Classifier: DefaultClassifierConfig(),
		Detector:   DefaultDetectorConfig(),
	}
}

// Structurer turns one page's raw text into a model.PageStructure by
// running line classification and table detection over the same line
// sequence. The two analyses are independent: a line can contribute to a
// classification bucket and to a table candidate at the same time.
type Structurer struct {
	classifier *Classifier
	detector   *Detector
}

// NewStructurer creates a structurer with default configuration.
func NewStructurer() *Structurer {
	return NewStructurerWithConfig(DefaultStructurerConfig())
}

// NewStructurerWithConfig creates a structurer with custom configuration.
func NewStructurerWithConfig(config StructurerConfig) *Structurer {
	return &Structurer{
		classifier: NewClassifierWithConfig(config.Classifier),
		detector:   NewDetectorWithConfig(config.Detector),
	}
}

// StructurePage analyzes one page of text and returns its structure.
// Lines are classified in order into the four semantic buckets; blank lines
// and unclassified lines appear in no bucket. Table candidates are detected
// over the same lines. Empty input returns an empty PageStructure, never an
// error; the text is treated as final and no retries are made.
func (s *Structurer) StructurePage(pageText string) model.PageStructure {
	var page model.PageStructure

	for _, line := range splitLines(pageText) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch s.classifier.Classify(line) {
		case model.Header:
			page.Headers = append(page.Headers, line)
		case model.ListItem:
			page.Lists = append(page.Lists, line)
		case model.Financial:
			page.Financial = append(page.Financial, line)
		case model.Paragraph:
			page.Paragraphs = append(page.Paragraphs, line)
		}
	}

	page.Tables = s.detector.DetectTables(pageText)
	return page
}

// StructurePage analyzes one page of text using the default configuration.
func StructurePage(pageText string) model.PageStructure {
	return defaultStructurer.StructurePage(pageText)
}

var defaultStructurer = NewStructurer()
