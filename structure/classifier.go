package structure

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/sheetgrid/model"
)

// ClassifierConfig holds configuration for line classification.
type ClassifierConfig struct {
	// MaxHeaderLength is the maximum line length (in runes) for a line to
	// qualify as a header.
	MaxHeaderLength int

	// MinParagraphLength is the minimum line length (in runes) for an
	// otherwise unmatched line to qualify as a paragraph. Shorter unmatched
	// lines are left unclassified.
	MinParagraphLength int

	// HeaderPrefixes are literal prefixes that mark a line as a header even
	// when it is not upper-case.
	HeaderPrefixes []string
}

// DefaultClassifierConfig returns the default classification thresholds.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MaxHeaderLength:    100,
		MinParagraphLength: 50,
		HeaderPrefixes:     []string{"Chapter", "Section", "Part"},
	}
}

var (
	// listPattern matches a leading bullet glyph or digit sequence, an
	// optional period, then whitespace.
	listPattern = regexp.MustCompile(`^[•\-*\d]+\.?\s`)

	// financialPattern matches a dollar amount with optional thousands
	// separators and fraction, or a numeric m/d/y date.
	financialPattern = regexp.MustCompile(`\$[\d,]+\.?\d*|\d{1,2}/\d{1,2}/\d{2,4}`)
)

// Classifier labels lines of page text using ordered first-match rules.
// Rule order encodes precedence: a short all-caps line is a header even when
// it also contains a date, and a bulleted line is a list item however long
// it runs. The zero-configuration classifier is obtained with NewClassifier.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a classifier with default configuration.
func NewClassifier() *Classifier {
	return NewClassifierWithConfig(DefaultClassifierConfig())
}

// NewClassifierWithConfig creates a classifier with custom configuration.
func NewClassifierWithConfig(config ClassifierConfig) *Classifier {
	return &Classifier{config: config}
}

// Classify assigns exactly one classification to a line. The line is
// expected to be non-empty and trimmed of surrounding whitespace; Classify
// is a pure function and calling it twice on the same input yields the same
// result. Rules are evaluated in order and the first match wins:
//
//  1. Header: shorter than MaxHeaderLength and either upper-case throughout
//     or starting with a configured header prefix.
//  2. List item: starts with a bullet glyph or digit sequence, an optional
//     period, then whitespace.
//  3. Financial: contains a dollar amount or an m/d/y date.
//  4. Paragraph: longer than MinParagraphLength.
//  5. Otherwise unclassified; the caller discards the line.
func (c *Classifier) Classify(line string) model.Classification {
	length := utf8.RuneCountInString(line)

	if length < c.config.MaxHeaderLength && (isUpper(line) || c.hasHeaderPrefix(line)) {
		return model.Header
	}
	if listPattern.MatchString(line) {
		return model.ListItem
	}
	if financialPattern.MatchString(line) {
		return model.Financial
	}
	if length > c.config.MinParagraphLength {
		return model.Paragraph
	}
	return model.Unclassified
}

func (c *Classifier) hasHeaderPrefix(line string) bool {
	for _, prefix := range c.config.HeaderPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// isUpper reports whether the line contains at least one cased letter and
// no lower-case letters. Digits and punctuation are allowed, so "Q3 2024
// RESULTS" qualifies while "2024" alone does not.
func isUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			hasCased = true
		}
	}
	return hasCased
}

// Classify labels a line using the default classifier configuration.
func Classify(line string) model.Classification {
	return defaultClassifier.Classify(line)
}

var defaultClassifier = NewClassifier()
