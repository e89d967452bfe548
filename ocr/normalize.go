package ocr

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes recognized page text: Unicode NFC composition and
// trimming of surrounding whitespace. Tesseract may emit decomposed
// accented characters depending on the traineddata in use; normalizing here
// keeps the structuring heuristics byte-stable across installations.
func Normalize(text string) string {
	return strings.TrimSpace(norm.NFC.String(text))
}
