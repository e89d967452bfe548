// Package render rasterizes PDF pages into images suitable for OCR.
//
// Rendering is delegated to MuPDF via go-fitz. Pages are rendered at a
// configurable DPI (200 by default, a good balance of OCR accuracy and
// memory), optionally capped in width and converted to grayscale to reduce
// the load on the recognition engine.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// Config holds page rendering options.
type Config struct {
	// DPI is the render resolution. Higher values improve OCR accuracy on
	// small type at the cost of memory.
	DPI float64

	// MaxWidth caps the rendered image width in pixels; wider renders are
	// downscaled preserving aspect ratio. Zero means no cap.
	MaxWidth int

	// Grayscale converts rendered pages to 8-bit grayscale.
	Grayscale bool
}

// DefaultConfig returns the default rendering options.
func DefaultConfig() Config {
	return Config{
		DPI:       200,
		MaxWidth:  0,
		Grayscale: false,
	}
}

// Document is an open PDF ready for page rendering. It must be closed when
// no longer needed.
type Document struct {
	doc    *fitz.Document
	config Config
}

// Open opens a PDF file for rendering with default options.
func Open(path string) (*Document, error) {
	return OpenWithConfig(path, DefaultConfig())
}

// OpenWithConfig opens a PDF file for rendering with custom options.
func OpenWithConfig(path string, config Config) (*Document, error) {
	if config.DPI <= 0 {
		config.DPI = DefaultConfig().DPI
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF for rendering: %w", err)
	}
	return &Document{doc: doc, config: config}, nil
}

// Close releases the underlying MuPDF document.
func (d *Document) Close() error {
	if d == nil || d.doc == nil {
		return nil
	}
	return d.doc.Close()
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// RenderPage rasterizes one page (0-indexed) at the configured DPI,
// applying the configured width cap and grayscale conversion.
func (d *Document) RenderPage(index int) (image.Image, error) {
	img, err := d.doc.ImageDPI(index, d.config.DPI)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", index+1, err)
	}

	out := image.Image(img)
	if d.config.MaxWidth > 0 {
		out = Downscale(out, d.config.MaxWidth)
	}
	if d.config.Grayscale {
		out = Grayscale(out)
	}
	return out, nil
}

// RenderPagePNG rasterizes one page and returns it PNG-encoded, the form
// the OCR client consumes.
func (d *Document) RenderPagePNG(index int) ([]byte, error) {
	img, err := d.RenderPage(index)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode page %d: %w", index+1, err)
	}
	return buf.Bytes(), nil
}
