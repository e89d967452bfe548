package sheetgrid

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/sheetgrid/model"
	"github.com/tsawler/sheetgrid/native"
	"github.com/tsawler/sheetgrid/ocr"
	"github.com/tsawler/sheetgrid/render"
	"github.com/tsawler/sheetgrid/structure"
	"github.com/tsawler/sheetgrid/xlsx"
)

// PageRenderer rasterizes pages of an open document. render.Document is
// the default implementation.
type PageRenderer interface {
	PageCount() int
	RenderPagePNG(index int) ([]byte, error)
	Close() error
}

// TextRecognizer turns an encoded page image into raw text. ocr.Client is
// the default implementation.
type TextRecognizer interface {
	RecognizePage(imageData []byte) (string, error)
	Close() error
}

// TableExtractor recovers tables from a PDF's text layer. The native
// package provides the two standard implementations.
type TableExtractor interface {
	Extract(path string) (model.TableSet, error)
}

// Converter provides a fluent interface for converting a PDF into a
// structured document model. Each configuration method returns a new
// Converter, making chains safe to store and branch.
type Converter struct {
	filename string
	options  ConvertOptions
	logger   *slog.Logger

	// Seams for tests and custom backends; nil selects the defaults.
	renderer   PageRenderer
	recognizer TextRecognizer
	extractors []TableExtractor

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Converter with a deep copy of options.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename:   c.filename,
		options:    c.options.clone(),
		logger:     c.logger,
		renderer:   c.renderer,
		recognizer: c.recognizer,
		extractors: c.extractors,
		err:        c.err,
	}
}

// Pages restricts conversion to the given 1-indexed pages. Pages are always
// processed in document order regardless of argument order.
func (c *Converter) Pages(pages ...int) *Converter {
	newC := c.clone()
	for _, p := range pages {
		if p < 1 {
			newC.err = fmt.Errorf("invalid page number %d: pages are 1-indexed", p)
			return newC
		}
	}
	newC.options.pages = append([]int(nil), pages...)
	return newC
}

// DPI sets the render resolution for OCR.
func (c *Converter) DPI(dpi float64) *Converter {
	newC := c.clone()
	if dpi <= 0 {
		newC.err = fmt.Errorf("invalid DPI %v: must be positive", dpi)
		return newC
	}
	newC.options.dpi = dpi
	return newC
}

// MaxRenderWidth caps rendered page width in pixels; wider pages are
// downscaled before OCR. Zero disables the cap.
func (c *Converter) MaxRenderWidth(pixels int) *Converter {
	newC := c.clone()
	newC.options.maxWidth = pixels
	return newC
}

// Grayscale renders pages in 8-bit grayscale before OCR.
func (c *Converter) Grayscale() *Converter {
	newC := c.clone()
	newC.options.grayscale = true
	return newC
}

// Language sets the OCR language(s), "+"-separated (e.g. "eng+fra").
func (c *Converter) Language(lang string) *Converter {
	newC := c.clone()
	newC.options.language = lang
	return newC
}

// WithoutNativeTables disables text-layer table extraction, leaving only
// the OCR pipeline.
func (c *Converter) WithoutNativeTables() *Converter {
	newC := c.clone()
	newC.options.nativeTables = false
	return newC
}

// MaxFileSize caps the input file size in bytes.
func (c *Converter) MaxFileSize(bytes int64) *Converter {
	newC := c.clone()
	newC.options.maxFileSize = bytes
	return newC
}

// StructurerConfig overrides the classification and table-detection
// thresholds.
func (c *Converter) StructurerConfig(config structure.StructurerConfig) *Converter {
	newC := c.clone()
	newC.options.structurer = config
	return newC
}

// WithLogger sets the logger for progress and degradation messages.
// Default is slog.Default().
func (c *Converter) WithLogger(logger *slog.Logger) *Converter {
	newC := c.clone()
	newC.logger = logger
	return newC
}

// WithRenderer substitutes a custom page renderer.
func (c *Converter) WithRenderer(r PageRenderer) *Converter {
	newC := c.clone()
	newC.renderer = r
	return newC
}

// WithRecognizer substitutes a custom text recognizer.
func (c *Converter) WithRecognizer(r TextRecognizer) *Converter {
	newC := c.clone()
	newC.recognizer = r
	return newC
}

// WithTableExtractors substitutes the native table extraction backends.
func (c *Converter) WithTableExtractors(extractors ...TableExtractor) *Converter {
	newC := c.clone()
	newC.extractors = extractors
	return newC
}

// Convert runs the full pipeline and returns the consolidated document:
// input validation, native table extraction, then each selected page in
// order is rendered, recognized, and structured before consolidation. The
// returned document is final; callers decide whether an empty document is
// an error for their use case.
func (c *Converter) Convert(ctx context.Context) (*model.Document, error) {
	if c.err != nil {
		return nil, c.err
	}
	logger := c.logger
	if logger == nil {
		logger = slog.Default()
	}

	// A caller-supplied renderer bypasses file validation: the default
	// path is the only one reading the file from disk.
	if c.renderer == nil {
		if err := c.validate(logger); err != nil {
			return nil, err
		}
	}

	nativeSets := c.extractNative(logger)

	renderer, err := c.openRenderer()
	if err != nil {
		return nil, err
	}
	if c.renderer == nil {
		defer renderer.Close()
	}

	recognizer, err := c.openRecognizer()
	if err != nil {
		return nil, err
	}
	if c.recognizer == nil {
		defer recognizer.Close()
	}

	structurer := structure.NewStructurerWithConfig(c.options.structurer)
	pageCount := renderer.PageCount()

	var pages []model.PageStructure
	for i := 0; i < pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !c.options.selectsPage(i + 1) {
			continue
		}

		logger.Debug("processing page", "file", c.filename, "page", i+1)

		png, err := renderer.RenderPagePNG(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		text, err := recognizer.RecognizePage(png)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}

		pages = append(pages, structurer.StructurePage(text))
	}

	doc := structure.Consolidate(nativeSets, pages)
	sum := doc.Summarize()
	logger.Info("conversion complete",
		"file", c.filename,
		"pages", len(pages),
		"tables", sum.Tables,
		"headers", sum.Headers,
		"lists", sum.Lists,
		"financial", sum.Financial,
		"paragraphs", sum.Paragraphs)

	return doc, nil
}

// WriteXLSX converts the document and writes the workbook to w.
func (c *Converter) WriteXLSX(ctx context.Context, w io.Writer) error {
	doc, err := c.Convert(ctx)
	if err != nil {
		return err
	}
	return xlsx.Write(doc, w)
}

// WriteXLSXFile converts the document and saves the workbook at path.
func (c *Converter) WriteXLSXFile(ctx context.Context, path string) error {
	doc, err := c.Convert(ctx)
	if err != nil {
		return err
	}
	return xlsx.WriteFile(doc, path)
}

// validate checks the input exists, respects the size cap, and parses as a
// well-formed PDF before any rendering work starts.
func (c *Converter) validate(logger *slog.Logger) error {
	info, err := os.Stat(c.filename)
	if err != nil {
		return fmt.Errorf("stat %s: %w", c.filename, err)
	}
	if c.options.maxFileSize > 0 && info.Size() > c.options.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), c.options.maxFileSize)
	}

	f, err := os.Open(c.filename)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.filename, err)
	}
	defer f.Close()

	pdfCtx, err := api.ReadValidateAndOptimize(f, pdfcpumodel.NewDefaultConfiguration())
	if err != nil {
		return fmt.Errorf("not a valid PDF: %w", err)
	}
	logger.Debug("validated input", "file", c.filename, "pages", pdfCtx.PageCount)
	return nil
}

// extractNative runs the text-layer backends. A failing backend degrades
// to an empty set with a logged warning; native extraction finding nothing
// is normal for scanned documents.
func (c *Converter) extractNative(logger *slog.Logger) []model.TableSet {
	if !c.options.nativeTables {
		return nil
	}

	extractors := c.extractors
	if extractors == nil {
		extractors = []TableExtractor{
			native.NewRowsExtractor(),
			native.NewColumnGridExtractor(),
		}
	}

	var sets []model.TableSet
	for _, ex := range extractors {
		set, err := ex.Extract(c.filename)
		if err != nil {
			logger.Warn("native table extraction failed",
				"file", c.filename, "source", set.Source.String(), "error", err)
			continue
		}
		logger.Debug("native table extraction",
			"file", c.filename, "source", set.Source.String(), "tables", len(set.Tables))
		sets = append(sets, set)
	}
	return sets
}

func (c *Converter) openRenderer() (PageRenderer, error) {
	if c.renderer != nil {
		return c.renderer, nil
	}
	return render.OpenWithConfig(c.filename, render.Config{
		DPI:       c.options.dpi,
		MaxWidth:  c.options.maxWidth,
		Grayscale: c.options.grayscale,
	})
}

func (c *Converter) openRecognizer() (TextRecognizer, error) {
	if c.recognizer != nil {
		return c.recognizer, nil
	}
	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	if c.options.language != "" {
		if err := client.SetLanguage(c.options.language); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set OCR language: %w", err)
		}
	}
	return client, nil
}
