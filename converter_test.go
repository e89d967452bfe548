package sheetgrid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/tsawler/sheetgrid/model"
)

// stubRenderer serves pre-rendered "images" whose bytes are just page
// markers the stub recognizer maps back to text.
type stubRenderer struct {
	pages  []string
	closed bool
}

func (r *stubRenderer) PageCount() int { return len(r.pages) }

func (r *stubRenderer) RenderPagePNG(index int) ([]byte, error) {
	if index < 0 || index >= len(r.pages) {
		return nil, fmt.Errorf("page %d out of range", index)
	}
	return []byte(r.pages[index]), nil
}

func (r *stubRenderer) Close() error {
	r.closed = true
	return nil
}

// stubRecognizer returns the "image" bytes as recognized text.
type stubRecognizer struct{}

func (stubRecognizer) RecognizePage(imageData []byte) (string, error) {
	return string(imageData), nil
}

func (stubRecognizer) Close() error { return nil }

// stubExtractor returns a fixed table set.
type stubExtractor struct {
	set model.TableSet
	err error
}

func (e stubExtractor) Extract(path string) (model.TableSet, error) {
	return e.set, e.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConverter(pages ...string) *Converter {
	return Open("test.pdf").
		WithRenderer(&stubRenderer{pages: pages}).
		WithRecognizer(stubRecognizer{}).
		WithTableExtractors().
		WithLogger(quietLogger())
}

func TestConvertEndToEnd(t *testing.T) {
	page1 := "EXECUTIVE SUMMARY\n" +
		"Revenue increased substantially across all regions this quarter due to strong demand\n" +
		"\n" +
		"Month    Revenue\n" +
		"Jan      125000\n" +
		"Feb      138000"
	page2 := "CONCLUSION\n" +
		"• Customer satisfaction rate: 94.2%\n" +
		"Closing balance $12,500.00 as of 3/31/2024"

	doc, err := testConverter(page1, page2).Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	if !reflect.DeepEqual(doc.Headers, []string{"EXECUTIVE SUMMARY", "CONCLUSION"}) {
		t.Errorf("Headers = %v", doc.Headers)
	}
	if !reflect.DeepEqual(doc.Lists, []string{"• Customer satisfaction rate: 94.2%"}) {
		t.Errorf("Lists = %v", doc.Lists)
	}
	if !reflect.DeepEqual(doc.Financial, []string{"Closing balance $12,500.00 as of 3/31/2024"}) {
		t.Errorf("Financial = %v", doc.Financial)
	}
	if len(doc.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(doc.Tables))
	}
	if doc.Tables[0].Source != model.SourceOCR {
		t.Errorf("table source = %v, want %v", doc.Tables[0].Source, model.SourceOCR)
	}
	if doc.Tables[0].Table.RowCount() != 3 {
		t.Errorf("table rows = %d, want 3", doc.Tables[0].Table.RowCount())
	}
}

func TestConvertEmptyDocument(t *testing.T) {
	doc, err := testConverter().Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !doc.IsEmpty() {
		t.Errorf("zero-page document should convert to an empty model, got %+v", doc)
	}
}

func TestConvertPageSelection(t *testing.T) {
	doc, err := testConverter("FIRST PAGE", "SECOND PAGE", "THIRD PAGE").
		Pages(1, 3).
		Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !reflect.DeepEqual(doc.Headers, []string{"FIRST PAGE", "THIRD PAGE"}) {
		t.Errorf("Headers = %v, want pages 1 and 3 only", doc.Headers)
	}
}

func TestConvertInvalidPageNumber(t *testing.T) {
	_, err := testConverter("PAGE").Pages(0).Convert(context.Background())
	if err == nil {
		t.Error("expected error for page number 0")
	}
}

func TestConvertInvalidDPI(t *testing.T) {
	_, err := testConverter("PAGE").DPI(-100).Convert(context.Background())
	if err == nil {
		t.Error("expected error for negative DPI")
	}
}

func TestConvertNativeExtractorFailureDegrades(t *testing.T) {
	table := model.Table{Rows: [][]string{{"a", "b"}, {"c", "d"}}}
	good := stubExtractor{set: model.TableSet{Source: model.SourceTextRows, Tables: []model.Table{table}}}
	bad := stubExtractor{
		set: model.TableSet{Source: model.SourceColumnGrid},
		err: errors.New("no text layer"),
	}

	doc, err := testConverter("SOME PAGE").
		WithTableExtractors(good, bad).
		Convert(context.Background())
	if err != nil {
		t.Fatalf("a failing native backend should not abort conversion: %v", err)
	}
	if len(doc.Tables) != 1 || doc.Tables[0].Source != model.SourceTextRows {
		t.Errorf("Tables = %v, want just the good backend's table", doc.Tables)
	}
}

func TestConvertNativeTablesPrecedeOCRTables(t *testing.T) {
	nativeTable := model.Table{Rows: [][]string{{"n", "n"}, {"n", "n"}}}
	ex := stubExtractor{set: model.TableSet{Source: model.SourceTextRows, Tables: []model.Table{nativeTable}}}

	doc, err := testConverter("x  1\ny  2").
		WithTableExtractors(ex).
		Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(doc.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(doc.Tables))
	}
	if doc.Tables[0].Source != model.SourceTextRows || doc.Tables[1].Source != model.SourceOCR {
		t.Errorf("table order = %v, %v; native must precede OCR",
			doc.Tables[0].Source, doc.Tables[1].Source)
	}
}

func TestConvertCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testConverter("PAGE").Convert(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestConverterChainingIsImmutable(t *testing.T) {
	base := testConverter("PAGE")
	withPages := base.Pages(1)
	withDPI := base.DPI(300)

	if base.options.pages != nil {
		t.Error("base pages mutated by Pages()")
	}
	if base.options.dpi != 200 {
		t.Errorf("base dpi mutated: %v", base.options.dpi)
	}
	if withPages.options.dpi != 200 {
		t.Errorf("Pages() chain changed dpi: %v", withPages.options.dpi)
	}
	if withDPI.options.pages != nil {
		t.Error("DPI() chain changed pages")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := defaultOptions()
	if opts.dpi != 200 {
		t.Errorf("dpi = %v, want 200", opts.dpi)
	}
	if !opts.nativeTables {
		t.Error("native tables should default to enabled")
	}
	if opts.pages != nil {
		t.Error("pages should default to all")
	}
	if opts.maxFileSize != 100*1024*1024 {
		t.Errorf("maxFileSize = %d", opts.maxFileSize)
	}
}

func TestSelectsPage(t *testing.T) {
	opts := defaultOptions()
	if !opts.selectsPage(5) {
		t.Error("nil selection should include every page")
	}

	opts.pages = []int{2, 4}
	if opts.selectsPage(1) || !opts.selectsPage(2) || opts.selectsPage(3) || !opts.selectsPage(4) {
		t.Error("explicit selection not respected")
	}
}
