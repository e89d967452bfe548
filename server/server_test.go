package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServer(t *testing.T, convert ConvertFunc) *Server {
	t.Helper()
	cfg := Config{
		UploadDir: t.TempDir(),
		OutputDir: t.TempDir(),
		Logger:    quietLogger(),
	}
	s := New(cfg)
	if convert != nil {
		s.WithConvertFunc(convert)
	}
	return s
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestIndexServesForm(t *testing.T) {
	s := testServer(t, nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("multipart/form-data")) {
		t.Error("index page should contain an upload form")
	}
}

func TestUploadConvertsAndRedirects(t *testing.T) {
	var gotPDF, gotXLSX string
	convert := func(ctx context.Context, pdfPath, xlsxPath string) error {
		gotPDF = pdfPath
		gotXLSX = xlsxPath
		return os.WriteFile(xlsxPath, []byte("workbook"), 0o644)
	}
	s := testServer(t, convert)

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, uploadRequest(t, "bank statement.pdf", []byte("%PDF-1.4 fake")))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/output/bank_statement_converted.xlsx" {
		t.Errorf("Location = %q", loc)
	}
	if filepath.Base(gotPDF) != "bank_statement.pdf" {
		t.Errorf("staged PDF = %q", gotPDF)
	}
	staged, err := os.ReadFile(gotPDF)
	if err != nil || string(staged) != "%PDF-1.4 fake" {
		t.Errorf("staged content = %q, err = %v", staged, err)
	}
	if _, err := os.Stat(gotXLSX); err != nil {
		t.Errorf("workbook not written: %v", err)
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	s := testServer(t, func(ctx context.Context, pdfPath, xlsxPath string) error {
		t.Error("convert should not be called for a rejected upload")
		return nil
	})

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, uploadRequest(t, "notes.txt", []byte("hello")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	s := testServer(t, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	s.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUploadConversionFailure(t *testing.T) {
	s := testServer(t, func(ctx context.Context, pdfPath, xlsxPath string) error {
		return errors.New("scrambled page")
	})

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, uploadRequest(t, "doc.pdf", []byte("%PDF")))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestDownload(t *testing.T) {
	s := testServer(t, nil)
	path := filepath.Join(s.cfg.OutputDir, "doc_converted.xlsx")
	if err := os.WriteFile(path, []byte("workbook bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/output/doc_converted.xlsx", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="doc_converted.xlsx"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if rec.Body.String() != "workbook bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestDownloadMissingFile(t *testing.T) {
	s := testServer(t, nil)

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/output/absent.xlsx", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDownloadRejectsTraversal(t *testing.T) {
	s := testServer(t, nil)

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/output/..%2Fsecret.xlsx", nil))

	if rec.Code == http.StatusOK {
		t.Error("traversal attempt should not succeed")
	}
}

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"report.pdf", "report.pdf"},
		{"bank statement.pdf", "bank_statement.pdf"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\evil.pdf", "evil.pdf"},
		{"résumé.pdf", "r_sum_.pdf"},
		{"...", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := secureFilename(tt.in); got != tt.expected {
			t.Errorf("secureFilename(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.defaults()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.UploadDir != "uploads" || cfg.OutputDir != "output" {
		t.Errorf("dirs = %q, %q", cfg.UploadDir, cfg.OutputDir)
	}
	if cfg.MaxUploadSize != 100*1024*1024 {
		t.Errorf("MaxUploadSize = %d", cfg.MaxUploadSize)
	}
	if cfg.DPI != 200 {
		t.Errorf("DPI = %v", cfg.DPI)
	}
	if cfg.Logger == nil {
		t.Error("Logger should default to slog.Default()")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "addr: \":9000\"\nupload_dir: /tmp/up\nmax_upload_size: 1024\ndpi: 300\nocr_language: eng+fra\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.UploadDir != "/tmp/up" || cfg.MaxUploadSize != 1024 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.DPI != 300 || cfg.OCRLanguage != "eng+fra" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
