// Package server provides the HTTP upload/download transport around the
// PDF-to-spreadsheet converter: POST a PDF, get redirected to the
// generated workbook.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tsawler/sheetgrid"
)

// ConvertFunc converts a staged PDF into a workbook at xlsxPath. The
// default implementation runs the full sheetgrid pipeline; tests substitute
// a stub.
type ConvertFunc func(ctx context.Context, pdfPath, xlsxPath string) error

// Server handles PDF upload, conversion, and workbook download.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	convert ConvertFunc
}

// New creates a server. The zero Config is usable; defaults are applied.
func New(cfg Config) *Server {
	cfg.defaults()
	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
	}
	s.convert = s.defaultConvert
	return s
}

// WithConvertFunc overrides the conversion pipeline; used by tests.
func (s *Server) WithConvertFunc(fn ConvertFunc) *Server {
	s.convert = fn
	return s
}

func (s *Server) defaultConvert(ctx context.Context, pdfPath, xlsxPath string) error {
	c := sheetgrid.Open(pdfPath).
		DPI(s.cfg.DPI).
		MaxFileSize(s.cfg.MaxUploadSize).
		WithLogger(s.logger)
	if s.cfg.OCRLanguage != "" {
		c = c.Language(s.cfg.OCRLanguage)
	}
	return c.WriteXLSXFile(ctx, xlsxPath)
}

// Routes returns the HTTP handler: an upload form and handler at /, and
// workbook downloads at /output/{filename}.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/", s.handleIndex)
	r.Post("/", s.handleUpload)
	r.Get("/output/{filename}", s.handleDownload)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start))
	})
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>PDF to Excel Converter</title></head>
<body>
<h1>PDF to Excel Converter</h1>
<form method="post" enctype="multipart/form-data">
<input type="file" name="file" accept=".pdf">
<input type="submit" value="Convert">
</form>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexHTML)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	name := secureFilename(header.Filename)
	if name == "" || !strings.EqualFold(filepath.Ext(name), ".pdf") {
		http.Error(w, "only PDF files are accepted", http.StatusBadRequest)
		return
	}

	pdfPath := filepath.Join(s.cfg.UploadDir, name)
	if err := s.stage(file, pdfPath); err != nil {
		s.logger.Error("staging upload failed", "file", name, "error", err)
		http.Error(w, "failed to store upload", http.StatusInternalServerError)
		return
	}

	xlsxName := strings.TrimSuffix(name, filepath.Ext(name)) + "_converted.xlsx"
	xlsxPath := filepath.Join(s.cfg.OutputDir, xlsxName)

	if err := s.convert(r.Context(), pdfPath, xlsxPath); err != nil {
		s.logger.Error("conversion failed", "file", name, "error", err)
		http.Error(w, fmt.Sprintf("processing failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	s.logger.Info("converted upload", "file", name, "output", xlsxName)
	http.Redirect(w, r, "/output/"+xlsxName, http.StatusSeeOther)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if name != secureFilename(name) {
		http.Error(w, "invalid filename", http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.cfg.OutputDir, name)
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

func (s *Server) stage(src io.Reader, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// secureFilename reduces a client-supplied filename to a safe basename:
// path components stripped, unsafe characters collapsed to underscores.
// Returns "" for names with no safe characters left.
func secureFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return ""
	}
	return name
}
