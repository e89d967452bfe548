package server

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config configures the conversion server.
type Config struct {
	// Addr is the listen address (default ":8080").
	Addr string `yaml:"addr"`

	// UploadDir is where uploaded PDFs are staged (default "uploads").
	UploadDir string `yaml:"upload_dir"`

	// OutputDir is where converted workbooks are written (default
	// "output").
	OutputDir string `yaml:"output_dir"`

	// MaxUploadSize is the maximum accepted upload in bytes (default
	// 100 MB).
	MaxUploadSize int64 `yaml:"max_upload_size"`

	// DPI is the render resolution passed to the converter (default 200).
	DPI float64 `yaml:"dpi"`

	// OCRLanguage is the Tesseract language string, "+"-separated. Empty
	// uses the engine default.
	OCRLanguage string `yaml:"ocr_language"`

	// Logger for request and conversion messages.
	Logger *slog.Logger `yaml:"-"`
}

func (c *Config) defaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploads"
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.MaxUploadSize <= 0 {
		c.MaxUploadSize = 100 * 1024 * 1024
	}
	if c.DPI <= 0 {
		c.DPI = 200
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
