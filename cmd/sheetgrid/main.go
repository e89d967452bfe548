package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsawler/sheetgrid"
	"github.com/tsawler/sheetgrid/server"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetgrid",
		Short: "Convert PDF documents into structured Excel data",
		Long: `Sheetgrid converts PDF content into structured Excel workbooks.

Pages are rasterized and OCR'd, the recovered text is classified into
tables, headers, list items, financial-data lines, and paragraphs, and
native text-layer tables are extracted alongside. Everything is
consolidated into one workbook with a data sheet and a summary sheet.

OCR requires a build with the "ocr" tag and a Tesseract installation.`,
		Version: version,
	}

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func convertCmd() *cobra.Command {
	var (
		output    string
		dpi       float64
		language  string
		grayscale bool
		noNative  bool
		pages     []int
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file.pdf>",
		Short: "Convert one PDF into an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if output == "" {
				base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
				output = base + "_converted.xlsx"
			}

			setupLogging(verbose)

			c := sheetgrid.Open(input).DPI(dpi)
			if language != "" {
				c = c.Language(language)
			}
			if grayscale {
				c = c.Grayscale()
			}
			if noNative {
				c = c.WithoutNativeTables()
			}
			if len(pages) > 0 {
				c = c.Pages(pages...)
			}

			if err := c.WriteXLSXFile(cmd.Context(), output); err != nil {
				return err
			}
			fmt.Println("wrote", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output workbook path (default: <input>_converted.xlsx)")
	cmd.Flags().Float64Var(&dpi, "dpi", 200, "render resolution for OCR")
	cmd.Flags().StringVar(&language, "lang", "", "OCR language(s), e.g. eng+fra")
	cmd.Flags().BoolVar(&grayscale, "grayscale", false, "render pages in grayscale before OCR")
	cmd.Flags().BoolVar(&noNative, "no-native", false, "skip text-layer table extraction")
	cmd.Flags().IntSliceVar(&pages, "pages", nil, "pages to convert (1-indexed, default all)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload/download conversion server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			var cfg server.Config
			if configPath != "" {
				loaded, err := server.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(cfg).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
