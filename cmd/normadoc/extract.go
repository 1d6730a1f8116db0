package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jiarana/normadoc"
	"github.com/jiarana/normadoc/internal/output"
	"github.com/jiarana/normadoc/profile"
)

var (
	flagArchivo   string
	flagInputDir  string
	flagOutputDir string
	flagNoFigures bool
	flagDPI       float64
	flagProfile   string
	flagVerbose   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured JSON from the PDFs in the input directory",
	Long: `Extract processes every PDF in the input directory — or a single one named
with --archivo — and writes per-document JSON records, a tables-only JSON
artifact, and the rendered figure images.

A failure in one document never aborts the batch: the document is reported
and skipped. The run fails only when the input directory is missing, an
explicitly named file does not exist, or no PDFs are found at all.

Examples:
  normadoc extract
  normadoc extract --archivo une_23007.pdf
  normadoc extract --input ./pdfs --output ./output --dpi 300
  normadoc extract --profile family.yaml --sin-figuras`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&flagArchivo, "archivo", "", "Process a single PDF inside the input directory")
	extractCmd.Flags().StringVar(&flagInputDir, "input", "pdfs", "Directory containing the PDFs to process")
	extractCmd.Flags().StringVar(&flagOutputDir, "output", "output", "Directory for the JSON records and figures")
	extractCmd.Flags().BoolVar(&flagNoFigures, "sin-figuras", false, "Disable figure extraction")
	extractCmd.Flags().Float64Var(&flagDPI, "dpi", 150, "Rasterization density for figure rendering")
	extractCmd.Flags().StringVar(&flagProfile, "profile", "", "YAML document-family profile (default: built-in UNE)")
	extractCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := newLogger(flagVerbose)

	prof := profile.UNE()
	if flagProfile != "" {
		loaded, err := profile.Load(flagProfile)
		if err != nil {
			return err
		}
		prof = loaded
	}

	pdfs, err := findPDFs(flagInputDir, flagArchivo)
	if err != nil {
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	logger.Info("starting batch", "documents", len(pdfs))

	processed := 0
	for _, path := range pdfs {
		if err := processDocument(path, prof, writer, logger); err != nil {
			// Per-document isolation: report and continue with the rest.
			logger.Error("document failed", "document", path, "error", err)
			continue
		}
		processed++
	}

	logger.Info("batch finished", "processed", processed, "failed", len(pdfs)-processed)
	return nil
}

// processDocument runs the pipeline over one PDF and writes its artifacts.
func processDocument(path string, prof *profile.Profile, writer *output.Writer, logger *slog.Logger) error {
	logger.Info("processing", "document", path)

	pipeline := normadoc.Open(path).
		WithProfile(prof).
		WithDPI(flagDPI).
		WithLogger(logger)
	if flagNoFigures {
		pipeline = pipeline.WithoutFigures()
	}

	record, warnings, err := pipeline.Record()
	if err != nil {
		if errors.Is(err, normadoc.ErrNoText) {
			logger.Warn("no extractable text, document skipped", "document", path)
			return nil
		}
		return err
	}
	for _, w := range warnings {
		logger.Warn(w.Message, "document", path, "code", string(w.Code), "page", w.Page)
	}

	written, err := writer.Write(baseName(path), record)
	if err != nil {
		return err
	}
	logger.Info("written", "record", written,
		"sections", len(record.Sections),
		"tables", len(record.Tables),
		"figures", len(record.Figures))
	return nil
}

// findPDFs resolves the documents to process. A missing input directory, a
// named file that does not exist, or an empty directory are the only fatal
// conditions of a run.
func findPDFs(inputDir, archivo string) ([]string, error) {
	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("input directory %s does not exist", inputDir)
	}

	if archivo != "" {
		path := filepath.Join(inputDir, archivo)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("file %s not found", path)
		}
		return []string{path}, nil
	}

	matches, err := filepath.Glob(filepath.Join(inputDir, "*.pdf"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", inputDir)
	}
	return matches, nil
}

// baseName flattens a PDF path into the artifact base name.
func baseName(path string) string {
	base := filepath.Base(path)
	base = base[:len(base)-len(filepath.Ext(base))]
	base = filepath.ToSlash(base)
	return sanitize(base)
}

func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r == ' ':
			out = append(out, '_')
		case r == '=':
			out = append(out, '-')
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
