package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mlindemann/menucard-importer/constants"
	"github.com/mlindemann/menucard-importer/internal/common"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng+deu"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit

	HeicConverter string // "heif-convert" | "magick" | "sips"
	TessdataDir   string
}

type Result struct {
	Text         string
	SourceFormat constants.SourceFormat
	Method       string // "pdf-text" | "pdf-ocr" | "image-ocr" | "docx" | "plain-text" | "none"
	Pages        int
	Duration     time.Duration
	Warnings     []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng+deu"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract decodes raw upload bytes into plain text, dispatching on the file
// extension. Only a .txt upload with invalid UTF-8 returns an error; every
// other path returns best-effort text, empty if nothing was extractable.
func (e *Extractor) Extract(ctx context.Context, data []byte, filename string) (Result, error) {
	start := time.Now()
	format := constants.MapExtToFormat(filepath.Ext(filename))
	e.logger.Debug("extract.start", "filename", filename, "format", string(format), "bytes", len(data))

	var res Result
	switch format {
	case constants.TXT:
		if !utf8.Valid(data) {
			return Result{SourceFormat: constants.TXT}, common.NewAppError(
				"TXT_DECODE", "text file is not valid UTF-8", common.ErrExtraction)
		}
		res = Result{Text: strings.TrimSpace(string(data)), SourceFormat: constants.TXT, Method: "plain-text", Pages: 1}
	case constants.DOCX:
		text, warns := extractDOCX(data)
		res = Result{Text: text, SourceFormat: constants.DOCX, Method: "docx", Pages: 1, Warnings: warns}
	case constants.IMAGE:
		res = e.extractImageBytes(ctx, data, filepath.Ext(filename))
	case constants.PDF:
		res = e.extractPDFBytes(ctx, data)
	default:
		// No reliable extension hint: try PDF first, then image OCR, then
		// give up with empty text.
		res = e.extractPDFBytes(ctx, data)
		if strings.TrimSpace(res.Text) == "" {
			img := e.extractImageBytes(ctx, data, "")
			if strings.TrimSpace(img.Text) != "" {
				res = img
			} else {
				res.Warnings = append(res.Warnings, img.Warnings...)
				res.Text = ""
				res.Method = "none"
			}
		}
		res.SourceFormat = constants.UNKNOWN
	}

	res.Text = strings.TrimSpace(res.Text)
	res.Duration = time.Since(start)
	e.logger.Info("extract.done",
		"filename", filename,
		"format", string(res.SourceFormat),
		"method", res.Method,
		"pages", res.Pages,
		"text_len", len(res.Text),
		"warnings", len(res.Warnings),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// writeTemp materializes upload bytes for the external tools, which only
// accept file paths. Returns the path and a cleanup func.
func writeTemp(data []byte, ext string) (string, func(), error) {
	f, err := os.CreateTemp("", "mc-in-*"+ext)
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

func warnf(warns []string, format string, args ...any) []string {
	return append(warns, fmt.Sprintf(format, args...))
}
