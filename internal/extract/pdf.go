package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mlindemann/menucard-importer/constants"
)

// extractPDFBytes runs two-phase PDF extraction: embedded text layer first,
// rasterize-and-OCR only when the text layer is whitespace (scanned menus).
func (e *Extractor) extractPDFBytes(ctx context.Context, data []byte) Result {
	path, cleanup, err := writeTemp(data, ".pdf")
	if err != nil {
		return Result{SourceFormat: constants.PDF, Method: "none", Warnings: []string{err.Error()}}
	}
	defer cleanup()

	text, pages, warns, err := e.pdfToText(ctx, path)
	if err != nil {
		warns = warnf(warns, "pdftotext: %v", err)
	}
	if strings.TrimSpace(text) != "" {
		return Result{Text: text, SourceFormat: constants.PDF, Method: "pdf-text", Pages: pages, Warnings: warns}
	}

	ocrText, ocrPages, ocrWarns, err := e.pdfToOCR(ctx, path)
	warns = append(warns, ocrWarns...)
	if err != nil {
		warns = warnf(warns, "pdf ocr: %v", err)
		return Result{SourceFormat: constants.PDF, Method: "none", Warnings: warns}
	}
	return Result{Text: ocrText, SourceFormat: constants.PDF, Method: "pdf-ocr", Pages: ocrPages, Warnings: warns}
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}
	text = string(out)
	// A form-feed \f is used as page separator by default
	pages = 1 + strings.Count(text, "\f")
	return text, pages, nil, nil
}

func (e *Extractor) pdfToOCR(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	tmpDir, err := os.MkdirTemp("", "mc-pp-*")
	if err != nil {
		return "", 0, nil, err
	}
	defer func() {
		if rerr := os.RemoveAll(tmpDir); rerr != nil {
			e.logger.Warn("remove temp dir failed", "dir", tmpDir, "error", rerr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		txt, w, err := e.tesseractOCR(ctx, img)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(txt)
		warns = append(warns, w...)
	}
	pages = len(matches)
	return b.String(), pages, warns, nil
}
