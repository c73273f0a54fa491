package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mlindemann/menucard-importer/constants"
)

func (e *Extractor) extractImageBytes(ctx context.Context, data []byte, ext string) Result {
	path, cleanup, err := writeTemp(data, strings.ToLower(ext))
	if err != nil {
		return Result{SourceFormat: constants.IMAGE, Method: "none", Warnings: []string{err.Error()}}
	}
	defer cleanup()

	var warns []string
	if constants.IsHEICExt(ext) {
		out, w, hcleanup, herr := e.convertHEICtoPNG(ctx, path)
		warns = append(warns, w...)
		if herr != nil {
			if hcleanup != nil {
				hcleanup()
			}
			warns = warnf(warns, "heic conversion: %v", herr)
			return Result{SourceFormat: constants.IMAGE, Method: "none", Warnings: warns}
		}
		defer hcleanup()
		path = out
	}

	txt, w, err := e.tesseractOCR(ctx, path)
	warns = append(warns, w...)
	if err != nil {
		warns = warnf(warns, "tesseract: %v", err)
		return Result{SourceFormat: constants.IMAGE, Method: "none", Warnings: warns}
	}
	return Result{Text: txt, SourceFormat: constants.IMAGE, Method: "image-ocr", Pages: 1, Warnings: warns}
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	args := []string{path, "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil, nil
}

// convertHEICtoPNG converts a HEIC/HEIF file to a temporary PNG using the
// configured converter: "heif-convert" | "magick" | "sips".
// Returns (outPath, warnings, cleanup, err). Call cleanup() to remove temp files.
func (e *Extractor) convertHEICtoPNG(ctx context.Context, in string) (string, []string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "mc-heic-*")
	if err != nil {
		return "", nil, nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }
	out := filepath.Join(tmpDir, "page.png")

	switch e.cfg.HeicConverter {
	case "heif-convert":
		if _, errb, err2 := e.runner.Run(ctx, "heif-convert", in, out); err2 != nil {
			return "", []string{string(errb)}, cleanup, fmt.Errorf("heif-convert failed: %w", err2)
		}
	case "magick":
		if _, errb, err2 := e.runner.Run(ctx, "magick", in, out); err2 != nil {
			return "", []string{string(errb)}, cleanup, fmt.Errorf("magick convert failed: %w", err2)
		}
	case "sips":
		if _, errb, err2 := e.runner.Run(ctx, "sips", "-s", "format", "png", in, "--out", out); err2 != nil {
			return "", []string{string(errb)}, cleanup, fmt.Errorf("sips convert failed: %w", err2)
		}
	default:
		return "", nil, cleanup, fmt.Errorf("HEIC not supported: set extract.Config.HeicConverter to one of: heif-convert | magick | sips")
	}

	if _, statErr := os.Stat(out); statErr != nil {
		return "", nil, cleanup, fmt.Errorf("HEIC conversion produced no output: %v", statErr)
	}
	return out, nil, cleanup, nil
}
