package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/mlindemann/menucard-importer/internal/common"
	"github.com/mlindemann/menucard-importer/internal/export"
	"github.com/mlindemann/menucard-importer/internal/extract"
	"github.com/mlindemann/menucard-importer/internal/llm"
	"github.com/mlindemann/menucard-importer/internal/menu"
	"github.com/mlindemann/menucard-importer/internal/pipeline"
)

// menuproc processes one menu file start-to-finish and writes the POS import
// CSV to stdout or to the given output path.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 || len(os.Args) > 3 {
		logger.Error("usage", "cmd", "menuproc <menu-file> [out.csv]")
		os.Exit(2)
	}
	inPath := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		logger.Error("read input file", "path", inPath, "error", err)
		os.Exit(1)
	}

	client, err := llm.NewClient(llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	if err != nil {
		logger.Error("construct llm client", "error", err)
		os.Exit(1)
	}

	extractor := extract.NewExtractor(extract.Config{
		Pdftotext:     cfg.OCR.Pdftotext,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		HeicConverter: cfg.OCR.HeicConverter,
		TessdataDir:   cfg.OCR.TessdataDir,
	}, logger)

	engine := menu.NewEngine(client, cfg.Menu.ChunkSize, logger)
	processor := pipeline.NewProcessor(logger, extractor, engine, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	out, err := processor.ProcessFile(ctx, data, inPath)
	if err != nil {
		logger.Error("process file", "path", inPath, "error", err)
		os.Exit(1)
	}
	if failed := out.Result.FailedChunks(); failed > 0 {
		logger.Warn("some chunks failed", "failed", failed, "total", len(out.Result.Chunks))
	}

	renderer := export.NewRenderer(cfg.Export.TemplatePath, logger)
	csvText, err := renderer.RenderCSV(out.Result.Items)
	if err != nil {
		logger.Error("render csv", "error", err)
		os.Exit(1)
	}

	if len(os.Args) == 3 {
		if err := os.WriteFile(os.Args[2], []byte(csvText), 0o644); err != nil {
			logger.Error("write output", "path", os.Args[2], "error", err)
			os.Exit(1)
		}
		logger.Info("csv written", "path", os.Args[2], "items", len(out.Result.Items))
		return
	}
	if _, err := os.Stdout.WriteString(csvText); err != nil {
		logger.Error("write stdout", "error", err)
		os.Exit(1)
	}
}
