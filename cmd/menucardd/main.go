package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/mlindemann/menucard-importer/internal/common"
	"github.com/mlindemann/menucard-importer/internal/export"
	"github.com/mlindemann/menucard-importer/internal/extract"
	"github.com/mlindemann/menucard-importer/internal/llm"
	"github.com/mlindemann/menucard-importer/internal/menu"
	"github.com/mlindemann/menucard-importer/internal/pipeline"
	"github.com/mlindemann/menucard-importer/internal/repository"
	"github.com/mlindemann/menucard-importer/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

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

	jobs, err := repository.OpenJobStore(ctx, cfg.DB.Path)
	if err != nil {
		logger.Error("open job store", "path", cfg.DB.Path, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := jobs.Close(); cerr != nil {
			logger.Error("close job store", "error", cerr)
		}
	}()

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
	renderer := export.NewRenderer(cfg.Export.TemplatePath, logger)
	processor := pipeline.NewProcessor(logger, extractor, engine, jobs)

	e := server.New(processor, renderer, jobs, logger).Router()

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
