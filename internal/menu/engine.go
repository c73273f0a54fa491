package menu

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/mlindemann/menucard-importer/internal/common"
	"github.com/mlindemann/menucard-importer/internal/llm"
)

// ChunkStatus records how one chunk fared. A failed chunk contributes zero
// items but never aborts the remaining chunks.
type ChunkStatus struct {
	Index   int    `json:"index"`
	Items   int    `json:"items"`
	Dropped int    `json:"dropped"` // elements discarded by validation
	Error   string `json:"error,omitempty"`
}

// Result is the aggregate over all chunks of one document. Zero items with
// zero failed chunks is a valid outcome; the caller decides what an
// all-chunks-failed aggregate means.
type Result struct {
	Items  []ItemRecord  `json:"items"`
	Chunks []ChunkStatus `json:"chunks"`
}

// FailedChunks counts chunks that contributed nothing due to a completion or
// parse failure.
func (r Result) FailedChunks() int {
	n := 0
	for _, c := range r.Chunks {
		if c.Error != "" {
			n++
		}
	}
	return n
}

// DroppedItems counts elements discarded by validation across all chunks.
func (r Result) DroppedItems() int {
	n := 0
	for _, c := range r.Chunks {
		n += c.Dropped
	}
	return n
}

// Engine turns extracted plain text into validated menu item records.
type Engine struct {
	client    llm.Client
	chunkSize int
	logger    *slog.Logger
}

func NewEngine(client llm.Client, chunkSize int, logger *slog.Logger) *Engine {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{client: client, chunkSize: chunkSize, logger: logger}
}

// Structure chunks the text, prompts the completion backend once per chunk,
// repairs and parses each response, validates every element, and aggregates
// the surviving records in chunk order.
func (e *Engine) Structure(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, common.NewAppError("NO_TEXT",
			"no text could be extracted from the uploaded file", common.ErrNoExtractableText)
	}

	start := time.Now()
	chunks := SplitChunks(text, e.chunkSize)
	res := Result{Chunks: make([]ChunkStatus, 0, len(chunks))}

	e.logger.Info("menu.structure.start", "text_len", len(text), "chunks", len(chunks))

	for i, chunk := range chunks {
		status := ChunkStatus{Index: i}

		resp, err := e.client.GenerateText(ctx, BuildPrompt(chunk), llm.Options{})
		if err != nil {
			e.logger.Warn("menu.structure.chunk_completion_failed", "chunk", i, "error", err)
			status.Error = err.Error()
			res.Chunks = append(res.Chunks, status)
			continue
		}

		elems, err := ParseItems(resp)
		if err != nil {
			e.logger.Warn("menu.structure.chunk_parse_failed", "chunk", i, "error", err)
			status.Error = err.Error()
			res.Chunks = append(res.Chunks, status)
			continue
		}

		records, dropped := validateElements(elems)
		status.Items = len(records)
		status.Dropped = dropped
		if dropped > 0 {
			e.logger.Warn("menu.structure.elements_dropped", "chunk", i, "dropped", dropped)
		}
		res.Items = append(res.Items, records...)
		res.Chunks = append(res.Chunks, status)
	}

	e.logger.Info("menu.structure.done",
		"chunks", len(chunks),
		"failed_chunks", res.FailedChunks(),
		"items", len(res.Items),
		"dropped", res.DroppedItems(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// validateElements keeps the elements that satisfy the item schema and can
// be unmarshaled; everything else is silently dropped, not repaired.
func validateElements(elems []json.RawMessage) ([]ItemRecord, int) {
	records := make([]ItemRecord, 0, len(elems))
	dropped := 0
	for _, elem := range elems {
		var v any
		if err := json.Unmarshal(elem, &v); err != nil {
			dropped++
			continue
		}
		if err := itemSchema.Validate(v); err != nil {
			dropped++
			continue
		}
		var rec ItemRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			dropped++
			continue
		}
		if rec.Quantity <= 0 {
			rec.Quantity = 1
		}
		records = append(records, rec)
	}
	return records, dropped
}
