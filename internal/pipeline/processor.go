package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mlindemann/menucard-importer/constants"
	"github.com/mlindemann/menucard-importer/internal/extract"
	"github.com/mlindemann/menucard-importer/internal/menu"
	"github.com/mlindemann/menucard-importer/internal/repository"
)

// Processor coordinates text extraction then menu structuring for one upload,
// recording the outcome in the job store. Uploads run start-to-finish, one at
// a time; there is no shared mutable state between them.
type Processor struct {
	Logger    *slog.Logger
	Extractor *extract.Extractor
	Engine    *menu.Engine
	Jobs      *repository.JobStore // optional; nil disables history
}

func NewProcessor(logger *slog.Logger, ex *extract.Extractor, en *menu.Engine, jobs *repository.JobStore) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Extractor: ex, Engine: en, Jobs: jobs}
}

// Output is everything one processed upload produced.
type Output struct {
	JobID        uuid.UUID           `json:"job_id,omitempty"`
	Filename     string              `json:"filename"`
	SourceFormat string              `json:"source_format"`
	Method       string              `json:"method"`
	Result       menu.Result         `json:"result"`
	Warnings     []string            `json:"warnings,omitempty"`
	Status       constants.JobStatus `json:"status"`
}

// ProcessFile extracts text from the upload and structures it into records.
// Extraction-level failures (undecodable .txt, nothing extractable) are fatal
// for the file and returned as errors; chunk-level failures degrade to
// warnings inside the Output. An upload where every chunk failed is recorded
// FAILED but still returns the (empty) aggregate so the caller can decide.
func (p *Processor) ProcessFile(ctx context.Context, data []byte, filename string) (Output, error) {
	var jobID uuid.UUID
	if p.Jobs != nil {
		job, err := p.Jobs.Start(ctx, filename, constants.MapExtToFormat(filepath.Ext(filename)))
		if err != nil {
			// History is best-effort; processing continues without it.
			p.Logger.Warn("pipeline.job_start_failed", "filename", filename, "error", err)
		} else {
			jobID = job.ID
		}
	}

	out := Output{JobID: jobID, Filename: filename}

	res, err := p.Extractor.Extract(ctx, data, filename)
	if err != nil {
		p.Logger.Error("pipeline.extract.failed", "filename", filename, "error", err)
		p.finish(ctx, jobID, constants.JobStatusFailed, repository.JobOutcome{ErrorMessage: err.Error()})
		return out, err
	}
	out.SourceFormat = string(res.SourceFormat)
	out.Method = res.Method
	out.Warnings = append(out.Warnings, res.Warnings...)

	result, err := p.Engine.Structure(ctx, res.Text)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			p.Logger.Error("pipeline.structure.aborted", "filename", filename, "error", err)
		} else {
			p.Logger.Error("pipeline.structure.failed", "filename", filename, "error", err)
		}
		p.finish(ctx, jobID, constants.JobStatusFailed, repository.JobOutcome{ErrorMessage: err.Error()})
		return out, err
	}
	out.Result = result
	for _, c := range result.Chunks {
		if c.Error != "" {
			out.Warnings = append(out.Warnings, c.Error)
		}
	}

	status := constants.JobStatusOK
	failed := result.FailedChunks()
	switch {
	case failed == 0:
	case failed == len(result.Chunks):
		status = constants.JobStatusFailed
	default:
		status = constants.JobStatusPartial
	}
	out.Status = status

	p.finish(ctx, jobID, status, repository.JobOutcome{
		ChunkCount:   len(result.Chunks),
		FailedChunks: failed,
		ItemCount:    len(result.Items),
		DroppedItems: result.DroppedItems(),
	})

	p.Logger.Info("pipeline.done",
		"filename", filename,
		"job_id", jobID,
		"status", string(status),
		"items", len(result.Items),
		"failed_chunks", failed,
	)
	return out, nil
}

func (p *Processor) finish(ctx context.Context, jobID uuid.UUID, status constants.JobStatus, out repository.JobOutcome) {
	if p.Jobs == nil || jobID == uuid.Nil {
		return
	}
	if err := p.Jobs.Finish(ctx, jobID, status, out); err != nil {
		p.Logger.Warn("pipeline.job_finish_failed", "job_id", jobID, "error", err)
	}
}
