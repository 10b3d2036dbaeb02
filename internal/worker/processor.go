// Package worker normalises stored documents in concurrent batches.
package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/edgard/texttidy/internal/database"
	"github.com/edgard/texttidy/pkg/pipeline"
	"github.com/edgard/texttidy/pkg/tidy"
)

// DocumentStore is the subset of database.Store the processor needs.
type DocumentStore interface {
	GetPendingDocuments(ctx context.Context, limit int) ([]*database.Document, error)
	SaveNormalized(ctx context.Context, results []database.NormalizedResult, pipeline string) error
}

// Options sizes a Processor.
type Options struct {
	Concurrency  int    // chunks normalised at once
	BatchSize    int    // documents fetched per ProcessPending call
	ChunkSize    int    // documents per pipeline run
	PipelineName string // recorded with every result
	Verbose      bool
}

// Processor normalises pending documents with one pipeline definition.
type Processor struct {
	store      DocumentStore
	registry   *pipeline.Registry
	definition pipeline.Definition
	opts       Options
	logger     *slog.Logger
}

// NewProcessor validates def against reg and returns a Processor.
func NewProcessor(store DocumentStore, reg *pipeline.Registry, def pipeline.Definition, opts Options, logger *slog.Logger) (*Processor, error) {
	if store == nil {
		return nil, errors.New("processor requires a document store")
	}
	if reg == nil {
		return nil, errors.New("processor requires a registry")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = database.DefaultPendingLimit
	}
	if opts.ChunkSize < 1 {
		opts.ChunkSize = opts.BatchSize
	}

	// Bind once up front so a bad definition fails here and not inside a task.
	if _, err := pipeline.New(def, reg); err != nil {
		return nil, fmt.Errorf("invalid pipeline %q: %w", opts.PipelineName, err)
	}

	return &Processor{
		store:      store,
		registry:   reg,
		definition: def,
		opts:       opts,
		logger:     logger.With("component", "worker"),
	}, nil
}

// ProcessPending normalises up to BatchSize pending documents and stores the
// results in one transaction. It returns how many documents were normalised.
// A failing chunk aborts the batch without writing anything.
func (p *Processor) ProcessPending(ctx context.Context) (int, error) {
	start := time.Now()

	docs, err := p.store.GetPendingDocuments(ctx, p.opts.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch pending documents: %w", err)
	}
	if len(docs) == 0 {
		p.logger.DebugContext(ctx, "No pending documents")
		return 0, nil
	}

	chunks := chunk(docs, p.opts.ChunkSize)
	results := make([][]database.NormalizedResult, len(chunks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, c := range chunks {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := p.normalizeChunk(c)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.ErrorContext(ctx, "Batch normalisation failed", "documents", len(docs), "error", err)
		return 0, err
	}

	all := make([]database.NormalizedResult, 0, len(docs))
	for _, r := range results {
		all = append(all, r...)
	}
	if err := p.store.SaveNormalized(ctx, all, p.opts.PipelineName); err != nil {
		return 0, fmt.Errorf("failed to store normalized documents: %w", err)
	}

	p.logger.InfoContext(ctx, "Normalised pending documents",
		"documents", len(all), "chunks", len(chunks), "pipeline", p.opts.PipelineName, "duration", time.Since(start))
	return len(all), nil
}

// Drain calls ProcessPending until no pending documents remain and returns
// the total normalised.
func (p *Processor) Drain(ctx context.Context) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := p.ProcessPending(ctx)
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
}

// normalizeChunk runs a private pipeline instance over one chunk.
func (p *Processor) normalizeChunk(docs []*database.Document) ([]database.NormalizedResult, error) {
	pl, err := pipeline.New(p.definition, p.registry,
		pipeline.WithVerbose(p.opts.Verbose), pipeline.WithLogger(p.logger))
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}
	out, err := pl.Process(tidy.Batch(texts))
	if err != nil {
		return nil, err
	}

	normalized := out.Strings()
	if len(normalized) != len(docs) {
		return nil, fmt.Errorf("pipeline returned %d results for %d documents", len(normalized), len(docs))
	}
	res := make([]database.NormalizedResult, len(docs))
	for i, d := range docs {
		res[i] = database.NormalizedResult{ID: d.ID, Normalized: normalized[i]}
	}
	return res, nil
}

func chunk[T any](items []T, size int) [][]T {
	var out [][]T
	for size < len(items) {
		items, out = items[size:], append(out, items[:size:size])
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}
