// Package run drives the scan → extract → embed → upload sequence and
// aggregates run statistics.
package run

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/devrag/devrag/internal/chunk"
	"github.com/devrag/devrag/internal/config"
	"github.com/devrag/devrag/internal/embed"
	"github.com/devrag/devrag/internal/extract"
	"github.com/devrag/devrag/internal/scan"
	"github.com/devrag/devrag/internal/store"
	"github.com/devrag/devrag/internal/vectorize"
)

// warningMessageLimit bounds the error text recorded per file warning.
const warningMessageLimit = 120

// Orchestrator runs the full vectorization sequence over a source tree.
// Extraction passes run strictly one after another and files are processed
// one at a time, so chunk order matches discovery order.
type Orchestrator struct {
	cfg      *config.Config
	provider embed.Provider
	vectors  store.VectorStore
	progress ProgressReporter
}

// New creates an orchestrator. progress may be nil.
func New(cfg *config.Config, provider embed.Provider, vectors store.VectorStore, progress ProgressReporter) *Orchestrator {
	if progress == nil {
		progress = NoOpProgressReporter{}
	}

	return &Orchestrator{
		cfg:      cfg,
		provider: provider,
		vectors:  vectors,
		progress: progress,
	}
}

// Run processes the tree at rootDir and returns run statistics. The stats
// object is always returned; failures short of context cancellation are
// recorded in it rather than raised.
func (o *Orchestrator) Run(ctx context.Context, repoURL, rootDir string) (*ProcessingStats, error) {
	startTime := time.Now()
	stats := newStats(repoURL, rootDir)

	// Collection setup failure is fatal: abort before any extraction.
	if err := o.vectors.EnsureCollection(ctx, o.cfg.Store.Collection, o.cfg.Embedding.Dimensions); err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("failed to set up collection: %v", err))
		stats.ProcessingTime = time.Since(startTime)
		return stats, nil
	}

	chunks, err := o.extractChunks(ctx, rootDir, stats)
	if err != nil {
		return stats, err
	}
	stats.ChunksCreated = len(chunks)
	o.progress.OnExtractionComplete(len(chunks))

	if len(chunks) > 0 {
		o.progress.OnUploadStart(len(chunks))

		pipeline := vectorize.NewPipeline(o.provider, o.vectors, o.cfg, batchObserver{o.progress})
		result, err := pipeline.Process(ctx, chunks)
		if result != nil {
			stats.ChunksUploaded = result.Uploaded
			stats.Errors = append(stats.Errors, result.Errors...)
		}
		if err != nil {
			return stats, err
		}
	}

	stats.ProcessingTime = time.Since(startTime)
	o.progress.OnComplete(stats)
	return stats, nil
}

// extractChunks runs every dialect extractor over its discovered files.
// Per-file failures become warnings; a failed file contributes zero chunks
// and does not count toward processed totals.
func (o *Orchestrator) extractChunks(ctx context.Context, rootDir string, stats *ProcessingStats) ([]chunk.Chunk, error) {
	extractors := extract.All(o.cfg)
	filter := extract.NewFileFilter(o.cfg.Filters)

	var allExtensions []string
	for _, e := range extractors {
		allExtensions = append(allExtensions, e.Extensions()...)
	}

	discovery, err := scan.NewDiscovery(rootDir, nil)
	if err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("failed to set up discovery: %v", err))
		return nil, nil
	}

	filesByExt, err := discovery.FilesByExtension(allExtensions)
	if err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("file discovery failed: %v", err))
		return nil, nil
	}

	// The shared filter applies once per candidate, before dialect work.
	filesByDialect := make(map[string][]string)
	counts := make(map[string]int)
	total := 0
	for _, e := range extractors {
		var files []string
		for _, ext := range e.Extensions() {
			for _, relPath := range filesByExt[ext] {
				if filter.ShouldProcess(relPath) {
					files = append(files, relPath)
				}
			}
		}
		filesByDialect[e.Dialect()] = files
		counts[e.Dialect()] += len(files)
		total += len(files)
	}
	o.progress.OnDiscoveryComplete(counts, total)

	var chunks []chunk.Chunk
	for _, e := range extractors {
		if err := ctx.Err(); err != nil {
			return chunks, err
		}

		files := filesByDialect[e.Dialect()]
		if len(files) == 0 {
			continue
		}
		o.progress.OnDialectStart(e.Dialect(), len(files))

		for _, relPath := range files {
			content, err := os.ReadFile(filepath.Join(rootDir, filepath.FromSlash(relPath)))
			if err != nil {
				stats.Warnings = append(stats.Warnings,
					fmt.Sprintf("failed to read %s: %s", relPath, truncateMessage(err.Error())))
				continue
			}

			fileChunks, err := e.Extract(string(content), relPath)
			if err != nil {
				stats.Warnings = append(stats.Warnings,
					fmt.Sprintf("failed to process %s: %s", relPath, truncateMessage(err.Error())))
				continue
			}

			chunks = append(chunks, fileChunks...)
			stats.Repository.TotalFiles++
			stats.Repository.FilesByDialect[e.Dialect()]++
			o.progress.OnFileProcessed(relPath, len(fileChunks))
		}
	}

	return chunks, nil
}

func truncateMessage(msg string) string {
	if len(msg) > warningMessageLimit {
		return msg[:warningMessageLimit] + "..."
	}
	return msg
}

// batchObserver bridges pipeline batch callbacks onto the run's progress
// reporter.
type batchObserver struct {
	progress ProgressReporter
}

func (b batchObserver) OnBatchStart(batch, totalBatches int) {}

func (b batchObserver) OnBatchDone(batch, totalBatches, uploaded, total int) {
	b.progress.OnBatchDone(batch, totalBatches, uploaded, total)
}
