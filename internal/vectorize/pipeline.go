// Package vectorize turns extracted chunks into persisted vector records:
// fixed-size batches are embedded, assigned content-addressed ids, and
// upserted into the vector store with bounded retries.
package vectorize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/devrag/devrag/internal/chunk"
	"github.com/devrag/devrag/internal/config"
	"github.com/devrag/devrag/internal/embed"
	"github.com/devrag/devrag/internal/store"
)

// memoryPauseDelay is how long the pipeline pauses when memory usage is
// above the configured threshold. A crude backpressure valve, not a hard
// guarantee.
const memoryPauseDelay = 5 * time.Second

// BatchObserver receives progress callbacks as batches complete. All
// methods are called from the single pipeline goroutine.
type BatchObserver interface {
	OnBatchStart(batch, totalBatches int)
	OnBatchDone(batch, totalBatches, uploaded, total int)
}

// NoOpBatchObserver ignores all callbacks.
type NoOpBatchObserver struct{}

func (NoOpBatchObserver) OnBatchStart(batch, totalBatches int)                 {}
func (NoOpBatchObserver) OnBatchDone(batch, totalBatches, uploaded, total int) {}

// Result summarizes a pipeline run. Errors holds one message per failed
// batch; a failed batch never aborts the run.
type Result struct {
	Uploaded int
	Errors   []string
}

// Pipeline embeds and uploads chunks batch by batch, strictly
// sequentially.
type Pipeline struct {
	provider   embed.Provider
	vectors    store.VectorStore
	collection string
	batchSize  int
	maxMemory  float64
	retry      RetryPolicy
	observer   BatchObserver

	// injectable for tests
	memoryPercent func() float64
	sleep         func(time.Duration)
}

// NewPipeline creates a pipeline against the given provider and store.
func NewPipeline(provider embed.Provider, vectors store.VectorStore, cfg *config.Config, observer BatchObserver) *Pipeline {
	if observer == nil {
		observer = NoOpBatchObserver{}
	}

	return &Pipeline{
		provider:      provider,
		vectors:       vectors,
		collection:    cfg.Store.Collection,
		batchSize:     cfg.Embedding.BatchSize,
		maxMemory:     cfg.Memory.MaxPercent,
		retry:         DefaultRetryPolicy(),
		observer:      observer,
		memoryPercent: systemMemoryPercent,
		sleep:         time.Sleep,
	}
}

// Process partitions chunks into contiguous batches and, for each batch,
// embeds the chunk texts with one provider call, assembles records and
// upserts them with retry. Returns the number of uploaded chunks and one
// error message per batch that exhausted its retries.
func (p *Pipeline) Process(ctx context.Context, chunks []chunk.Chunk) (*Result, error) {
	result := &Result{}
	if len(chunks) == 0 {
		return result, nil
	}

	batchSize := p.batchSize
	if batchSize <= 0 {
		batchSize = 1
	}
	totalBatches := (len(chunks) + batchSize - 1) / batchSize

	for batchIdx := 0; batchIdx < totalBatches; batchIdx++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		start := batchIdx * batchSize
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]
		batchNum := batchIdx + 1

		p.observer.OnBatchStart(batchNum, totalBatches)

		if p.memoryPercent() > p.maxMemory {
			p.sleep(memoryPauseDelay)
		}

		if err := p.processBatch(ctx, batch); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("failed to process batch %d: %v", batchNum, err))
			continue
		}

		result.Uploaded += len(batch)
		p.observer.OnBatchDone(batchNum, totalBatches, result.Uploaded, len(chunks))
	}

	return result, nil
}

// processBatch embeds one batch and upserts its records, retrying the
// upsert per the pipeline's policy.
func (p *Pipeline) processBatch(ctx context.Context, batch []chunk.Chunk) error {
	texts := make([]string, len(batch))
	for i := range batch {
		texts[i] = batch[i].EmbeddingText()
	}

	vectors, err := p.provider.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("embedding returned %d vectors for %d chunks", len(vectors), len(batch))
	}

	records := make([]store.Record, len(batch))
	for i := range batch {
		records[i] = store.Record{
			ID:     ChunkID(&batch[i]),
			Vector: vectors[i],
			Payload: store.Payload{
				Document:      texts[i],
				Type:          string(batch[i].Kind),
				Name:          batch[i].Name,
				FilePath:      batch[i].FilePath,
				Signature:     batch[i].Signature,
				Documentation: batch[i].Documentation,
				Code:          batch[i].Code,
				Information:   batch[i].InformationText(),
				Metadata:      batch[i].Metadata,
			},
		}
	}

	return retryWithBackoff(ctx, p.retry, p.sleep, func() error {
		return p.vectors.Upsert(ctx, p.collection, records)
	})
}

// ChunkID derives the content-addressed record id for a chunk. It depends
// only on file path, name and kind, so re-vectorizing an unchanged chunk
// overwrites its record instead of duplicating it.
func ChunkID(c *chunk.Chunk) string {
	sum := sha256.Sum256([]byte(c.FilePath + ":" + c.Name + ":" + string(c.Kind)))
	return hex.EncodeToString(sum[:])
}
