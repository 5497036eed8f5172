package run

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devrag/devrag/internal/config"
	"github.com/devrag/devrag/internal/embed"
	"github.com/devrag/devrag/internal/store"
)

// Test Plan for the orchestrator:
// - A full run extracts, embeds and uploads chunks from a mixed tree
// - Per-file failures become warnings and don't count as processed files
// - Filtered files are never read
// - Collection setup failure aborts the run but still returns stats
// - Progress events fire in phase order
// - An empty tree completes with zero chunks

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Embedding.Dimensions = 8
	cfg.Embedding.BatchSize = 10
	return cfg
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func newRunStore(t *testing.T) store.VectorStore {
	t.Helper()

	s, err := store.NewChromem("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOrchestrator_FullRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/lib.rs":  "/// Adds.\nfn add(a: i32, b: i32) -> i32 {\n    a + b\n}\n",
		"README.md":   "# Overview\nWhat this does.\n",
		"config.yaml": "server:\n  port: 8080\n",
	})

	cfg := testConfig()
	vectors := newRunStore(t)
	o := New(cfg, embed.NewMockProvider(8), vectors, nil)

	stats, err := o.Run(context.Background(), "file://repo", root)

	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Empty(t, stats.Errors)
	assert.Empty(t, stats.Warnings)

	assert.Equal(t, 3, stats.Repository.TotalFiles)
	assert.Equal(t, 1, stats.Repository.FilesByDialect["rust"])
	assert.Equal(t, 1, stats.Repository.FilesByDialect["markdown"])
	assert.Equal(t, 1, stats.Repository.FilesByDialect["yaml"])

	// rust fn + markdown section + yaml file and section chunks.
	assert.Equal(t, 4, stats.ChunksCreated)
	assert.Equal(t, stats.ChunksCreated, stats.ChunksUploaded)
	assert.Equal(t, stats.ChunksUploaded, vectors.Count(cfg.Store.Collection))
	assert.Greater(t, stats.ProcessingTime.Nanoseconds(), int64(0))
}

func TestOrchestrator_BadFileBecomesWarning(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"good.md":  "# Fine\nbody\n",
		"bad.json": "{not valid json",
	})

	cfg := testConfig()
	o := New(cfg, embed.NewMockProvider(8), newRunStore(t), nil)

	stats, err := o.Run(context.Background(), "file://repo", root)

	require.NoError(t, err)
	require.Len(t, stats.Warnings, 1)
	assert.Contains(t, stats.Warnings[0], "bad.json")
	assert.Empty(t, stats.Errors)

	// The failed file contributes no chunks and is not counted.
	assert.Equal(t, 1, stats.Repository.TotalFiles)
	assert.Zero(t, stats.Repository.FilesByDialect["json"])
	assert.Equal(t, 1, stats.ChunksCreated)
}

func TestOrchestrator_FilteredFilesSkipped(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/lib.rs":       "fn keep() {\n}\n",
		"tests/it_test.rs": "fn skipped() {\n}\n",
		"example/demo.rs":  "fn also_skipped() {\n}\n",
	})

	cfg := testConfig()
	o := New(cfg, embed.NewMockProvider(8), newRunStore(t), nil)

	stats, err := o.Run(context.Background(), "file://repo", root)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Repository.TotalFiles)
	assert.Equal(t, 1, stats.ChunksCreated)
}

// failingStore rejects collection setup.
type failingStore struct {
	store.VectorStore
}

func (failingStore) EnsureCollection(ctx context.Context, name string, dimensions int) error {
	return errors.New("disk full")
}

func (failingStore) Close() error { return nil }

func TestOrchestrator_CollectionFailureIsFatal(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{"doc.md": "# H\nbody\n"})

	cfg := testConfig()
	o := New(cfg, embed.NewMockProvider(8), failingStore{}, nil)

	stats, err := o.Run(context.Background(), "file://repo", root)

	// The run reports the failure through stats, not the error return.
	require.NoError(t, err)
	require.Len(t, stats.Errors, 1)
	assert.Contains(t, stats.Errors[0], "disk full")
	assert.Zero(t, stats.ChunksCreated)
	assert.Zero(t, stats.Repository.TotalFiles)
}

func TestOrchestrator_EmptyTree(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	vectors := newRunStore(t)
	o := New(cfg, embed.NewMockProvider(8), vectors, nil)

	stats, err := o.Run(context.Background(), "file://repo", t.TempDir())

	require.NoError(t, err)
	assert.Zero(t, stats.ChunksCreated)
	assert.Zero(t, stats.ChunksUploaded)
	assert.Empty(t, stats.Errors)
	assert.Zero(t, vectors.Count(cfg.Store.Collection))
}

// eventRecorder captures progress callbacks in order.
type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

func (r *eventRecorder) OnDiscoveryComplete(map[string]int, int) { r.add("discovery") }
func (r *eventRecorder) OnDialectStart(string, int)              { r.add("dialect") }
func (r *eventRecorder) OnFileProcessed(string, int)             { r.add("file") }
func (r *eventRecorder) OnExtractionComplete(int)                { r.add("extracted") }
func (r *eventRecorder) OnUploadStart(int)                       { r.add("upload") }
func (r *eventRecorder) OnBatchDone(int, int, int, int)          { r.add("batch") }
func (r *eventRecorder) OnComplete(*ProcessingStats)             { r.add("complete") }

func TestOrchestrator_ProgressEvents(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{"doc.md": "# H\nbody\n"})

	recorder := &eventRecorder{}
	o := New(testConfig(), embed.NewMockProvider(8), newRunStore(t), recorder)

	_, err := o.Run(context.Background(), "file://repo", root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"discovery", "dialect", "file", "extracted", "upload", "batch", "complete",
	}, recorder.events)
}
