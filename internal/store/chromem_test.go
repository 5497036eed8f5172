package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devrag/devrag/internal/chunk"
	"github.com/devrag/devrag/internal/embed"
)

// Test Plan for the chromem-backed store:
// - EnsureCollection is idempotent
// - Upserting the same id replaces the record instead of duplicating it
// - Search returns the closest record first with its full payload
// - A limit larger than the collection is clamped
// - Operations on a missing collection fail (or count zero)
// - A persistent store round-trips through its directory

func newTestStore(t *testing.T) VectorStore {
	t.Helper()

	s, err := NewChromem("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func embedOne(t *testing.T, provider *embed.MockProvider, text string) []float32 {
	t.Helper()

	vectors, err := provider.Embed(context.Background(), []string{text})
	require.NoError(t, err)
	return vectors[0]
}

func testRecord(t *testing.T, provider *embed.MockProvider, name, text string) Record {
	t.Helper()

	return Record{
		ID:     name,
		Vector: embedOne(t, provider, text),
		Payload: Payload{
			Document: text,
			Type:     "function",
			Name:     name,
			FilePath: "src/lib.rs",
			Metadata: chunk.Metadata{Kind: chunk.KindFunction, Name: name, LineStart: 3},
		},
	}
}

func TestChromem_UpsertReplacesByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	provider := embed.NewMockProvider(16)

	require.NoError(t, s.EnsureCollection(ctx, "docs", 16))
	require.NoError(t, s.EnsureCollection(ctx, "docs", 16)) // idempotent

	first := testRecord(t, provider, "rec-1", "fn first()")
	require.NoError(t, s.Upsert(ctx, "docs", []Record{first}))
	assert.Equal(t, 1, s.Count("docs"))

	// Same id, updated payload: the count must not grow.
	updated := testRecord(t, provider, "rec-1", "fn first_updated()")
	require.NoError(t, s.Upsert(ctx, "docs", []Record{updated}))
	assert.Equal(t, 1, s.Count("docs"))

	results, err := s.Search(ctx, "docs", updated.Vector, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "rec-1", results[0].ID)
	assert.Equal(t, "fn first_updated()", results[0].Payload.Document)
}

func TestChromem_SearchOrderAndPayload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	provider := embed.NewMockProvider(16)

	require.NoError(t, s.EnsureCollection(ctx, "docs", 16))

	a := testRecord(t, provider, "rec-a", "fn parse(input: &str)")
	b := testRecord(t, provider, "rec-b", "class HttpServer")
	require.NoError(t, s.Upsert(ctx, "docs", []Record{a, b}))

	results, err := s.Search(ctx, "docs", a.Vector, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Querying with a's exact vector puts a first at full similarity.
	assert.Equal(t, "rec-a", results[0].ID)
	assert.InDelta(t, 1.0, float64(results[0].Score), 0.01)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)

	payload := results[0].Payload
	assert.Equal(t, "rec-a", payload.Name)
	assert.Equal(t, "src/lib.rs", payload.FilePath)
	assert.Equal(t, chunk.KindFunction, payload.Metadata.Kind)
	assert.Equal(t, 3, payload.Metadata.LineStart)
}

func TestChromem_SearchLimitClamped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	provider := embed.NewMockProvider(16)

	require.NoError(t, s.EnsureCollection(ctx, "docs", 16))
	rec := testRecord(t, provider, "only", "fn only()")
	require.NoError(t, s.Upsert(ctx, "docs", []Record{rec}))

	results, err := s.Search(ctx, "docs", rec.Vector, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestChromem_MissingCollection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	provider := embed.NewMockProvider(16)

	rec := testRecord(t, provider, "x", "fn x()")
	err := s.Upsert(ctx, "nope", []Record{rec})
	assert.Error(t, err)

	assert.Zero(t, s.Count("nope"))
}

func TestChromem_PersistentRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	provider := embed.NewMockProvider(16)

	s, err := NewChromem(dir)
	require.NoError(t, err)
	require.NoError(t, s.EnsureCollection(ctx, "docs", 16))
	rec := testRecord(t, provider, "persisted", "fn persisted()")
	require.NoError(t, s.Upsert(ctx, "docs", []Record{rec}))
	require.NoError(t, s.Close())

	reopened, err := NewChromem(dir)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, 1, reopened.Count("docs"))

	results, err := reopened.Search(ctx, "docs", rec.Vector, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "persisted", results[0].ID)
}
