package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devrag/devrag/internal/chunk"
)

// Test Plan for the lexicon extractor:
// - A parseable file yields one whole-document chunk named by its id
// - Each defs entry with a description yields an "{id}#{def}" chunk
// - Definitions without a description are skipped
// - A file without an id field falls back to the file stem
// - Invalid JSON is an error, not an empty result
// - Definition chunks come out in sorted key order

func TestLexicon_DocumentAndDefs(t *testing.T) {
	t.Parallel()

	content := `{
  "id": "app.feed.getTimeline",
  "description": "Fetch a user's home timeline.",
  "defs": {
    "main": {"description": "The primary query.", "type": "query"},
    "output": {"description": "Timeline response body.", "type": "object"},
    "internal": {"type": "token"}
  }
}`

	chunks, err := NewLexicon(testLimits()).Extract(content, "lexicons/getTimeline.json")
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	doc := chunks[0]
	assert.Equal(t, chunk.KindLexicon, doc.Kind)
	assert.Equal(t, "app.feed.getTimeline", doc.Name)
	assert.Equal(t, "Lexicon: app.feed.getTimeline", doc.Signature)
	assert.Equal(t, "Fetch a user's home timeline.", doc.Documentation)
	assert.Contains(t, doc.Code, `"defs"`)

	// "internal" has no description; "main" and "output" sort alphabetically.
	assert.Equal(t, "app.feed.getTimeline#main", chunks[1].Name)
	assert.Equal(t, "The primary query.", chunks[1].Documentation)
	assert.Equal(t, "app.feed.getTimeline#output", chunks[2].Name)
}

func TestLexicon_IDFallsBackToFileStem(t *testing.T) {
	t.Parallel()

	chunks, err := NewLexicon(testLimits()).Extract(`{"description": "no id here"}`, "schemas/profile.json")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "profile", chunks[0].Name)
}

func TestLexicon_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := NewLexicon(testLimits()).Extract("{not json", "bad.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestLexicon_NoDefs(t *testing.T) {
	t.Parallel()

	chunks, err := NewLexicon(testLimits()).Extract(`{"id": "plain", "description": "d"}`, "plain.json")
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}
