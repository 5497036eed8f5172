package extract

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/devrag/devrag/internal/chunk"
	"github.com/devrag/devrag/internal/config"
)

type lexiconExtractor struct {
	builder *builder
}

// NewLexicon returns the extractor for JSON lexicon files. A parseable file
// yields one whole-document chunk plus one chunk per named definition that
// carries a description.
func NewLexicon(limits config.ChunkingConfig) Extractor {
	return &lexiconExtractor{builder: newBuilder(limits)}
}

func (e *lexiconExtractor) Dialect() string      { return "json" }
func (e *lexiconExtractor) Extensions() []string { return []string{".json"} }

func (e *lexiconExtractor) Extract(content, relPath string) ([]chunk.Chunk, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	lexiconID := fileStem(relPath)
	if id, ok := doc["id"].(string); ok && id != "" {
		lexiconID = id
	}
	description, _ := doc["description"].(string)

	var chunks []chunk.Chunk

	code := e.builder.truncateCode(indentJSON(doc))
	chunks = append(chunks, e.builder.assemble(
		chunk.KindLexicon, lexiconID, relPath, "Lexicon: "+lexiconID, description, code, 0, 0))

	defs, ok := doc["defs"].(map[string]any)
	if !ok {
		return chunks, nil
	}

	// Definition order follows sorted keys for deterministic output.
	for _, defName := range sortedKeys(defs) {
		defContent, ok := defs[defName].(map[string]any)
		if !ok {
			continue
		}
		defDescription, ok := defContent["description"].(string)
		if !ok {
			continue
		}

		name := lexiconID + "#" + defName
		defCode := e.builder.truncateCode(indentJSON(defContent))
		chunks = append(chunks, e.builder.assemble(
			chunk.KindLexicon, name, relPath, name, defDescription, defCode, 0, 0))
	}

	return chunks, nil
}

// indentJSON renders a value as indented JSON, returning an empty string on
// failure (the value came from json.Unmarshal, so failure is not expected).
func indentJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

// sortedKeys returns the keys of a decoded JSON object in sorted order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fileStem returns the file name without its extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
