package extract

import (
	"regexp"
	"strings"

	"github.com/devrag/devrag/internal/chunk"
	"github.com/devrag/devrag/internal/config"
)

var (
	dartClassPattern = regexp.MustCompile(
		`(?:abstract\s+)?class\s+(\w+)(?:\s+extends\s+\w+)?(?:\s+implements\s+[\w,\s]+)?(?:\s+with\s+[\w,\s]+)?\s*\{`)
	dartFunctionPattern = regexp.MustCompile(
		`(?:static\s+)?(?:Future<[\w<>?,]+>\s+|[\w<>?]+\s+)?(\w+)\s*\([^)]*\)\s*(?:async\s*)?\{`)
)

// dartLifecycleMethods are framework callbacks that produce noise chunks
// rather than meaningful retrieval units.
var dartLifecycleMethods = map[string]bool{
	"build":     true,
	"initState": true,
	"dispose":   true,
	"setState":  true,
}

var dartDocs = docStyle{linePrefixes: []string{"///"}}

type dartExtractor struct {
	builder *builder
}

// NewDart returns the extractor for Dart source files. Classes carry their
// brace-bounded body; functions are signature-only chunks.
func NewDart(limits config.ChunkingConfig) Extractor {
	return &dartExtractor{builder: newBuilder(limits)}
}

func (e *dartExtractor) Dialect() string      { return "dart" }
func (e *dartExtractor) Extensions() []string { return []string{".dart"} }

func (e *dartExtractor) Extract(content, relPath string) ([]chunk.Chunk, error) {
	var chunks []chunk.Chunk

	classes := locate(content, []construct{
		{kind: chunk.KindClass, header: dartClassPattern, body: bodyBraces},
	})
	for _, r := range classes {
		docs := docComments(content, r.start, dartDocs)
		signature := "class " + r.name
		chunks = append(chunks, e.builder.build(content, relPath, r, signature, docs))
	}

	functions := locate(content, []construct{
		{kind: chunk.KindFunction, header: dartFunctionPattern, body: bodyNone},
	})
	for _, r := range functions {
		if dartLifecycleMethods[r.name] {
			continue
		}
		docs := docComments(content, r.start, dartDocs)
		chunks = append(chunks, e.builder.build(content, relPath, r, dartSignature(r), docs))
	}

	return chunks, nil
}

// dartSignature derives a one-line signature from the matched declaration
// header.
func dartSignature(r region) string {
	sig := r.header
	if i := strings.IndexByte(sig, '\n'); i >= 0 {
		sig = sig[:i]
	}
	sig = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sig), "{"))
	if sig == "" {
		return "function " + r.name
	}
	return sig
}
