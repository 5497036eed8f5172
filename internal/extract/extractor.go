// Package extract locates semantically meaningful regions in source files
// and turns them into chunks. Extraction is heuristic: declaration headers
// are recognized with regular expressions and bodies are bounded by brace
// counting, which tolerates malformed input at the cost of occasionally
// mis-bounding regions that contain braces in strings or comments.
package extract

import (
	"github.com/devrag/devrag/internal/chunk"
	"github.com/devrag/devrag/internal/config"
)

// Extractor produces chunks from the content of a single file. Content is
// the full file text; relPath is the path relative to the scan root and is
// recorded on every produced chunk.
type Extractor interface {
	// Dialect names the extraction strategy, used in stats and progress.
	Dialect() string

	// Extensions lists the file extensions this extractor handles,
	// with leading dot.
	Extensions() []string

	// Extract returns the chunks found in content. An error means the
	// file could not be processed at all (e.g. malformed structured
	// data); the caller records a warning and the file contributes zero
	// chunks.
	Extract(content, relPath string) ([]chunk.Chunk, error)
}

// All returns the full set of dialect extractors in their fixed processing
// order. The order determines chunk discovery order across dialects.
func All(cfg *config.Config) []Extractor {
	limits := cfg.Chunking
	return []Extractor{
		NewDart(limits),
		NewMarkdown(limits),
		NewLexicon(limits),
		NewYAML(limits),
		NewRust(limits),
		NewJavaScript(limits),
		NewTypeScript(limits),
		NewSvelte(limits),
		NewHTML(limits),
	}
}
