package extract

import (
	"regexp"
	"strings"

	"github.com/devrag/devrag/internal/chunk"
	"github.com/devrag/devrag/internal/config"
)

// rustConstructs recognizes Rust declarations. Public and private variants
// are separate patterns; overlapping matches are kept as independent
// chunks.
var rustConstructs = []construct{
	{kind: chunk.KindFunction, header: regexp.MustCompile(`pub\s+fn\s+(\w+)\s*\([^{]*\)\s*(?:->\s*[^{]+)?\s*\{`), body: bodyBraces},
	{kind: chunk.KindFunction, header: regexp.MustCompile(`fn\s+(\w+)\s*\([^{]*\)\s*(?:->\s*[^{]+)?\s*\{`), body: bodyBraces},
	{kind: chunk.KindStruct, header: regexp.MustCompile(`pub\s+struct\s+(\w+)`), body: bodyBraces},
	{kind: chunk.KindStruct, header: regexp.MustCompile(`struct\s+(\w+)`), body: bodyBraces},
	{kind: chunk.KindImplementation, header: regexp.MustCompile(`impl\s+(?:<[^>]*>\s+)?(\w+)`), body: bodyBraces},
	{kind: chunk.KindEnum, header: regexp.MustCompile(`pub\s+enum\s+(\w+)`), body: bodyBraces},
	{kind: chunk.KindEnum, header: regexp.MustCompile(`enum\s+(\w+)`), body: bodyBraces},
}

var rustDocs = docStyle{linePrefixes: []string{"///", "//!"}}

type rustExtractor struct {
	builder *builder
}

// NewRust returns the extractor for Rust source files.
func NewRust(limits config.ChunkingConfig) Extractor {
	return &rustExtractor{builder: newBuilder(limits)}
}

func (e *rustExtractor) Dialect() string      { return "rust" }
func (e *rustExtractor) Extensions() []string { return []string{".rs"} }

func (e *rustExtractor) Extract(content, relPath string) ([]chunk.Chunk, error) {
	var chunks []chunk.Chunk

	for _, r := range locate(content, rustConstructs) {
		docs := docComments(content, r.start, rustDocs)
		signature := strings.TrimSpace(r.header)
		chunks = append(chunks, e.builder.build(content, relPath, r, signature, docs))
	}

	return chunks, nil
}
