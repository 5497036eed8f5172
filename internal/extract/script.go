package extract

import (
	"regexp"
	"strings"

	"github.com/devrag/devrag/internal/chunk"
	"github.com/devrag/devrag/internal/config"
)

// jsConstructs recognizes JavaScript declarations.
var jsConstructs = []construct{
	{kind: chunk.KindFunction, header: regexp.MustCompile(`export\s+function\s+(\w+)\s*\([^{]*\)\s*\{`), body: bodyBraces},
	{kind: chunk.KindFunction, header: regexp.MustCompile(`function\s+(\w+)\s*\([^{]*\)\s*\{`), body: bodyBraces},
	{kind: chunk.KindArrowFunction, header: regexp.MustCompile(`const\s+(\w+)\s*=\s*\([^)]*\)\s*=>\s*\{`), body: bodyBraces},
	{kind: chunk.KindClass, header: regexp.MustCompile(`export\s+class\s+(\w+)`), body: bodyBraces},
	{kind: chunk.KindClass, header: regexp.MustCompile(`class\s+(\w+)`), body: bodyBraces},
	{kind: chunk.KindConstant, header: regexp.MustCompile(`export\s+const\s+(\w+)\s*=`), body: bodyBraces},
}

// tsConstructs adds the type-annotated declaration forms. Interface and
// type aliases may end at a semicolon when no brace is ever opened.
var tsConstructs = []construct{
	{kind: chunk.KindFunction, header: regexp.MustCompile(`export\s+function\s+(\w+)\s*\([^{]*\)\s*:\s*[^{]+\{`), body: bodyBraces},
	{kind: chunk.KindFunction, header: regexp.MustCompile(`function\s+(\w+)\s*\([^{]*\)\s*:\s*[^{]+\{`), body: bodyBraces},
	{kind: chunk.KindFunction, header: regexp.MustCompile(`export\s+function\s+(\w+)\s*\([^{]*\)\s*\{`), body: bodyBraces},
	{kind: chunk.KindFunction, header: regexp.MustCompile(`function\s+(\w+)\s*\([^{]*\)\s*\{`), body: bodyBraces},
	{kind: chunk.KindClass, header: regexp.MustCompile(`export\s+class\s+(\w+)`), body: bodyBraces},
	{kind: chunk.KindClass, header: regexp.MustCompile(`class\s+(\w+)`), body: bodyBraces},
	{kind: chunk.KindInterface, header: regexp.MustCompile(`export\s+interface\s+(\w+)`), body: bodyBracesOrSemicolon},
	{kind: chunk.KindInterface, header: regexp.MustCompile(`interface\s+(\w+)`), body: bodyBracesOrSemicolon},
	{kind: chunk.KindType, header: regexp.MustCompile(`export\s+type\s+(\w+)`), body: bodyBracesOrSemicolon},
	{kind: chunk.KindType, header: regexp.MustCompile(`type\s+(\w+)`), body: bodyBracesOrSemicolon},
}

var jsdoc = docStyle{blockInterior: true}

type scriptExtractor struct {
	dialect    string
	extensions []string
	constructs []construct
	builder    *builder
}

// NewJavaScript returns the extractor for JavaScript source files.
func NewJavaScript(limits config.ChunkingConfig) Extractor {
	return &scriptExtractor{
		dialect:    "javascript",
		extensions: []string{".js", ".jsx"},
		constructs: jsConstructs,
		builder:    newBuilder(limits),
	}
}

// NewTypeScript returns the extractor for TypeScript source files, which
// adds interface and type alias declarations to the JavaScript forms.
func NewTypeScript(limits config.ChunkingConfig) Extractor {
	return &scriptExtractor{
		dialect:    "typescript",
		extensions: []string{".ts", ".tsx"},
		constructs: tsConstructs,
		builder:    newBuilder(limits),
	}
}

func (e *scriptExtractor) Dialect() string      { return e.dialect }
func (e *scriptExtractor) Extensions() []string { return e.extensions }

func (e *scriptExtractor) Extract(content, relPath string) ([]chunk.Chunk, error) {
	var chunks []chunk.Chunk

	for _, r := range locate(content, e.constructs) {
		docs := docComments(content, r.start, jsdoc)
		signature := strings.TrimSpace(r.header)
		chunks = append(chunks, e.builder.build(content, relPath, r, signature, docs))
	}

	return chunks, nil
}
