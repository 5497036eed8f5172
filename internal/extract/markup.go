package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/devrag/devrag/internal/chunk"
	"github.com/devrag/devrag/internal/config"
)

// wholeFileCap bounds the code stored for whole-file markup chunks,
// independent of the configured code length limit.
const wholeFileCap = 500

var scriptBlockPattern = regexp.MustCompile(`(?s)<script[^>]*>(.*?)</script>`)

type markupExtractor struct {
	dialect    string
	extensions []string
	fileKind   chunk.Kind
	builder    *builder
}

// NewSvelte returns the extractor for Svelte component files: one chunk per
// embedded script block plus a whole-file component chunk.
func NewSvelte(limits config.ChunkingConfig) Extractor {
	return &markupExtractor{
		dialect:    "svelte",
		extensions: []string{".svelte"},
		fileKind:   chunk.KindComponent,
		builder:    newBuilder(limits),
	}
}

// NewHTML returns the extractor for plain HTML files: one chunk per
// embedded script block plus a whole-file chunk.
func NewHTML(limits config.ChunkingConfig) Extractor {
	return &markupExtractor{
		dialect:    "html",
		extensions: []string{".html"},
		fileKind:   chunk.KindHTML,
		builder:    newBuilder(limits),
	}
}

func (e *markupExtractor) Dialect() string      { return e.dialect }
func (e *markupExtractor) Extensions() []string { return e.extensions }

func (e *markupExtractor) Extract(content, relPath string) ([]chunk.Chunk, error) {
	var chunks []chunk.Chunk

	for i, m := range scriptBlockPattern.FindAllStringSubmatchIndex(content, -1) {
		inner := strings.TrimSpace(content[m[2]:m[3]])
		if inner == "" {
			continue
		}

		name := fmt.Sprintf("script_%d", i+1)
		chunks = append(chunks, e.builder.assemble(
			chunk.KindScript, name, relPath, "<script>",
			"Embedded script from "+e.dialect+" file",
			inner,
			lineNumber(content, m[0]), lineNumber(content, m[1])))
	}

	name := fileStem(relPath)
	signature := "<" + name + ">"
	documentation := "Svelte component: " + name
	if e.fileKind == chunk.KindHTML {
		signature = name + ".html"
		documentation = "HTML file: " + name
	}

	code := content
	if len(code) > wholeFileCap {
		code = code[:wholeFileCap] + "..."
	}

	chunks = append(chunks, e.builder.assemble(
		e.fileKind, name, relPath, signature, documentation, code, 0, 0))

	return chunks, nil
}
