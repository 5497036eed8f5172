package extract

import (
	"strings"

	"github.com/devrag/devrag/internal/chunk"
	"github.com/devrag/devrag/internal/config"
)

type markdownExtractor struct {
	builder *builder
}

// NewMarkdown returns the extractor for Markdown and MDX files. Each ATX
// heading of level 1-3 starts a section; the section body runs until the
// next heading of equal or shallower level.
func NewMarkdown(limits config.ChunkingConfig) Extractor {
	return &markdownExtractor{builder: newBuilder(limits)}
}

func (e *markdownExtractor) Dialect() string      { return "markdown" }
func (e *markdownExtractor) Extensions() []string { return []string{".md", ".mdx"} }

func (e *markdownExtractor) Extract(content, relPath string) ([]chunk.Chunk, error) {
	var chunks []chunk.Chunk
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		m := headingPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		level := len(m[1])
		title := strings.TrimSpace(m[2])

		end := sectionEnd(lines, i, level)
		body := strings.TrimSpace(strings.Join(lines[i+1:end], "\n"))
		if body == "" {
			continue
		}

		chunks = append(chunks, e.builder.assemble(
			chunk.KindDocumentation, title, relPath, title, body, "", i+1, end))
	}

	return chunks, nil
}
