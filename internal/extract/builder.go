package extract

import (
	"strings"

	"github.com/devrag/devrag/internal/chunk"
	"github.com/devrag/devrag/internal/config"
)

// truncationMarker is appended when chunk code is cut at the length limit.
const truncationMarker = "\n// ... (truncated)"

// docWalkbackLines bounds how far above a declaration documentation
// comments are collected.
const docWalkbackLines = 10

// docStyle describes a dialect's documentation comment markers.
type docStyle struct {
	// linePrefixes are stripped from matching lines, e.g. "///" or "//!".
	linePrefixes []string

	// blockInterior treats leading "*" lines as block-comment interior
	// (JSDoc style), stopping at the "/**" opener.
	blockInterior bool
}

// builder assembles chunks from located regions, applying the configured
// truncation limits.
type builder struct {
	limits config.ChunkingConfig
}

func newBuilder(limits config.ChunkingConfig) *builder {
	return &builder{limits: limits}
}

// build creates an immutable chunk for a region. When the region has no end
// offset the code is empty. Line numbers are derived from the offsets.
func (b *builder) build(content, relPath string, r region, signature, documentation string) chunk.Chunk {
	code := ""
	lineEnd := 0
	if r.end >= 0 {
		code = b.truncateCode(content[r.start:r.end])
		lineEnd = lineNumber(content, r.end)
	}
	lineStart := lineNumber(content, r.start)

	return b.assemble(r.kind, r.name, relPath, signature, documentation, code, lineStart, lineEnd)
}

// assemble builds a chunk from already-extracted parts. Documentation is
// truncated here so every dialect obeys the same limit.
func (b *builder) assemble(kind chunk.Kind, name, relPath, signature, documentation, code string, lineStart, lineEnd int) chunk.Chunk {
	documentation = truncate(documentation, b.limits.MaxDocLength)

	return chunk.Chunk{
		Kind:          kind,
		Name:          name,
		FilePath:      relPath,
		Documentation: documentation,
		Code:          code,
		Signature:     signature,
		Metadata: chunk.Metadata{
			Kind:      kind,
			Name:      name,
			FilePath:  relPath,
			Signature: signature,
			Code:      code,
			LineStart: lineStart,
			LineEnd:   lineEnd,
		},
	}
}

// truncateCode hard-truncates code to the configured limit, appending the
// truncation marker when anything was cut.
func (b *builder) truncateCode(code string) string {
	if b.limits.MaxCodeLength > 0 && len(code) > b.limits.MaxCodeLength {
		return code[:b.limits.MaxCodeLength] + truncationMarker
	}
	return code
}

func truncate(s string, max int) string {
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}

// docComments walks backward from the line containing start, collecting
// consecutive documentation comment lines. Blank lines are skipped; the
// first other line stops the walk. Collected lines are returned in source
// order with their markers stripped.
func docComments(content string, start int, style docStyle) string {
	lines := strings.Split(content[:start], "\n")
	if len(lines) > docWalkbackLines {
		lines = lines[len(lines)-docWalkbackLines:]
	}

	var docs []string
	for i := len(lines) - 1; i >= 0; i-- {
		stripped := strings.TrimSpace(lines[i])
		if stripped == "" {
			continue
		}

		if style.blockInterior {
			if strings.HasPrefix(stripped, "/**") {
				break
			}
			if strings.HasPrefix(stripped, "*") && !strings.HasPrefix(stripped, "*/") {
				docs = append([]string{strings.TrimSpace(strings.TrimPrefix(stripped, "*"))}, docs...)
				continue
			}
			break
		}

		matched := false
		for _, prefix := range style.linePrefixes {
			if strings.HasPrefix(stripped, prefix) {
				docs = append([]string{strings.TrimSpace(strings.TrimPrefix(stripped, prefix))}, docs...)
				matched = true
				break
			}
		}
		if !matched {
			if strings.HasPrefix(stripped, "/*") || strings.HasPrefix(stripped, "*/") {
				continue
			}
			break
		}
	}

	return strings.Join(docs, "\n")
}
