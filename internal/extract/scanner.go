package extract

import (
	"regexp"

	"github.com/devrag/devrag/internal/chunk"
)

// bodyStrategy selects how the end of a located region is found.
type bodyStrategy int

const (
	// bodyBraces scans forward counting braces until the depth returns to
	// zero after at least one opening brace.
	bodyBraces bodyStrategy = iota

	// bodyBracesOrSemicolon is bodyBraces, except a semicolon seen before
	// any opening brace also ends the region (TypeScript interface/type
	// aliases without a braced body).
	bodyBracesOrSemicolon

	// bodyNone means the construct has no code body; only the header is
	// captured.
	bodyNone
)

// construct is one recognizable declaration form in a dialect: a header
// recognizer paired with a body-boundary strategy. The header pattern's
// first capture group is the construct name.
type construct struct {
	kind   chunk.Kind
	header *regexp.Regexp
	body   bodyStrategy
}

// region is a located construct occurrence within file content.
type region struct {
	kind   chunk.Kind
	name   string
	start  int    // offset of the header match
	end    int    // exclusive end offset, -1 when no body was found
	header string // matched header text
}

// locate applies a construct table to content and returns every region
// found, in table order then match order. Overlapping regions from
// different constructs are all kept; a brace construct whose body never
// opens is dropped.
func locate(content string, constructs []construct) []region {
	var regions []region

	for _, c := range constructs {
		for _, m := range c.header.FindAllStringSubmatchIndex(content, -1) {
			r := region{
				kind:   c.kind,
				name:   content[m[2]:m[3]],
				start:  m[0],
				end:    -1,
				header: content[m[0]:m[1]],
			}

			switch c.body {
			case bodyBraces:
				end, ok := scanBraceBody(content, r.start)
				if !ok {
					continue
				}
				r.end = end
			case bodyBracesOrSemicolon:
				end, ok := scanBraceOrSemicolonBody(content, r.start)
				if !ok {
					continue
				}
				r.end = end
			case bodyNone:
				// header only
			}

			regions = append(regions, r)
		}
	}

	return regions
}

// scanBraceBody finds the end of a brace-delimited body starting at the
// header offset. It counts opening and closing braces character by
// character; the region ends just past the brace that returns the depth to
// zero. Braces inside string literals and comments are counted too - the
// scan is deliberately simple and can mis-bound regions containing them.
func scanBraceBody(content string, from int) (end int, ok bool) {
	depth := 0
	opened := false

	for i := from; i < len(content); i++ {
		switch content[i] {
		case '{':
			opened = true
			depth++
		case '}':
			depth--
			if opened && depth == 0 {
				return i + 1, true
			}
		}
	}

	return 0, false
}

// scanBraceOrSemicolonBody behaves like scanBraceBody but also accepts a
// semicolon before any opening brace as the region end.
func scanBraceOrSemicolonBody(content string, from int) (end int, ok bool) {
	depth := 0
	opened := false

	for i := from; i < len(content); i++ {
		switch content[i] {
		case '{':
			opened = true
			depth++
		case '}':
			depth--
			if opened && depth == 0 {
				return i + 1, true
			}
		case ';':
			if !opened {
				return i + 1, true
			}
		}
	}

	return 0, false
}

// headingPattern matches ATX headings of levels 1-3.
var headingPattern = regexp.MustCompile(`^(#{1,3})\s+(.+)$`)

// sectionEnd returns the index of the first line after start that begins a
// heading of equal or shallower level, or len(lines) at end of file.
func sectionEnd(lines []string, start, level int) int {
	for i := start + 1; i < len(lines); i++ {
		if m := headingPattern.FindStringSubmatch(lines[i]); m != nil && len(m[1]) <= level {
			return i
		}
	}
	return len(lines)
}

// lineNumber returns the 1-based line number of a byte offset.
func lineNumber(content string, offset int) int {
	n := 1
	for i := 0; i < offset && i < len(content); i++ {
		if content[i] == '\n' {
			n++
		}
	}
	return n
}
