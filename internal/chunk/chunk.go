package chunk

import "strings"

// Kind classifies what a chunk was extracted from.
type Kind string

const (
	KindClass          Kind = "class"
	KindFunction       Kind = "function"
	KindStruct         Kind = "struct"
	KindEnum           Kind = "enum"
	KindImplementation Kind = "implementation"
	KindInterface      Kind = "interface"
	KindType           Kind = "type"
	KindConstant       Kind = "constant"
	KindArrowFunction  Kind = "arrow_function"
	KindComponent      Kind = "component"
	KindScript         Kind = "script"
	KindHTML           Kind = "html"
	KindDocumentation  Kind = "documentation"
	KindLexicon        Kind = "lexicon"
	KindYAMLConfig     Kind = "yaml_config"
	KindYAMLSection    Kind = "yaml_section"
)

// Metadata describes a chunk for persistence. It duplicates the identifying
// fields of the owning Chunk so the stored payload is self-contained.
type Metadata struct {
	Kind      Kind   `json:"type"`
	Name      string `json:"name"`
	FilePath  string `json:"file_path"`
	Signature string `json:"signature"`
	Code      string `json:"code"`
	LineStart int    `json:"line_start,omitempty"` // 1-based, 0 means unknown
	LineEnd   int    `json:"line_end,omitempty"`   // 1-based, 0 means unknown
}

// Chunk is one retrievable unit of extracted content. Chunks are built once
// by an extractor and never mutated afterwards.
type Chunk struct {
	Kind          Kind
	Name          string
	FilePath      string // relative to the scan root
	Documentation string
	Code          string
	Signature     string
	Metadata      Metadata
}

// EmbeddingText returns the string fed to the embedding model: signature,
// documentation when present, and the name when it is not already part of
// the signature.
func (c *Chunk) EmbeddingText() string {
	parts := []string{c.Signature}

	if strings.TrimSpace(c.Documentation) != "" {
		parts = append(parts, c.Documentation)
	}
	if c.Name != "" && !strings.Contains(c.Signature, c.Name) {
		parts = append(parts, c.Name)
	}

	return strings.Join(parts, " ")
}

// InformationText returns the human-facing summary stored alongside the
// vector, distinct from the embedding input.
func (c *Chunk) InformationText() string {
	return c.Signature + ": " + c.Documentation
}
