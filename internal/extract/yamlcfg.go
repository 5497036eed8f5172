package extract

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/devrag/devrag/internal/chunk"
	"github.com/devrag/devrag/internal/config"
)

type yamlExtractor struct {
	builder *builder
}

// NewYAML returns the extractor for YAML configuration files. A parseable
// file yields one whole-file chunk plus one chunk per top-level mapping key
// whose value is a non-empty mapping or sequence.
func NewYAML(limits config.ChunkingConfig) Extractor {
	return &yamlExtractor{builder: newBuilder(limits)}
}

func (e *yamlExtractor) Dialect() string      { return "yaml" }
func (e *yamlExtractor) Extensions() []string { return []string{".yaml", ".yml"} }

func (e *yamlExtractor) Extract(content, relPath string) ([]chunk.Chunk, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(content), &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	fileID := fileStem(relPath)

	var chunks []chunk.Chunk
	chunks = append(chunks, e.builder.assemble(
		chunk.KindYAMLConfig, fileID, relPath,
		"YAML Config: "+fileID,
		"YAML configuration file: "+fileID,
		e.builder.truncateCode(content), 0, 0))

	// Only structured documents with a top-level mapping have sections.
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return chunks, nil
	}

	mapping := root.Content[0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]

		if !isNonEmptyCollection(valueNode) {
			continue
		}

		var value any
		if err := valueNode.Decode(&value); err != nil {
			continue
		}

		sectionCode, err := yaml.Marshal(map[string]any{keyNode.Value: value})
		if err != nil {
			continue
		}

		name := fileID + "." + keyNode.Value
		chunks = append(chunks, e.builder.assemble(
			chunk.KindYAMLSection, name, relPath, name,
			"Configuration section: "+keyNode.Value,
			e.builder.truncateCode(string(sectionCode)),
			keyNode.Line, 0))
	}

	return chunks, nil
}

func isNonEmptyCollection(n *yaml.Node) bool {
	switch n.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		return len(n.Content) > 0
	default:
		return false
	}
}
