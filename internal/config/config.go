package config

// Config holds the run-scoped vectorization settings. It is constructed
// once per run and treated as read-only afterwards.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Embedding EmbeddingConfig `yaml:"embedding" mapstructure:"embedding"`
	Chunking  ChunkingConfig  `yaml:"chunking" mapstructure:"chunking"`
	Filters   FilterConfig    `yaml:"filters" mapstructure:"filters"`
	Memory    MemoryConfig    `yaml:"memory" mapstructure:"memory"`
}

// StoreConfig configures the vector store target.
type StoreConfig struct {
	Location   string `yaml:"location" mapstructure:"location"`     // store endpoint: directory for the embedded store
	Collection string `yaml:"collection" mapstructure:"collection"` // collection/index name
	BatchSize  int    `yaml:"batch_size" mapstructure:"batch_size"` // records per upsert
}

// EmbeddingConfig configures the embedding provider.
type EmbeddingConfig struct {
	Model      string `yaml:"model" mapstructure:"model"`
	Dimensions int    `yaml:"dimensions" mapstructure:"dimensions"`
	Endpoint   string `yaml:"endpoint" mapstructure:"endpoint"`
	BatchSize  int    `yaml:"batch_size" mapstructure:"batch_size"` // chunks per embedding call
}

// ChunkingConfig bounds the size of extracted chunk text.
type ChunkingConfig struct {
	MaxDocLength  int `yaml:"max_doc_length" mapstructure:"max_doc_length"`   // max characters of documentation
	MaxCodeLength int `yaml:"max_code_length" mapstructure:"max_code_length"` // max characters of code
}

// FilterConfig controls which candidate files are processed.
type FilterConfig struct {
	IncludeTests     bool `yaml:"include_tests" mapstructure:"include_tests"`
	IncludeGenerated bool `yaml:"include_generated" mapstructure:"include_generated"`
}

// MemoryConfig configures the backpressure valve in the upload pipeline.
type MemoryConfig struct {
	MaxPercent float64 `yaml:"max_percent" mapstructure:"max_percent"` // pause above this usage
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Location:   ".devrag/index",
			Collection: "dev-docs",
			BatchSize:  100,
		},
		Embedding: EmbeddingConfig{
			Model:      "BAAI/bge-small-en-v1.5",
			Dimensions: 384,
			Endpoint:   "http://127.0.0.1:8121/embed",
			BatchSize:  100,
		},
		Chunking: ChunkingConfig{
			MaxDocLength:  1000,
			MaxCodeLength: 1500,
		},
		Filters: FilterConfig{
			IncludeTests:     false,
			IncludeGenerated: false,
		},
		Memory: MemoryConfig{
			MaxPercent: 75,
		},
	}
}
