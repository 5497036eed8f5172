package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	configFile string
}

// NewLoader creates a configuration loader. configFile may be empty, in
// which case only defaults and environment variables apply.
func NewLoader(configFile string) Loader {
	return &loader{configFile: configFile}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (DEVRAG_*)
// 2. Config file (when one was given)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(".devrag")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DEVRAG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults + env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers the Default() values with viper so partial config
// files only need to name what they change.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("store.location", d.Store.Location)
	v.SetDefault("store.collection", d.Store.Collection)
	v.SetDefault("store.batch_size", d.Store.BatchSize)

	v.SetDefault("embedding.model", d.Embedding.Model)
	v.SetDefault("embedding.dimensions", d.Embedding.Dimensions)
	v.SetDefault("embedding.endpoint", d.Embedding.Endpoint)
	v.SetDefault("embedding.batch_size", d.Embedding.BatchSize)

	v.SetDefault("chunking.max_doc_length", d.Chunking.MaxDocLength)
	v.SetDefault("chunking.max_code_length", d.Chunking.MaxCodeLength)

	v.SetDefault("filters.include_tests", d.Filters.IncludeTests)
	v.SetDefault("filters.include_generated", d.Filters.IncludeGenerated)

	v.SetDefault("memory.max_percent", d.Memory.MaxPercent)
}
