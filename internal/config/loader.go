package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults -> config file -> environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (DOCSEARCH_*)
// 2. Config file (.docsearch/config.yml or .docsearch/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".docsearch")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("DOCSEARCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("registry.path")
	v.BindEnv("embedding.provider")
	v.BindEnv("embedding.model")
	v.BindEnv("embedding.endpoint")
	v.BindEnv("embedding.cache_dir")
	v.BindEnv("chunking.words")
	v.BindEnv("chunking.overlap_words")
	v.BindEnv("router.max_docsets")
	v.BindEnv("retrieval.bm25_top_k")
	v.BindEnv("retrieval.vector_top_k")
	v.BindEnv("retrieval.results_top_k")
	v.BindEnv("snapshot.path")
	v.BindEnv("auto_index")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The registry path is relative to the root we loaded from, not the
	// process's working directory, unless the user gave an absolute path.
	if !filepath.IsAbs(cfg.Registry.Path) {
		cfg.Registry.Path = filepath.Join(l.rootDir, cfg.Registry.Path)
	}
	if !filepath.IsAbs(cfg.Snapshot.Path) {
		cfg.Snapshot.Path = filepath.Join(l.rootDir, cfg.Snapshot.Path)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("registry.path", defaults.Registry.Path)

	v.SetDefault("embedding.provider", defaults.Embedding.Provider)
	v.SetDefault("embedding.model", defaults.Embedding.Model)
	v.SetDefault("embedding.endpoint", defaults.Embedding.Endpoint)
	v.SetDefault("embedding.cache_dir", defaults.Embedding.CacheDir)

	v.SetDefault("chunking.words", defaults.Chunking.Words)
	v.SetDefault("chunking.overlap_words", defaults.Chunking.OverlapWords)

	v.SetDefault("router.max_docsets", defaults.Router.MaxDocsets)

	v.SetDefault("retrieval.bm25_top_k", defaults.Retrieval.BM25TopK)
	v.SetDefault("retrieval.vector_top_k", defaults.Retrieval.VectorTopK)
	v.SetDefault("retrieval.results_top_k", defaults.Retrieval.ResultsTopK)

	v.SetDefault("snapshot.path", defaults.Snapshot.Path)

	v.SetDefault("auto_index", defaults.AutoIndex)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
