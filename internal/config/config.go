// Package config loads docsearch configuration from .docsearch/config.yml
// with DOCSEARCH_* environment variable overrides.
package config

// Config represents the complete docsearch configuration.
type Config struct {
	Registry  RegistryConfig  `yaml:"registry" mapstructure:"registry"`
	Embedding EmbeddingConfig `yaml:"embedding" mapstructure:"embedding"`
	Chunking  ChunkingConfig  `yaml:"chunking" mapstructure:"chunking"`
	Router    RouterConfig    `yaml:"router" mapstructure:"router"`
	Retrieval RetrievalConfig `yaml:"retrieval" mapstructure:"retrieval"`
	Snapshot  SnapshotConfig  `yaml:"snapshot" mapstructure:"snapshot"`
	AutoIndex bool            `yaml:"auto_index" mapstructure:"auto_index"`
}

// RegistryConfig locates the docset registry file.
type RegistryConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// EmbeddingConfig configures the dense embedding provider.
type EmbeddingConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "remote" or "mock"
	Model    string `yaml:"model" mapstructure:"model"`       // opaque model name, part of the snapshot signature
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"` // e.g. "http://localhost:8121/embed"
	CacheDir string `yaml:"cache_dir" mapstructure:"cache_dir"`
}

// ChunkingConfig defines how section text is split into word-window chunks.
type ChunkingConfig struct {
	Words        int `yaml:"words" mapstructure:"words"`
	OverlapWords int `yaml:"overlap_words" mapstructure:"overlap_words"`
}

// RouterConfig bounds how many docsets a query may be routed to.
type RouterConfig struct {
	MaxDocsets int `yaml:"max_docsets" mapstructure:"max_docsets"`
}

// RetrievalConfig bounds per-docset candidate pools and the final result count.
type RetrievalConfig struct {
	BM25TopK    int `yaml:"bm25_top_k" mapstructure:"bm25_top_k"`
	VectorTopK  int `yaml:"vector_top_k" mapstructure:"vector_top_k"`
	ResultsTopK int `yaml:"results_top_k" mapstructure:"results_top_k"`
}

// SnapshotConfig locates the persisted index snapshot.
type SnapshotConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// Default returns a configuration with sensible defaults, matching spec.md section 6.
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{
			Path: ".docsearch/registry.toml",
		},
		Embedding: EmbeddingConfig{
			Provider: "remote",
			Model:    "bge-small-en-v1.5",
			Endpoint: "http://localhost:8121/embed",
			CacheDir: ".docsearch/embed-cache",
		},
		Chunking: ChunkingConfig{
			Words:        280,
			OverlapWords: 60,
		},
		Router: RouterConfig{
			MaxDocsets: 3,
		},
		Retrieval: RetrievalConfig{
			BM25TopK:    20,
			VectorTopK:  20,
			ResultsTopK: 8,
		},
		Snapshot: SnapshotConfig{
			Path: ".docsearch/index.snapshot",
		},
		AutoIndex: true,
	}
}
