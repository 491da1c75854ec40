package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidProvider indicates an unsupported embedding provider.
	ErrInvalidProvider = errors.New("invalid embedding provider")

	// ErrInvalidChunkSize indicates invalid chunk size configuration.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidOverlap indicates invalid overlap configuration.
	ErrInvalidOverlap = errors.New("invalid overlap")

	// ErrEmptyEndpoint indicates a missing embedding endpoint.
	ErrEmptyEndpoint = errors.New("empty embedding endpoint")

	// ErrEmptyModel indicates a missing embedding model name.
	ErrEmptyModel = errors.New("empty embedding model")

	// ErrEmptyRegistryPath indicates a missing registry path.
	ErrEmptyRegistryPath = errors.New("empty registry path")

	// ErrInvalidRouterSettings indicates an invalid router configuration.
	ErrInvalidRouterSettings = errors.New("invalid router settings")

	// ErrInvalidRetrievalSettings indicates an invalid retrieval configuration.
	ErrInvalidRetrievalSettings = errors.New("invalid retrieval settings")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateRegistry(&cfg.Registry); err != nil {
		errs = append(errs, err)
	}
	if err := validateEmbedding(&cfg.Embedding); err != nil {
		errs = append(errs, err)
	}
	if err := validateChunking(&cfg.Chunking); err != nil {
		errs = append(errs, err)
	}
	if err := validateRouter(&cfg.Router); err != nil {
		errs = append(errs, err)
	}
	if err := validateRetrieval(&cfg.Retrieval); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateRegistry(cfg *RegistryConfig) error {
	if strings.TrimSpace(cfg.Path) == "" {
		return fmt.Errorf("%w: path is required", ErrEmptyRegistryPath)
	}
	return nil
}

func validateEmbedding(cfg *EmbeddingConfig) error {
	var errs []error

	provider := strings.ToLower(cfg.Provider)
	if provider != "remote" && provider != "mock" {
		errs = append(errs, fmt.Errorf("%w: must be 'remote' or 'mock', got '%s'", ErrInvalidProvider, cfg.Provider))
	}

	if strings.TrimSpace(cfg.Model) == "" {
		errs = append(errs, fmt.Errorf("%w: model is required", ErrEmptyModel))
	}

	if provider == "remote" && strings.TrimSpace(cfg.Endpoint) == "" {
		errs = append(errs, fmt.Errorf("%w: endpoint is required for the remote provider", ErrEmptyEndpoint))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateChunking(cfg *ChunkingConfig) error {
	var errs []error

	if cfg.Words <= 0 {
		errs = append(errs, fmt.Errorf("%w: words must be positive, got %d", ErrInvalidChunkSize, cfg.Words))
	}
	if cfg.OverlapWords < 0 {
		errs = append(errs, fmt.Errorf("%w: overlap_words cannot be negative, got %d", ErrInvalidOverlap, cfg.OverlapWords))
	}
	if cfg.Words > 0 && cfg.OverlapWords >= cfg.Words {
		errs = append(errs, fmt.Errorf("%w: overlap_words (%d) must be less than words (%d)", ErrInvalidOverlap, cfg.OverlapWords, cfg.Words))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateRouter(cfg *RouterConfig) error {
	if cfg.MaxDocsets <= 0 {
		return fmt.Errorf("%w: max_docsets must be positive, got %d", ErrInvalidRouterSettings, cfg.MaxDocsets)
	}
	return nil
}

func validateRetrieval(cfg *RetrievalConfig) error {
	var errs []error

	if cfg.BM25TopK <= 0 {
		errs = append(errs, fmt.Errorf("%w: bm25_top_k must be positive, got %d", ErrInvalidRetrievalSettings, cfg.BM25TopK))
	}
	if cfg.VectorTopK <= 0 {
		errs = append(errs, fmt.Errorf("%w: vector_top_k must be positive, got %d", ErrInvalidRetrievalSettings, cfg.VectorTopK))
	}
	if cfg.ResultsTopK <= 0 || cfg.ResultsTopK > 20 {
		errs = append(errs, fmt.Errorf("%w: results_top_k must be in [1, 20], got %d", ErrInvalidRetrievalSettings, cfg.ResultsTopK))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
