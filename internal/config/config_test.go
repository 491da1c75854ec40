package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_PassesValidation(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, ".docsearch/registry.toml", cfg.Registry.Path)
	assert.Equal(t, "remote", cfg.Embedding.Provider)
	assert.Equal(t, 280, cfg.Chunking.Words)
	assert.Equal(t, 60, cfg.Chunking.OverlapWords)
	assert.Equal(t, 3, cfg.Router.MaxDocsets)
	assert.Equal(t, 8, cfg.Retrieval.ResultsTopK)
	assert.True(t, cfg.AutoIndex)
}

func TestValidate_EmptyRegistryPathFails(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Registry.Path = "  "
	assert.ErrorIs(t, Validate(cfg), ErrEmptyRegistryPath)
}

func TestValidate_InvalidProviderFails(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Embedding.Provider = "openai"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidProvider)
}

func TestValidate_RemoteProviderRequiresEndpoint(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Embedding.Endpoint = ""
	assert.ErrorIs(t, Validate(cfg), ErrEmptyEndpoint)
}

func TestValidate_MockProviderDoesNotRequireEndpoint(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Embedding.Provider = "mock"
	cfg.Embedding.Endpoint = ""
	assert.NoError(t, Validate(cfg))
}

func TestValidate_OverlapMustBeLessThanWords(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Chunking.OverlapWords = cfg.Chunking.Words
	assert.ErrorIs(t, Validate(cfg), ErrInvalidOverlap)
}

func TestValidate_NegativeOverlapFails(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Chunking.OverlapWords = -1
	assert.ErrorIs(t, Validate(cfg), ErrInvalidOverlap)
}

func TestValidate_NonPositiveChunkWordsFails(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Chunking.Words = 0
	assert.ErrorIs(t, Validate(cfg), ErrInvalidChunkSize)
}

func TestValidate_MaxDocsetsMustBePositive(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Router.MaxDocsets = 0
	assert.ErrorIs(t, Validate(cfg), ErrInvalidRouterSettings)
}

func TestValidate_ResultsTopKOutOfRangeFails(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Retrieval.ResultsTopK = 21
	assert.ErrorIs(t, Validate(cfg), ErrInvalidRetrievalSettings)
}

func TestValidate_AccumulatesMultipleErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Registry.Path = ""
	cfg.Router.MaxDocsets = 0

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
