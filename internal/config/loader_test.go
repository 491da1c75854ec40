package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoConfigFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".docsearch/registry.toml"), cfg.Registry.Path)
	assert.Equal(t, "bge-small-en-v1.5", cfg.Embedding.Model)
	assert.Equal(t, 280, cfg.Chunking.Words)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".docsearch"), 0o755))
	configYAML := "chunking:\n  words: 100\n  overlap_words: 20\nembedding:\n  provider: mock\n  model: test-model\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".docsearch", "config.yml"), []byte(configYAML), 0o644))

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Chunking.Words)
	assert.Equal(t, 20, cfg.Chunking.OverlapWords)
	assert.Equal(t, "mock", cfg.Embedding.Provider)
	assert.Equal(t, "test-model", cfg.Embedding.Model)
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".docsearch"), 0o755))
	configYAML := "chunking:\n  words: 100\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".docsearch", "config.yml"), []byte(configYAML), 0o644))

	t.Setenv("DOCSEARCH_CHUNKING_WORDS", "333")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, 333, cfg.Chunking.Words)
}

func TestLoad_InvalidConfigFailsValidation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".docsearch"), 0o755))
	configYAML := "router:\n  max_docsets: 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".docsearch", "config.yml"), []byte(configYAML), 0o644))

	_, err := NewLoader(dir).Load()
	assert.Error(t, err)
}
