package manager

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/docsearch/internal/config"
	"github.com/mvp-joe/docsearch/internal/embed"
	"github.com/mvp-joe/docsearch/internal/router"
)

func setupFixture(t *testing.T) (*config.Config, string) {
	t.Helper()

	root := t.TempDir()
	docsDir := filepath.Join(root, "docs", "go")
	require.NoError(t, os.MkdirAll(docsDir, 0o755))

	words := strings.Repeat("goroutine channel scheduler concurrency pattern ", 20)
	body := "## Concurrency\n\n" + words + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "guide.md"), []byte(body), 0o644))

	registryPath := filepath.Join(root, "registry.toml")
	registryContents := "[[docsets]]\n" +
		"docset_id = \"go\"\n" +
		"root_path = \"docs/go\"\n" +
		"keywords = [\"goroutine\", \"channel\"]\n" +
		"version = \"1.0.0\"\n"
	require.NoError(t, os.WriteFile(registryPath, []byte(registryContents), 0o644))

	cfg := config.Default()
	cfg.Registry.Path = registryPath
	cfg.Snapshot.Path = filepath.Join(root, "index.snapshot")
	cfg.Embedding.Provider = "mock"
	cfg.Chunking.Words = 20
	cfg.Chunking.OverlapWords = 5

	return cfg, root
}

func TestEnsureReady_BuildsAndPersistsSnapshotWhenMissing(t *testing.T) {
	t.Parallel()

	cfg, _ := setupFixture(t)
	mgr, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)

	require.NoError(t, mgr.EnsureReady(context.Background()))

	state := mgr.currentState()
	require.NotNil(t, state)
	assert.Equal(t, 1, state.Revision)
	_, ok := state.Indexes["go"]
	assert.True(t, ok)

	_, statErr := os.Stat(cfg.Snapshot.Path)
	assert.NoError(t, statErr)
}

func TestEnsureReady_LoadsExistingSnapshotOnSecondManager(t *testing.T) {
	t.Parallel()

	cfg, _ := setupFixture(t)

	first, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)
	require.NoError(t, first.EnsureReady(context.Background()))

	second, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)
	require.NoError(t, second.EnsureReady(context.Background()))

	state := second.currentState()
	require.NotNil(t, state)
	assert.Equal(t, 1, state.Revision)
}

func TestEnsureReady_FailsWhenAutoIndexDisabledAndNoSnapshot(t *testing.T) {
	t.Parallel()

	cfg, _ := setupFixture(t)
	cfg.AutoIndex = false

	mgr, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)

	err = mgr.EnsureReady(context.Background())
	assert.Error(t, err)
}

func TestReindex_IncrementsRevisionAndCarriesOverUntargeted(t *testing.T) {
	t.Parallel()

	cfg, root := setupFixture(t)
	mgr, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)
	require.NoError(t, mgr.EnsureReady(context.Background()))

	firstState := mgr.currentState()
	firstGoIndex := firstState.Indexes["go"]

	// add a second, untargeted docset so carry-over has something to exercise
	secondDir := filepath.Join(root, "docs", "rust")
	require.NoError(t, os.MkdirAll(secondDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(secondDir, "guide.md"), []byte("## Ownership\n\nborrow checker memory safety\n"), 0o644))

	registryContents := "[[docsets]]\n" +
		"docset_id = \"go\"\n" +
		"root_path = \"docs/go\"\n" +
		"version = \"1.0.0\"\n\n" +
		"[[docsets]]\n" +
		"docset_id = \"rust\"\n" +
		"root_path = \"docs/rust\"\n" +
		"version = \"1.0.0\"\n"
	require.NoError(t, os.WriteFile(cfg.Registry.Path, []byte(registryContents), 0o644))

	require.NoError(t, mgr.Reindex(context.Background(), []string{"rust"}))

	state := mgr.currentState()
	assert.Equal(t, 2, state.Revision)
	assert.Same(t, firstGoIndex, state.Indexes["go"])
	_, ok := state.Indexes["rust"]
	assert.True(t, ok)
}

func TestReindex_UnknownDocsetIDFails(t *testing.T) {
	t.Parallel()

	cfg, _ := setupFixture(t)
	mgr, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)
	require.NoError(t, mgr.EnsureReady(context.Background()))

	err = mgr.Reindex(context.Background(), []string{"nonexistent"})
	assert.Error(t, err)
}

func TestSearch_ReturnsRankedResultsAndCachesResponse(t *testing.T) {
	t.Parallel()

	cfg, _ := setupFixture(t)
	mgr, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)

	resp, err := mgr.Search(context.Background(), "how do goroutines work", "", router.Context{}, 5)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)
	require.NotEmpty(t, resp.Routing)

	cached, err := mgr.Search(context.Background(), "how do goroutines work", "", router.Context{}, 5)
	require.NoError(t, err)
	assert.Equal(t, resp.Results, cached.Results)
}

func TestSearch_EmptyQueryFails(t *testing.T) {
	t.Parallel()

	cfg, _ := setupFixture(t)
	mgr, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)

	_, err = mgr.Search(context.Background(), "   ", "", router.Context{}, 5)
	assert.Error(t, err)
}

func TestSearch_TopKClampedWhenOutOfRange(t *testing.T) {
	t.Parallel()

	cfg, _ := setupFixture(t)
	mgr, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)

	resp, err := mgr.Search(context.Background(), "goroutine scheduler", "", router.Context{}, 999)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(resp.Results), cfg.Retrieval.ResultsTopK)
}

func TestOpen_UnknownDocRefFails(t *testing.T) {
	t.Parallel()

	cfg, _ := setupFixture(t)
	mgr, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)

	_, err = mgr.Open(context.Background(), "go:doesnotexist")
	assert.Error(t, err)
}

func TestOpen_ResolvesKnownDocRef(t *testing.T) {
	t.Parallel()

	cfg, _ := setupFixture(t)
	mgr, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)
	require.NoError(t, mgr.EnsureReady(context.Background()))

	state := mgr.currentState()
	var aDocRef string
	for ref := range state.DocRefToDocset {
		aDocRef = ref
		break
	}
	require.NotEmpty(t, aDocRef)

	resp, err := mgr.Open(context.Background(), aDocRef)
	require.NoError(t, err)
	assert.NotNil(t, resp.Section)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Len(t, resp.AssetURLs, len(resp.Section.Assets))
}

func TestAssetPath_UnknownDocsetFails(t *testing.T) {
	t.Parallel()

	cfg, _ := setupFixture(t)
	mgr, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)
	require.NoError(t, mgr.EnsureReady(context.Background()))

	_, err = mgr.AssetPath(context.Background(), "nonexistent", "foo.png")
	assert.Error(t, err)
}

func TestListDocsets_ReturnsRegistryEntries(t *testing.T) {
	t.Parallel()

	cfg, _ := setupFixture(t)
	mgr, err := New(cfg, embed.NewMockProvider())
	require.NoError(t, err)

	docsets, err := mgr.ListDocsets()
	require.NoError(t, err)
	require.Len(t, docsets, 1)
	assert.Equal(t, "go", docsets[0].DocsetID)
}
