package docparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseDocset_SingleSectionWithNoHeadings(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "index.html", `<html><head><title>My Doc</title></head><body><p>Hello world.</p></body></html>`)

	sections, err := ParseDocset("ds", root)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	assert.Equal(t, []string{"My Doc"}, sections[0].HeadingPath)
	assert.Equal(t, "#", sections[0].Anchor)
	assert.Contains(t, sections[0].Text, "Hello world.")
}

func TestParseDocset_H2H3Nesting(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "guide.html", `<html><body><main>
<h2 id="setup">Setup</h2>
<p>Install the tool.</p>
<h3 id="config">Configuration</h3>
<p>Set the config file.</p>
<h2>Usage</h2>
<p>Run the tool.</p>
</main></body></html>`)

	sections, err := ParseDocset("ds", root)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, []string{"Setup"}, sections[0].HeadingPath)
	assert.Contains(t, sections[0].Text, "Install the tool.")

	assert.Equal(t, []string{"Setup", "Configuration"}, sections[1].HeadingPath)
	assert.Equal(t, "#config", sections[1].Anchor)
	assert.Contains(t, sections[1].Text, "Set the config file.")

	assert.Equal(t, []string{"Usage"}, sections[2].HeadingPath)
	assert.Contains(t, sections[2].Text, "Run the tool.")
}

func TestParseDocset_MarkdownFencedCode(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "readme.md", "## Example\n\nHere is code:\n\n```go\nfmt.Println(\"hi\")\n```\n")

	sections, err := ParseDocset("ds", root)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	require.Len(t, sections[0].CodeBlocks, 1)
	assert.Contains(t, sections[0].CodeBlocks[0], `fmt.Println("hi")`)
	assert.Contains(t, sections[0].Text, "Here is code:")
	assert.NotContains(t, sections[0].Text, "fmt.Println")
}

func TestParseDocset_TxtFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "notes.txt", "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.")

	sections, err := ParseDocset("ds", root)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	assert.Equal(t, []string{"notes"}, sections[0].HeadingPath)
	assert.Contains(t, sections[0].Text, "First paragraph line one.")
	assert.Contains(t, sections[0].Text, "Second paragraph.")
}

func TestParseDocset_AssetResolution(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "guide/page.html", `<html><body>
<h2>Images</h2>
<figure><img src="../assets/pic.png" alt="a pic"><figcaption>caption text</figcaption></figure>
<img src="https://example.com/x.png">
<img src="/abs/leading.png">
<img src="../../escape.png">
</body></html>`)

	sections, err := ParseDocset("ds", root)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	assets := sections[0].Assets
	require.Len(t, assets, 4)

	require.NotNil(t, assets[0].Path)
	assert.Equal(t, "assets/pic.png", *assets[0].Path)
	require.NotNil(t, assets[0].Alt)
	assert.Equal(t, "a pic", *assets[0].Alt)
	require.NotNil(t, assets[0].Caption)
	assert.Equal(t, "caption text", *assets[0].Caption)

	assert.Nil(t, assets[1].Path, "http(s) urls resolve to nil path")

	require.NotNil(t, assets[2].Path)
	assert.Equal(t, "abs/leading.png", *assets[2].Path)

	assert.Nil(t, assets[3].Path, "paths escaping the docset root resolve to nil")
}

func TestResolveAssetFile_RejectsTraversal(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "assets/pic.png", "fake-png-bytes")

	path, err := ResolveAssetFile(root, "assets/pic.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "assets", "pic.png"), path)

	_, err = ResolveAssetFile(root, "../outside.png")
	assert.Error(t, err)

	_, err = ResolveAssetFile(root, "/etc/passwd")
	assert.Error(t, err)

	_, err = ResolveAssetFile(root, "assets/missing.png")
	assert.Error(t, err)
}
