// Package registry loads the docset registry file (spec.md section 4.2),
// a TOML document declaring every documentation collection docsearch can
// index and search.
package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Docset is one documentation collection declared in the registry.
type Docset struct {
	DocsetID string   `toml:"docset_id"`
	RootPath string   `toml:"root_path"`
	Tags     []string `toml:"tags"`
	Keywords []string `toml:"keywords"`
	Version  string   `toml:"version"`
	Enabled  *bool    `toml:"enabled"`
}

// IsEnabled reports whether the docset is enabled, defaulting to true
// when the registry entry omits the field.
func (d Docset) IsEnabled() bool {
	if d.Enabled == nil {
		return true
	}
	return *d.Enabled
}

type fileFormat struct {
	Docsets []Docset `toml:"docsets"`
}

// Load reads and validates the registry file at path, returning the
// ordered list of docsets with root_path resolved to an absolute path.
func Load(path string) ([]Docset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}
	return Parse(raw, filepath.Dir(path))
}

// Parse decodes registry bytes already read from disk. baseDir is the
// directory that relative root_path entries are resolved against,
// normally the registry file's own directory.
func Parse(raw []byte, baseDir string) ([]Docset, error) {
	var doc fileFormat
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse registry file: %w", err)
	}

	if len(doc.Docsets) == 0 {
		return nil, fmt.Errorf("registry file declares no [[docsets]] entries")
	}

	seen := make(map[string]bool, len(doc.Docsets))
	docsets := make([]Docset, 0, len(doc.Docsets))

	for i, ds := range doc.Docsets {
		if ds.DocsetID == "" {
			return nil, fmt.Errorf("docsets[%d]: docset_id is required", i)
		}
		if seen[ds.DocsetID] {
			return nil, fmt.Errorf("docsets[%d]: duplicate docset_id %q", i, ds.DocsetID)
		}
		seen[ds.DocsetID] = true

		if ds.RootPath == "" {
			return nil, fmt.Errorf("docsets[%d] (%s): root_path is required", i, ds.DocsetID)
		}
		if !filepath.IsAbs(ds.RootPath) {
			ds.RootPath = filepath.Join(baseDir, ds.RootPath)
		}
		absRoot, err := filepath.Abs(ds.RootPath)
		if err != nil {
			return nil, fmt.Errorf("docset %q: resolve root_path %q: %w", ds.DocsetID, ds.RootPath, err)
		}
		ds.RootPath = absRoot

		if ds.Tags == nil {
			ds.Tags = []string{}
		}
		if ds.Keywords == nil {
			ds.Keywords = []string{}
		}

		if ds.IsEnabled() {
			info, err := os.Stat(ds.RootPath)
			if err != nil {
				return nil, fmt.Errorf("docset %q: root_path %q: %w", ds.DocsetID, ds.RootPath, err)
			}
			if !info.IsDir() {
				return nil, fmt.Errorf("docset %q: root_path %q is not a directory", ds.DocsetID, ds.RootPath)
			}
		}

		docsets = append(docsets, ds)
	}

	return docsets, nil
}
