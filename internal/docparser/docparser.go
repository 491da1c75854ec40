// Package docparser turns the heterogeneous files under a docset root
// (HTML, Markdown, plain text) into a uniform list of docmodel.DocSection
// records, per spec.md section 4.3.
package docparser

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mvp-joe/docsearch/internal/docmodel"
)

// supportedExt is the fixed extension set spec.md section 4.3 parses.
var supportedExt = map[string]bool{
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// ParseDocset walks every supported file under root and returns the
// sections found, in a deterministic (lexical file path, then document
// order) ordering.
func ParseDocset(docsetID, root string) ([]*docmodel.DocSection, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if supportedExt[filepathExt(path)] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk docset root %q: %w", root, err)
	}

	sort.Strings(paths)

	var sections []*docmodel.DocSection
	for _, abs := range paths {
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			return nil, fmt.Errorf("relativize %q: %w", abs, err)
		}
		rel = filepath.ToSlash(rel)

		raw, err := os.ReadFile(abs)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", abs, err)
		}

		htmlSrc, err := toHTML(rel, raw)
		if err != nil {
			return nil, fmt.Errorf("convert %q: %w", abs, err)
		}

		fileSections, err := segmentHTML(docsetID, rel, htmlSrc)
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", abs, err)
		}
		sections = append(sections, fileSections...)
	}

	return sections, nil
}

func filepathExt(path string) string {
	ext := filepath.Ext(path)
	return toLowerASCII(ext)
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
