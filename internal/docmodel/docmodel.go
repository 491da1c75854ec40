// Package docmodel defines the immutable records produced by parsing and
// indexing a docset (spec.md section 3). Every record here is built once
// and never mutated; a rebuild produces an entirely new IndexState that
// atomically replaces the prior one.
package docmodel

// Asset is an image or other embedded resource referenced by a section.
type Asset struct {
	Src     string  // verbatim src attribute
	Alt     *string // nil when absent or empty
	Caption *string // nil unless the img sits inside a figure with a figcaption
	Path    *string // normalized POSIX path under the docset root, nil if external/invalid
}

// DocSection is one heading-delimited region of a parsed documentation file.
type DocSection struct {
	SectionRef  string
	DocsetID    string
	FilePath    string // POSIX path relative to the docset root
	Anchor      string // "#" + heading id or derived fragment
	HeadingPath []string
	Text        string // normalized plain text
	CodeBlocks  []string
	Assets      []Asset
}

// Chunk is one word-window slice of a DocSection's text.
type Chunk struct {
	DocRef     string
	SectionRef string
	ChunkIndex int
	Text       string
}

// Title returns the section's display title: the last heading-path entry,
// or "Untitled" if the heading path is empty.
func (s DocSection) Title() string {
	if len(s.HeadingPath) == 0 {
		return "Untitled"
	}
	return s.HeadingPath[len(s.HeadingPath)-1]
}
