// Package indexstate holds the immutable, published state of a build:
// one DocsetIndex per enabled docset, assembled into an IndexState with a
// monotonically increasing revision (spec.md section 3).
package indexstate

import (
	"github.com/mvp-joe/docsearch/internal/docmodel"
	"github.com/mvp-joe/docsearch/internal/lexical"
	"github.com/mvp-joe/docsearch/internal/registry"
	"github.com/mvp-joe/docsearch/internal/vectorindex"
)

// DocsetIndex is the built index for one docset: its sections, its
// ordered chunk list, and the BM25 + dense indexes over that chunk list.
// Invariant: Chunks[i] corresponds row-for-row to Lexical's corpus and to
// Vector's embedding matrix.
type DocsetIndex struct {
	Docset        registry.Docset
	Sections      map[string]*docmodel.DocSection // keyed by section_ref
	Chunks        []*docmodel.Chunk               // ordered, index-aligned with Lexical/Vector
	ChunkByDocRef map[string]*docmodel.Chunk
	Lexical       *lexical.Index
	Vector        *vectorindex.Index
}

// Section returns the section a chunk belongs to.
func (di *DocsetIndex) Section(c *docmodel.Chunk) *docmodel.DocSection {
	return di.Sections[c.SectionRef]
}

// IndexState is the complete published state of all docsets' indexes.
type IndexState struct {
	Revision       int
	Docsets        map[string]registry.Docset
	Indexes        map[string]*DocsetIndex
	DocRefToDocset map[string]string
}

// New assembles an IndexState from the given per-docset indexes.
func New(revision int, indexes map[string]*DocsetIndex) *IndexState {
	docsets := make(map[string]registry.Docset, len(indexes))
	docRefToDocset := make(map[string]string)

	for id, di := range indexes {
		docsets[id] = di.Docset
		for _, c := range di.Chunks {
			docRefToDocset[c.DocRef] = id
		}
	}

	return &IndexState{
		Revision:       revision,
		Docsets:        docsets,
		Indexes:        indexes,
		DocRefToDocset: docRefToDocset,
	}
}

// Lookup resolves a doc_ref to its chunk, section, and docset index.
func (s *IndexState) Lookup(docRef string) (*docmodel.Chunk, *docmodel.DocSection, *DocsetIndex, bool) {
	docsetID, ok := s.DocRefToDocset[docRef]
	if !ok {
		return nil, nil, nil, false
	}
	di, ok := s.Indexes[docsetID]
	if !ok {
		return nil, nil, nil, false
	}
	chunk, ok := di.ChunkByDocRef[docRef]
	if !ok {
		return nil, nil, nil, false
	}
	return chunk, di.Section(chunk), di, true
}
