package manager

import (
	"fmt"

	"github.com/mvp-joe/docsearch/internal/docmodel"
	"github.com/mvp-joe/docsearch/internal/indexbuild"
	"github.com/mvp-joe/docsearch/internal/indexstate"
	"github.com/mvp-joe/docsearch/internal/lexical"
	"github.com/mvp-joe/docsearch/internal/registry"
	"github.com/mvp-joe/docsearch/internal/snapshot"
	"github.com/mvp-joe/docsearch/internal/textutil"
	"github.com/mvp-joe/docsearch/internal/vectorindex"
)

// recordFromState projects a live IndexState into the serializable form
// snapshot.Save persists.
func recordFromState(state *indexstate.IndexState) snapshot.State {
	docsets := make([]snapshot.DocsetState, 0, len(state.Indexes))

	for id, di := range state.Indexes {
		sections := make([]*docmodel.DocSection, 0, len(di.Sections))
		for _, s := range di.Sections {
			sections = append(sections, s)
		}

		vectors := make([][]float32, len(di.Chunks))
		for i := range di.Chunks {
			vectors[i] = di.Vector.Row(i)
		}

		docsets = append(docsets, snapshot.DocsetState{
			DocsetID: id,
			RootPath: di.Docset.RootPath,
			Tags:     di.Docset.Tags,
			Keywords: di.Docset.Keywords,
			Version:  di.Docset.Version,
			Enabled:  di.Docset.IsEnabled(),
			Sections: sections,
			Chunks:   di.Chunks,
			Vectors:  vectors,
		})
	}

	return snapshot.State{Revision: state.Revision, Docsets: docsets}
}

// stateFromRecord rebuilds a live IndexState from its serialized form,
// reconstructing the BM25 and dense indexes from the stored chunks and
// vectors rather than re-parsing the docset's files.
func stateFromRecord(s snapshot.State) (*indexstate.IndexState, error) {
	indexes := make(map[string]*indexstate.DocsetIndex, len(s.Docsets))

	for _, ds := range s.Docsets {
		sectionsByRef := make(map[string]*docmodel.DocSection, len(ds.Sections))
		for _, sec := range ds.Sections {
			sectionsByRef[sec.SectionRef] = sec
		}

		chunkByDocRef := make(map[string]*docmodel.Chunk, len(ds.Chunks))
		bm25Corpus := make([][]string, len(ds.Chunks))
		for i, c := range ds.Chunks {
			chunkByDocRef[c.DocRef] = c
			section := sectionsByRef[c.SectionRef]
			bm25Corpus[i] = textutil.Tokenize(indexbuild.CorpusText(section, c.Text))
		}

		vectorIndex, err := vectorindex.Build(ds.Vectors)
		if err != nil {
			return nil, fmt.Errorf("rebuild vector index for docset %q: %w", ds.DocsetID, err)
		}

		enabled := ds.Enabled
		indexes[ds.DocsetID] = &indexstate.DocsetIndex{
			Docset: registry.Docset{
				DocsetID: ds.DocsetID,
				RootPath: ds.RootPath,
				Tags:     ds.Tags,
				Keywords: ds.Keywords,
				Version:  ds.Version,
				Enabled:  &enabled,
			},
			Sections:      sectionsByRef,
			Chunks:        ds.Chunks,
			ChunkByDocRef: chunkByDocRef,
			Lexical:       lexical.Build(bm25Corpus),
			Vector:        vectorIndex,
		}
	}

	return indexstate.New(s.Revision, indexes), nil
}
