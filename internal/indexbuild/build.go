// Package indexbuild performs the per-docset build step of spec.md
// section 4.5: parse, chunk, and construct the BM25 and dense indexes.
package indexbuild

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvp-joe/docsearch/internal/config"
	"github.com/mvp-joe/docsearch/internal/docmodel"
	"github.com/mvp-joe/docsearch/internal/docparser"
	"github.com/mvp-joe/docsearch/internal/embed"
	"github.com/mvp-joe/docsearch/internal/indexstate"
	"github.com/mvp-joe/docsearch/internal/lexical"
	"github.com/mvp-joe/docsearch/internal/registry"
	"github.com/mvp-joe/docsearch/internal/textutil"
	"github.com/mvp-joe/docsearch/internal/vectorindex"
)

// denseInputLimit is the character truncation applied to a chunk's dense
// embedding input, per spec.md section 4.5.
const denseInputLimit = 4000

// maxCodeBlocksInCorpus caps how many of a section's code blocks feed
// into the BM25 corpus and dense input for each of its chunks.
const maxCodeBlocksInCorpus = 2

// Build runs the full per-docset build: parse the docset's files into
// sections, chunk each section's text, and construct the BM25 and dense
// indexes over the resulting chunk list. Returns an error if the docset
// yields zero chunks (spec.md section 4.5, invariant 4).
func Build(ctx context.Context, ds registry.Docset, cfg config.ChunkingConfig, embedder embed.Provider) (*indexstate.DocsetIndex, error) {
	sections, err := docparser.ParseDocset(ds.DocsetID, ds.RootPath)
	if err != nil {
		return nil, fmt.Errorf("parse docset %q: %w", ds.DocsetID, err)
	}

	sectionsByRef := make(map[string]*docmodel.DocSection, len(sections))
	var chunks []*docmodel.Chunk
	var bm25Corpus [][]string
	var denseInputs []string

	for _, section := range sections {
		sectionsByRef[section.SectionRef] = section

		windows := textutil.ChunkWords(section.Text, cfg.Words, cfg.OverlapWords)
		for i, windowText := range windows {
			docRef := docmodel.DocRef(ds.DocsetID, section.SectionRef, i)
			chunks = append(chunks, &docmodel.Chunk{
				DocRef:     docRef,
				SectionRef: section.SectionRef,
				ChunkIndex: i,
				Text:       windowText,
			})

			combined := CorpusText(section, windowText)
			bm25Corpus = append(bm25Corpus, textutil.Tokenize(combined))
			denseInputs = append(denseInputs, truncate(combined, denseInputLimit))
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("docset %q produced zero chunks", ds.DocsetID)
	}

	vectors, err := embedder.Embed(ctx, denseInputs, embed.EmbedModePassage)
	if err != nil {
		return nil, fmt.Errorf("embed docset %q: %w", ds.DocsetID, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("docset %q: embedder returned %d vectors for %d chunks", ds.DocsetID, len(vectors), len(chunks))
	}

	chunkByDocRef := make(map[string]*docmodel.Chunk, len(chunks))
	for _, c := range chunks {
		chunkByDocRef[c.DocRef] = c
	}

	vectorIndex, err := vectorindex.Build(vectors)
	if err != nil {
		return nil, fmt.Errorf("build vector index for docset %q: %w", ds.DocsetID, err)
	}

	return &indexstate.DocsetIndex{
		Docset:        ds,
		Sections:      sectionsByRef,
		Chunks:        chunks,
		ChunkByDocRef: chunkByDocRef,
		Lexical:       lexical.Build(bm25Corpus),
		Vector:        vectorIndex,
	}, nil
}

// CorpusText joins the heading path, the chunk text, and up to two of
// the section's code blocks with double newlines, per spec.md section
// 4.5. It is exported so the snapshot loader can rebuild the BM25
// corpus and dense input for a restored chunk without re-parsing files.
func CorpusText(section *docmodel.DocSection, chunkText string) string {
	parts := []string{strings.Join(section.HeadingPath, " > "), chunkText}

	n := len(section.CodeBlocks)
	if n > maxCodeBlocksInCorpus {
		n = maxCodeBlocksInCorpus
	}
	parts = append(parts, section.CodeBlocks[:n]...)

	return strings.Join(parts, "\n\n")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
