// Package lexical implements an in-memory Okapi BM25 index over a
// docset's chunk corpus, per spec.md section 4.5. Unlike a database-backed
// scorer, term statistics are precomputed once at build time and the
// index never mutates afterward.
package lexical

import "math"

// Index is an Okapi BM25 index over a fixed, ordered corpus of documents.
// Document i in the corpus corresponds to chunk i of a DocsetIndex.
type Index struct {
	k1 float64
	b  float64

	docCount     int
	avgDocLength float64
	docLengths   []int

	// postings maps a term to the list of (docIndex, termFrequency) pairs
	// for documents containing it, sorted by ascending docIndex.
	postings map[string][]posting
}

type posting struct {
	doc int
	tf  int
}

// DefaultK1 and DefaultB are the standard Okapi BM25 defaults used
// throughout the corpus: k1≈1.5, b≈0.75.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// Build constructs a BM25 index from a list of already-tokenized
// documents, one per chunk in corpus order.
func Build(tokenizedDocs [][]string) *Index {
	idx := &Index{
		k1:         DefaultK1,
		b:          DefaultB,
		docCount:   len(tokenizedDocs),
		docLengths: make([]int, len(tokenizedDocs)),
		postings:   make(map[string][]posting),
	}

	var totalLength int
	termFreqsByDoc := make([]map[string]int, len(tokenizedDocs))

	for i, tokens := range tokenizedDocs {
		idx.docLengths[i] = len(tokens)
		totalLength += len(tokens)

		freqs := make(map[string]int, len(tokens))
		for _, t := range tokens {
			freqs[t]++
		}
		termFreqsByDoc[i] = freqs
	}

	if idx.docCount > 0 {
		idx.avgDocLength = float64(totalLength) / float64(idx.docCount)
	}

	for i, freqs := range termFreqsByDoc {
		for term, tf := range freqs {
			idx.postings[term] = append(idx.postings[term], posting{doc: i, tf: tf})
		}
	}

	return idx
}

// Scores returns a BM25 score for every document in the corpus, given a
// set of already-tokenized and lowercased query tokens.
func (idx *Index) Scores(queryTokens []string) []float64 {
	scores := make([]float64, idx.docCount)
	if idx.docCount == 0 {
		return scores
	}

	seen := make(map[string]bool, len(queryTokens))
	for _, term := range queryTokens {
		if seen[term] {
			continue
		}
		seen[term] = true

		postings, ok := idx.postings[term]
		if !ok {
			continue
		}

		df := len(postings)
		idf := math.Log((float64(idx.docCount)-float64(df)+0.5)/(float64(df)+0.5) + 1.0)

		for _, p := range postings {
			docLen := float64(idx.docLengths[p.doc])
			denom := float64(p.tf) + idx.k1*(1-idx.b+idx.b*(docLen/idx.avgDocLength))
			tfComponent := (float64(p.tf) * (idx.k1 + 1)) / denom
			scores[p.doc] += idf * tfComponent
		}
	}

	return scores
}

// Len returns the number of documents in the corpus.
func (idx *Index) Len() int { return idx.docCount }
