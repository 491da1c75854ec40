// Package vectorindex holds a docset's dense embedding matrix, backed by
// an in-memory chromem-go collection, and scores it against a query
// vector by cosine similarity, per spec.md section 4.5. Rows are
// unit-normalized at build time, so chromem-go's cosine similarity and a
// raw dot product agree.
package vectorindex

import (
	"context"
	"fmt"
	"strconv"

	chromem "github.com/philippgille/chromem-go"
)

// Index is a dense embedding matrix with one row per chunk, in the same
// order as the docset's chunk list and BM25 corpus. Documents are keyed
// in the backing chromem-go collection by their decimal row index, so a
// similarity query's results can always be mapped back onto that same
// row order (invariant 1: BM25/embedding row alignment).
type Index struct {
	collection *chromem.Collection
	rows       [][]float32
}

// Build loads an already L2-normalized embeddings matrix into a fresh
// in-memory chromem-go collection, one document per row, keyed by row
// index. Passing nil metadata and a nil embedding function to
// CreateCollection is safe here because rows arrive pre-embedded; chromem-go is never asked
// to compute an embedding itself.
func Build(rows [][]float32) (*Index, error) {
	db := chromem.NewDB()
	collection, err := db.CreateCollection("docset", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create vector collection: %w", err)
	}

	ctx := context.Background()
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		doc := chromem.Document{
			ID:        strconv.Itoa(i),
			Embedding: row,
		}
		if err := collection.AddDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("add vector row %d: %w", i, err)
		}
	}

	return &Index{collection: collection, rows: rows}, nil
}

// Scores returns the cosine similarity of the query vector against every
// row, in row order. It asks chromem-go for as many nearest neighbors as
// there are rows, which for an in-memory collection is an exhaustive,
// exact ranking rather than an approximation, so every row gets a score.
func (idx *Index) Scores(query []float32) []float64 {
	n := len(idx.rows)
	scores := make([]float64, n)
	if n == 0 {
		return scores
	}

	results, err := idx.collection.QueryEmbedding(context.Background(), query, n, nil, nil)
	if err != nil {
		return scores
	}

	for _, r := range results {
		i, err := strconv.Atoi(r.ID)
		if err != nil || i < 0 || i >= n {
			continue
		}
		scores[i] = float64(r.Similarity)
	}
	return scores
}

// Len returns the number of rows in the matrix.
func (idx *Index) Len() int { return len(idx.rows) }

// Row returns the embedding row at i, for callers that need to persist
// the raw matrix (e.g. the snapshot store).
func (idx *Index) Row(i int) []float32 { return idx.rows[i] }
