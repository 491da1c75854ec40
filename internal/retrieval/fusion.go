// Package retrieval implements per-docset hybrid scoring and score fusion,
// per spec.md section 4.7.
package retrieval

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mvp-joe/docsearch/internal/docmodel"
	"github.com/mvp-joe/docsearch/internal/indexstate"
)

const (
	bm25Weight   = 0.45
	vectorWeight = 0.55
	normEpsilon  = 1e-6

	snippetTextWords    = 90
	snippetCodeBytes    = 1200
	maxSnippetCodeCount = 1
)

// Candidate is one chunk considered for a query against one docset.
type Candidate struct {
	DocRef      string
	DocsetID    string
	RootPath    string // docset's absolute root_path, needed to render an absolute file:// URL
	Section     *docmodel.DocSection
	Chunk       *docmodel.Chunk
	BM25Score   float64
	VectorScore float64
}

// Result is a rendered hit returned to the caller, per spec.md section 4.7.
type Result struct {
	DocRef      string
	DocsetID    string
	FilePath    string
	HeadingPath []string
	Anchor      string
	Version     string
	Score       float64
	Title       string
	URL         string
	SnippetText string
	SnippetCode []string
}

// CandidatesForDocset computes BM25 and dense scores over a docset's
// chunks, unions the top bm25TopK and top vectorTopK indices, and
// produces one Candidate per selected chunk.
func CandidatesForDocset(di *indexstate.DocsetIndex, queryTokens []string, queryVector []float32, bm25TopK, vectorTopK int) []Candidate {
	bm25Scores := di.Lexical.Scores(queryTokens)
	vecScores := di.Vector.Scores(queryVector)

	selected := make(map[int]bool)
	for _, i := range TopKIndices(bm25Scores, bm25TopK) {
		selected[i] = true
	}
	for _, i := range TopKIndices(vecScores, vectorTopK) {
		selected[i] = true
	}

	indices := make([]int, 0, len(selected))
	for i := range selected {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	candidates := make([]Candidate, 0, len(indices))
	for _, i := range indices {
		chunk := di.Chunks[i]
		candidates = append(candidates, Candidate{
			DocRef:      chunk.DocRef,
			DocsetID:    di.Docset.DocsetID,
			RootPath:    di.Docset.RootPath,
			Section:     di.Section(chunk),
			Chunk:       chunk,
			BM25Score:   bm25Scores[i],
			VectorScore: vecScores[i],
		})
	}
	return candidates
}

// MergeByDocRef deduplicates candidates sharing a doc_ref (which should
// not occur in practice given the docset-id prefix), keeping the
// elementwise max of each score, per spec.md section 4.7.
func MergeByDocRef(all []Candidate) []Candidate {
	byRef := make(map[string]*Candidate, len(all))
	var order []string

	for i := range all {
		c := all[i]
		if existing, ok := byRef[c.DocRef]; ok {
			if c.BM25Score > existing.BM25Score {
				existing.BM25Score = c.BM25Score
			}
			if c.VectorScore > existing.VectorScore {
				existing.VectorScore = c.VectorScore
			}
			continue
		}
		cc := c
		byRef[c.DocRef] = &cc
		order = append(order, c.DocRef)
	}

	merged := make([]Candidate, 0, len(order))
	for _, ref := range order {
		merged = append(merged, *byRef[ref])
	}
	return merged
}

// Scored pairs a candidate with its final fused score.
type Scored struct {
	Candidate Candidate
	Score     float64
}

// Fuse min-max normalizes the BM25 and vector score pools independently,
// computes a weighted sum per candidate, sorts descending, and truncates
// to topK, per spec.md section 4.7.
func Fuse(candidates []Candidate, topK int) []Scored {
	if len(candidates) == 0 {
		return nil
	}

	bm25 := make([]float64, len(candidates))
	vec := make([]float64, len(candidates))
	for i, c := range candidates {
		bm25[i] = c.BM25Score
		vec[i] = c.VectorScore
	}

	bm25Norm := minMaxNormalize(bm25)
	vecNorm := minMaxNormalize(vec)

	scored := make([]Scored, len(candidates))
	for i, c := range candidates {
		scored[i] = Scored{
			Candidate: c,
			Score:     bm25Weight*bm25Norm[i] + vectorWeight*vecNorm[i],
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > len(scored) {
		topK = len(scored)
	}

	return scored[:topK]
}

func minMaxNormalize(values []float64) []float64 {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := make([]float64, len(values))
	if max-min < normEpsilon {
		return out
	}
	for i, v := range values {
		out[i] = (v - min) / (max - min)
	}
	return out
}

// Render produces the caller-facing Result for a fused candidate, per
// spec.md section 4.7.
func Render(c Candidate, score float64) Result {
	title := "Untitled"
	if c.Section != nil && len(c.Section.HeadingPath) > 0 {
		title = c.Section.HeadingPath[len(c.Section.HeadingPath)-1]
	}

	var url, filePath, anchor string
	var headingPath []string
	if c.Section != nil {
		filePath = c.Section.FilePath
		anchor = c.Section.Anchor
		headingPath = c.Section.HeadingPath
		absPath := filepath.Join(c.RootPath, filepath.FromSlash(c.Section.FilePath))
		url = fmt.Sprintf("file://%s%s", filepath.ToSlash(absPath), c.Section.Anchor)
	}

	var snippetCode []string
	if c.Section != nil && len(c.Section.CodeBlocks) > 0 {
		snippetCode = []string{truncateBytes(c.Section.CodeBlocks[0], snippetCodeBytes)}
	}

	return Result{
		DocRef:      c.DocRef,
		DocsetID:    c.DocsetID,
		FilePath:    filePath,
		HeadingPath: headingPath,
		Anchor:      anchor,
		Score:       score,
		Title:       title,
		URL:         url,
		SnippetText: truncateWords(c.Chunk.Text, snippetTextWords),
		SnippetCode: snippetCode,
	}
}

func truncateWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + "…"
}

func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "\n…"
}
