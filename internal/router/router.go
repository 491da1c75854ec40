// Package router selects the subset of docsets a query should be
// retrieved against, per spec.md section 4.6.
package router

import (
	"sort"
	"strings"

	"github.com/mvp-joe/docsearch/internal/registry"
)

// Context carries the optional routing hints a caller may supply
// alongside a query.
type Context struct {
	Language     string
	Dependencies []string
}

// Selection is one docset chosen by routing, with the reason it scored.
type Selection struct {
	DocsetID string
	Reason   string
}

const (
	sourceHintScore   = 100
	keywordScore      = 10
	tagScore          = 3
	dependencyScore   = 15
	maxReasonKeywords = 3
)

// Route scores every docset against query, sourceHint, and ctx, and
// returns up to maxK selections in descending score order. If none score
// positively, it falls back to the first maxK docsets in registry order.
func Route(docsets []registry.Docset, query, sourceHint string, ctx Context, maxK int) []Selection {
	lowerQuery := strings.ToLower(query)
	lowerDeps := make([]string, len(ctx.Dependencies))
	for i, d := range ctx.Dependencies {
		lowerDeps[i] = strings.ToLower(d)
	}

	type scored struct {
		order    int
		docsetID string
		score    int
		reason   string
	}

	candidates := make([]scored, len(docsets))
	for i, ds := range docsets {
		score := 0
		var reasonParts []string

		if sourceHint != "" && strings.EqualFold(sourceHint, ds.DocsetID) {
			score += sourceHintScore
			reasonParts = append(reasonParts, "source_hint")
		}

		var matchedKeywords []string
		for _, kw := range ds.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(lowerQuery, strings.ToLower(kw)) {
				score += keywordScore
				matchedKeywords = append(matchedKeywords, kw)
			}
		}
		if len(matchedKeywords) > 0 {
			n := len(matchedKeywords)
			if n > maxReasonKeywords {
				n = maxReasonKeywords
			}
			reasonParts = append(reasonParts, "keywords:"+strings.Join(matchedKeywords[:n], ","))
		}

		var matchedTags []string
		for _, tag := range ds.Tags {
			if tag == "" {
				continue
			}
			if strings.Contains(lowerQuery, strings.ToLower(tag)) {
				score += tagScore
				matchedTags = append(matchedTags, tag)
			}
		}
		if len(matchedTags) > 0 {
			reasonParts = append(reasonParts, "tags:"+strings.Join(matchedTags, ","))
		}

		var matchedDeps []string
		for _, kw := range ds.Keywords {
			if kw == "" {
				continue
			}
			lowerKw := strings.ToLower(kw)
			for _, dep := range lowerDeps {
				if strings.Contains(dep, lowerKw) {
					score += dependencyScore
					matchedDeps = append(matchedDeps, kw)
					break
				}
			}
		}
		if len(matchedDeps) > 0 {
			reasonParts = append(reasonParts, "deps:"+strings.Join(matchedDeps, ","))
		}

		candidates[i] = scored{
			order:    i,
			docsetID: ds.DocsetID,
			score:    score,
			reason:   strings.Join(reasonParts, ","),
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	var selections []Selection
	for _, c := range candidates {
		if c.score <= 0 {
			break
		}
		selections = append(selections, Selection{DocsetID: c.docsetID, Reason: c.reason})
		if len(selections) >= maxK {
			break
		}
	}

	if len(selections) == 0 {
		n := maxK
		if n > len(docsets) {
			n = len(docsets)
		}
		selections = make([]Selection, n)
		for i := 0; i < n; i++ {
			selections[i] = Selection{DocsetID: docsets[i].DocsetID, Reason: "fallback"}
		}
	}

	return selections
}
