// Package textutil holds the tokenizer, whitespace normalizer, and
// word-window chunker shared by the parser, the lexical index, and the
// router (spec.md section 4.1).
package textutil

import (
	"regexp"
	"strings"
)

// tokenRe matches maximal runs of the token character class from spec.md
// section 4.1: letters, digits, underscore, dot, slash, colon, plus, hyphen.
var tokenRe = regexp.MustCompile(`[A-Za-z0-9_./:+-]+`)

// Tokenize extracts lowercased tokens from text.
func Tokenize(text string) []string {
	matches := tokenRe.FindAllString(text, -1)
	tokens := make([]string, len(matches))
	for i, m := range matches {
		tokens[i] = strings.ToLower(m)
	}
	return tokens
}

// blankRunRe collapses three or more consecutive newlines (optionally
// separated by horizontal whitespace) down to exactly two.
var blankRunRe = regexp.MustCompile(`\n[ \t]*(?:\n[ \t]*){2,}`)

// trailingSpaceRe strips spaces/tabs sitting just before a newline.
var trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)

// NormalizeWhitespace collapses long runs of blank lines to two newlines
// and strips trailing spaces before newlines.
func NormalizeWhitespace(text string) string {
	text = trailingSpaceRe.ReplaceAllString(text, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return text
}
