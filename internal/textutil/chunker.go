package textutil

import "strings"

// ChunkWords splits text into overlapping word windows per spec.md
// section 4.1. If the text's whitespace-split word count is at most
// maxWords, it returns a single chunk holding the stripped text verbatim.
// Otherwise it steps by maxWords-overlapWords, each window holding up to
// maxWords words joined by single spaces, stopping once a window reaches
// the last word. Callers must ensure 0 <= overlapWords < maxWords.
func ChunkWords(text string, maxWords, overlapWords int) []string {
	words := strings.Fields(text)
	n := len(words)
	if n == 0 {
		return nil
	}

	if n <= maxWords {
		stripped := strings.TrimSpace(text)
		if stripped == "" {
			return nil
		}
		return []string{stripped}
	}

	step := maxWords - overlapWords
	var chunks []string

	for start := 0; ; start += step {
		end := start + maxWords
		if end > n {
			end = n
		}

		window := words[start:end]
		if len(window) > 0 {
			chunks = append(chunks, strings.Join(window, " "))
		}

		if end >= n {
			break
		}
	}

	return chunks
}
