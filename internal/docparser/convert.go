package docparser

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdownConverter = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Table),
)

// toHTML produces an HTML document for rel's contents, per spec.md
// section 4.3: HTML files pass through untouched, Markdown is rendered
// with fenced-code and table support, and plain text is wrapped in a
// synthetic <main><h2>{stem}</h2>{paragraphs}</main>.
func toHTML(rel string, raw []byte) (string, error) {
	switch filepathExt(rel) {
	case ".html", ".htm":
		return string(raw), nil
	case ".md", ".markdown":
		var buf bytes.Buffer
		if err := markdownConverter.Convert(raw, &buf); err != nil {
			return "", fmt.Errorf("render markdown: %w", err)
		}
		return buf.String(), nil
	case ".txt":
		return wrapPlainText(rel, raw), nil
	default:
		return "", fmt.Errorf("unsupported extension for %q", rel)
	}
}

func wrapPlainText(rel string, raw []byte) string {
	stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))

	var body strings.Builder
	body.WriteString("<main><h2>")
	body.WriteString(html.EscapeString(stem))
	body.WriteString("</h2>")

	for _, para := range splitParagraphs(string(raw)) {
		lines := strings.Split(para, "\n")
		body.WriteString("<p>")
		for i, line := range lines {
			if i > 0 {
				body.WriteString("<br/>")
			}
			body.WriteString(html.EscapeString(line))
		}
		body.WriteString("</p>")
	}

	body.WriteString("</main>")
	return body.String()
}

// splitParagraphs splits raw text on blank lines, trimming leading and
// trailing newlines from each paragraph and dropping whitespace-only ones.
func splitParagraphs(raw string) []string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	blocks := strings.Split(normalized, "\n\n")

	var paras []string
	for _, block := range blocks {
		trimmed := strings.Trim(block, "\n")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		paras = append(paras, trimmed)
	}
	return paras
}
