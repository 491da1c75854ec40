package docparser

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/mvp-joe/docsearch/internal/docmodel"
	"github.com/mvp-joe/docsearch/internal/textutil"
)

var strippedTags = map[string]bool{
	"script": true, "style": true, "noscript": true,
	"nav": true, "header": true, "footer": true, "aside": true,
}

// segmentHTML implements spec.md section 4.3: locate a content root,
// strip boilerplate elements, segment by h2/h3 headings, and extract the
// pre/img fragments out of each section's subtree.
func segmentHTML(docsetID, relPath, src string) ([]*docmodel.DocSection, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}

	root := findContentRoot(doc)
	stripDescendants(root, strippedTags)

	headings := findHeadings(root)

	if len(headings) == 0 {
		title := documentTitle(doc)
		if title == "" {
			title = fileStem(relPath)
		}
		if title == "" {
			title = "Untitled"
		}
		section := buildSection(docsetID, relPath, "#", []string{title}, childNodes(root))
		return []*docmodel.DocSection{section}, nil
	}

	var sections []*docmodel.DocSection
	var currentH2 string

	for _, h := range headings {
		text := strings.TrimSpace(textContent(h))
		if text == "" {
			continue
		}

		var headingPath []string
		if h.DataAtom == atom.H2 {
			currentH2 = text
			headingPath = []string{text}
		} else {
			if currentH2 != "" {
				headingPath = []string{currentH2, text}
			} else {
				headingPath = []string{text}
			}
		}

		anchor := headingAnchor(h, relPath, headingPath)
		content := followingSiblingsUntilHeading(h)

		sections = append(sections, buildSection(docsetID, relPath, anchor, headingPath, content))
	}

	return sections, nil
}

func headingAnchor(h *html.Node, filePath string, headingPath []string) string {
	if id := attr(h, "id"); id != "" {
		return "#" + id
	}
	return docmodel.AnchorFromHeadingID(filePath, headingPath)
}

// followingSiblingsUntilHeading collects the siblings after h, within h's
// parent, stopping at the next h2/h3 sibling.
func followingSiblingsUntilHeading(h *html.Node) []*html.Node {
	var nodes []*html.Node
	for n := h.NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && (n.DataAtom == atom.H2 || n.DataAtom == atom.H3) {
			break
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func buildSection(docsetID, relPath, anchor string, headingPath []string, contentNodes []*html.Node) *docmodel.DocSection {
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range contentNodes {
		clone := cloneTree(n)
		container.AppendChild(clone)
	}

	codeBlocks := extractCodeBlocks(container)
	assets := extractAssets(container, relPath)
	text := textutil.NormalizeWhitespace(renderText(container))

	return &docmodel.DocSection{
		SectionRef:  docmodel.SectionRef(docsetID, relPath, anchor, headingPath),
		DocsetID:    docsetID,
		FilePath:    relPath,
		Anchor:      anchor,
		HeadingPath: headingPath,
		Text:        strings.TrimSpace(text),
		CodeBlocks:  codeBlocks,
		Assets:      assets,
	}
}

// findContentRoot locates element main, else article, else an element
// with role="main", else body, else the whole document.
func findContentRoot(doc *html.Node) *html.Node {
	if n := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Main
	}); n != nil {
		return n
	}
	if n := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Article
	}); n != nil {
		return n
	}
	if n := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "role") == "main"
	}); n != nil {
		return n
	}
	if n := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	}); n != nil {
		return n
	}
	return doc
}

func findHeadings(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.H2 || n.DataAtom == atom.H3) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func stripDescendants(root *html.Node, tags map[string]bool) {
	var doomed []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.ElementNode && tags[c.Data] {
				doomed = append(doomed, c)
			} else {
				walk(c)
			}
			c = next
		}
	}
	walk(root)
	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

func childNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func cloneTree(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:     n.Type,
		DataAtom: n.DataAtom,
		Data:     n.Data,
		Attr:     append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(cloneTree(c))
	}
	return clone
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func documentTitle(doc *html.Node) string {
	n := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Title
	})
	if n == nil {
		return ""
	}
	return strings.TrimSpace(textContent(n))
}

func fileStem(relPath string) string {
	base := relPath
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}
	return base
}

// extractCodeBlocks removes pre elements from container (mutating it)
// and returns their text in document order, per spec.md section 4.3.
func extractCodeBlocks(container *html.Node) []string {
	var pres []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.ElementNode && c.DataAtom == atom.Pre {
				pres = append(pres, c)
			} else {
				walk(c)
			}
			c = next
		}
	}
	walk(container)

	var blocks []string
	for _, pre := range pres {
		var text string
		if code := findFirst(pre, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.DataAtom == atom.Code
		}); code != nil {
			text = textContent(code)
		} else {
			text = textContent(pre)
		}
		text = strings.Trim(text, "\n")
		if text != "" {
			blocks = append(blocks, text)
		}
		if pre.Parent != nil {
			pre.Parent.RemoveChild(pre)
		}
	}
	return blocks
}

// extractAssets removes img elements from container (mutating it) and
// returns their Asset records in document order, per spec.md section 4.3.
func extractAssets(container *html.Node, relPath string) []docmodel.Asset {
	var imgs []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.ElementNode && c.DataAtom == atom.Img {
				imgs = append(imgs, c)
			} else {
				walk(c)
			}
			c = next
		}
	}
	walk(container)

	var assets []docmodel.Asset
	for _, img := range imgs {
		asset := docmodel.Asset{Src: attr(img, "src")}

		if alt := attr(img, "alt"); alt != "" {
			v := alt
			asset.Alt = &v
		}

		if img.Parent != nil && img.Parent.Type == html.ElementNode && img.Parent.DataAtom == atom.Figure {
			if fc := findFirst(img.Parent, func(n *html.Node) bool {
				return n.Type == html.ElementNode && n.DataAtom == atom.Figcaption
			}); fc != nil {
				if caption := strings.TrimSpace(textContent(fc)); caption != "" {
					v := caption
					asset.Caption = &v
				}
			}
		}

		asset.Path = resolveAssetPath(asset.Src, relPath)

		assets = append(assets, asset)
		if img.Parent != nil {
			img.Parent.RemoveChild(img)
		}
	}
	return assets
}

// renderText extracts the remaining text of n with newlines between
// elements, per spec.md section 4.3. Whitespace normalization is applied
// by the caller.
func renderText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
		case html.ElementNode:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			sb.WriteString("\n")
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}
