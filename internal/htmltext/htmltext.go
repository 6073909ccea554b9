// Package htmltext flattens HTML fragments into plain text. Feed
// summaries and discussion-post bodies frequently arrive as markup; the
// extractor wants raw words.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip parses s as HTML and returns the concatenated text content. If
// parsing fails the input is returned unchanged.
func Strip(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}
