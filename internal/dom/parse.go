// internal/dom/parse.go
package dom

import (
	"fmt"
	"io"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Parse reads an HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

// Load reads an HTML document from a file.
func Load(path string) (*html.Node, error) {
	doc, err := htmlquery.LoadDoc(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %q: %w", path, err)
	}
	return doc, nil
}

// Query returns the element nodes under root matched by an XPath expression.
func Query(root *html.Node, expr string) ([]*html.Node, error) {
	nodes, err := htmlquery.QueryAll(root, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	elems := nodes[:0]
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			elems = append(elems, n)
		}
	}
	return elems, nil
}

// Body returns the body element of a parsed document, or nil.
func Body(doc *html.Node) *html.Node {
	return htmlquery.FindOne(doc, "//body")
}
