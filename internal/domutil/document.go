// Package domutil is the DOM facade (C1): parse HTML bytes into a mutable
// tree, evaluate selector queries, and serialize nodes back to HTML. It is
// a thin wrapper over goquery/x-net-html — goquery.Selection is the
// convenience layer for selector evaluation, golang.org/x/net/html is the
// source of truth for structural mutation.
package domutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rijkvp/articlex/pkg/failure"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// MaxSelectDepth is a depth value of 10. No traversal in this package
// consults it: selector evaluation and tree walks have no depth limit.
const MaxSelectDepth = 10

// Document owns a parsed tree. Documents are created per page and are not
// safe for concurrent mutation.
type Document struct {
	root *html.Node
}

// ParseHTML parses raw bytes into a Document. If encoding is non-empty it
// is used to decode the body before tokenization; otherwise the parser
// falls back to UTF-8 with byte-level lossy recovery.
func ParseHTML(data []byte, encoding string) (*Document, failure.ClassifiedError) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, failure.NewScrapeError(failure.KindInvalidHTML, "input is empty", nil)
	}

	reader := bytes.NewReader(data)
	var r = struct {
		*bytes.Reader
	}{reader}

	var root *html.Node
	var err error
	if encoding != "" {
		decoded, decodeErr := charset.NewReaderLabel(encoding, r)
		if decodeErr == nil {
			root, err = html.ParseWithOptions(decoded, html.ParseOptionEnableScripting(false))
		} else {
			root, err = html.ParseWithOptions(bytes.NewReader(data), html.ParseOptionEnableScripting(false))
		}
	} else {
		root, err = html.ParseWithOptions(bytes.NewReader(data), html.ParseOptionEnableScripting(false))
	}
	if err != nil {
		return nil, failure.NewScrapeError(failure.KindInvalidHTML, "failed to parse HTML", err)
	}
	if root == nil || !hasElementChild(root) {
		return nil, failure.NewScrapeError(failure.KindInvalidHTML, "parser returned an empty document", nil)
	}
	return &Document{root: root}, nil
}

func hasElementChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return true
		}
		if hasElementChild(c) {
			return true
		}
	}
	return false
}

// NewDocumentFragment builds a Document whose root is a detached <div>
// wrapping newly-created nodes; used to build output roots and subtrees.
func NewDocumentFragment() *Document {
	root := NewElement("div")
	return &Document{root: root.n}
}

// NewDocumentFromNode builds a Document rooted at an already-detached
// node, typically the result of Node.Clone.
func NewDocumentFromNode(n Node) *Document {
	return &Document{root: n.n}
}

// Root returns the document's root node.
func (d *Document) Root() Node {
	return Node{n: d.root}
}

// Select evaluates a CSS selector against the document and returns
// matching nodes in document order.
func (d *Document) Select(selector string) ([]Node, failure.ClassifiedError) {
	return Node{n: d.root}.Select(selector)
}

// Select evaluates a CSS selector rooted at n.
func (n Node) Select(selector string) ([]Node, failure.ClassifiedError) {
	if n.n == nil {
		return nil, nil
	}
	sel, err := cascadiaCompile(selector)
	if err != nil {
		return nil, failure.NewScrapeError(failure.KindSelectorFailure, "invalid selector: "+selector, err)
	}
	gq := goquery.NewDocumentFromNode(n.n)
	matches := sel.MatchAll(gq.Nodes[0])
	nodes := make([]Node, 0, len(matches))
	for _, m := range matches {
		nodes = append(nodes, Node{n: m})
	}
	return nodes, nil
}

// Serialize renders a node (and its descendants) back to HTML.
func Serialize(n Node) (string, failure.ClassifiedError) {
	if n.n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n.n); err != nil {
		return "", failure.NewScrapeError(failure.KindIO, "failed to serialize node", err)
	}
	return buf.String(), nil
}

// InnerHTML serializes only the children of n, not n itself.
func InnerHTML(n Node) (string, failure.ClassifiedError) {
	var b strings.Builder
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		var buf bytes.Buffer
		if err := html.Render(&buf, c); err != nil {
			return "", failure.NewScrapeError(failure.KindIO, "failed to serialize node", err)
		}
		b.Write(buf.Bytes())
	}
	return b.String(), nil
}
