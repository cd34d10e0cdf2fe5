package domutil

import (
	"strings"

	"golang.org/x/net/html"
)

// Node is a thin value type wrapping *html.Node. The zero Node (nil
// wrapped node) is a valid "no node" sentinel — callers check IsZero.
type Node struct {
	n *html.Node
}

func WrapNode(n *html.Node) Node { return Node{n: n} }

func (n Node) Raw() *html.Node { return n.n }

func (n Node) IsZero() bool { return n.n == nil }

func (n Node) IsElement() bool { return n.n != nil && n.n.Type == html.ElementNode }

func (n Node) IsText() bool { return n.n != nil && n.n.Type == html.TextNode }

func (n Node) IsComment() bool { return n.n != nil && n.n.Type == html.CommentNode }

// TagName returns the lowercase tag name, or "" for non-element nodes.
func (n Node) TagName() string {
	if n.n == nil || n.n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.n.Data)
}

// Is reports whether the node is an element with the given (case
// insensitive) tag name.
func (n Node) Is(tag string) bool {
	return n.IsElement() && strings.EqualFold(n.n.Data, tag)
}

// IsAnyOf reports whether the node's tag is one of the given names.
func (n Node) IsAnyOf(tags ...string) bool {
	if !n.IsElement() {
		return false
	}
	for _, t := range tags {
		if strings.EqualFold(n.n.Data, t) {
			return true
		}
	}
	return false
}

func (n Node) Attr(key string) (string, bool) {
	if n.n == nil {
		return "", false
	}
	for _, a := range n.n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func (n Node) AttrOr(key, fallback string) string {
	if v, ok := n.Attr(key); ok {
		return v
	}
	return fallback
}

func (n Node) SetAttr(key, value string) {
	if n.n == nil {
		return
	}
	for i, a := range n.n.Attr {
		if strings.EqualFold(a.Key, key) {
			n.n.Attr[i].Val = value
			return
		}
	}
	n.n.Attr = append(n.n.Attr, html.Attribute{Key: key, Val: value})
}

func (n Node) RemoveAttr(key string) {
	if n.n == nil {
		return
	}
	out := n.n.Attr[:0]
	for _, a := range n.n.Attr {
		if !strings.EqualFold(a.Key, key) {
			out = append(out, a)
		}
	}
	n.n.Attr = out
}

func (n Node) Attrs() []html.Attribute {
	if n.n == nil {
		return nil
	}
	return n.n.Attr
}

// ClassTokens returns the whitespace-delimited tokens of the class
// attribute, lowercased.
func (n Node) ClassTokens() []string {
	class, _ := n.Attr("class")
	return strings.Fields(strings.ToLower(class))
}

// HasClassToken reports whether the class attribute contains the exact
// token (case-insensitive).
func (n Node) HasClassToken(token string) bool {
	token = strings.ToLower(token)
	for _, t := range n.ClassTokens() {
		if t == token {
			return true
		}
	}
	return false
}

// ClassOrIDContains reports whether class or id contains substr
// (case-insensitive, substring match — not token match).
func (n Node) ClassOrIDContains(substr string) bool {
	substr = strings.ToLower(substr)
	class, _ := n.Attr("class")
	id, _ := n.Attr("id")
	return strings.Contains(strings.ToLower(class), substr) ||
		strings.Contains(strings.ToLower(id), substr)
}

func (n Node) Parent() Node {
	if n.n == nil {
		return Node{}
	}
	return Node{n: n.n.Parent}
}

func (n Node) FirstChild() Node {
	if n.n == nil {
		return Node{}
	}
	return Node{n: n.n.FirstChild}
}

func (n Node) NextSibling() Node {
	if n.n == nil {
		return Node{}
	}
	return Node{n: n.n.NextSibling}
}

func (n Node) PrevSibling() Node {
	if n.n == nil {
		return Node{}
	}
	return Node{n: n.n.PrevSibling}
}

// Children returns direct element+text children in order.
func (n Node) Children() []Node {
	if n.n == nil {
		return nil
	}
	var out []Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, Node{n: c})
	}
	return out
}

// ElementChildren returns only direct element children.
func (n Node) ElementChildren() []Node {
	var out []Node
	for _, c := range n.Children() {
		if c.IsElement() {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the concatenated descendant text content.
func (n Node) Text() string {
	if n.n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.n)
	return b.String()
}

// Unlink detaches n from its parent. No-op if n has no parent.
func (n Node) Unlink() {
	if n.n == nil || n.n.Parent == nil {
		return
	}
	n.n.Parent.RemoveChild(n.n)
}

// AppendChild appends child as the last child of n.
func (n Node) AppendChild(child Node) {
	if n.n == nil || child.n == nil {
		return
	}
	if child.n.Parent != nil {
		child.n.Parent.RemoveChild(child.n)
	}
	n.n.AppendChild(child.n)
}

// InsertBefore inserts newNode immediately before ref among n's children.
func (n Node) InsertBefore(newNode, ref Node) {
	if n.n == nil || newNode.n == nil {
		return
	}
	if newNode.n.Parent != nil {
		newNode.n.Parent.RemoveChild(newNode.n)
	}
	n.n.InsertBefore(newNode.n, ref.n)
}

// ReplaceWith swaps n for replacement in n's parent, then unlinks n.
func (n Node) ReplaceWith(replacement Node) {
	if n.n == nil || n.n.Parent == nil || replacement.n == nil {
		return
	}
	if replacement.n.Parent != nil {
		replacement.n.Parent.RemoveChild(replacement.n)
	}
	n.n.Parent.InsertBefore(replacement.n, n.n)
	n.n.Parent.RemoveChild(n.n)
}

// Rename changes the tag name of an element node in place.
func (n Node) Rename(tag string) {
	if n.n != nil && n.n.Type == html.ElementNode {
		n.n.Data = tag
		n.n.DataAtom = 0
	}
}

// Clone returns a deep copy of n, detached from any tree.
func (n Node) Clone() Node {
	if n.n == nil {
		return Node{}
	}
	return Node{n: deepClone(n.n)}
}

func deepClone(node *html.Node) *html.Node {
	clone := &html.Node{
		Type:      node.Type,
		DataAtom:  node.DataAtom,
		Data:      node.Data,
		Namespace: node.Namespace,
	}
	if len(node.Attr) > 0 {
		clone.Attr = make([]html.Attribute, len(node.Attr))
		copy(clone.Attr, node.Attr)
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(deepClone(c))
	}
	return clone
}

// NewElement creates a detached element node.
func NewElement(tag string) Node {
	return Node{n: &html.Node{Type: html.ElementNode, Data: tag}}
}

// NewText creates a detached text node.
func NewText(text string) Node {
	return Node{n: &html.Node{Type: html.TextNode, Data: text}}
}

// Walk visits n and every descendant, depth-first pre-order.
func Walk(n Node, visit func(Node)) {
	if n.n == nil {
		return
	}
	visit(n)
	for c := n.n.FirstChild; c != nil; {
		next := c.NextSibling
		Walk(Node{n: c}, visit)
		c = next
	}
}

// IsEmpty reports whether an element has no element children and only
// whitespace text content.
func (n Node) IsEmpty() bool {
	if !n.IsElement() {
		return false
	}
	return len(n.ElementChildren()) == 0 && strings.TrimSpace(n.Text()) == ""
}
