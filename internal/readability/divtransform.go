package readability

import (
	"strings"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/textpattern"
)

var blockTags = map[string]bool{
	"article": true, "aside": true, "blockquote": true, "details": true,
	"div": true, "dl": true, "fieldset": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "header": true, "hr": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"ul": true,
}

var phrasingTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "br": true,
	"cite": true, "code": true, "data": true, "del": true, "dfn": true,
	"em": true, "i": true, "ins": true, "kbd": true, "mark": true,
	"q": true, "s": true, "samp": true, "small": true, "span": true,
	"strong": true, "sub": true, "sup": true, "time": true, "u": true,
	"var": true, "wbr": true, "img": true, "button": true, "input": true,
	"label": true, "output": true, "select": true, "textarea": true,
}

func isPhrasingNode(n domutil.Node) bool {
	if n.IsText() {
		return true
	}
	if !n.IsElement() {
		return false
	}
	if phrasingTags[n.TagName()] {
		return true
	}
	for _, c := range n.Children() {
		if !isPhrasingNode(c) {
			return false
		}
	}
	return true
}

func hasBlockDescendant(n domutil.Node) bool {
	found := false
	domutil.Walk(n, func(c domutil.Node) {
		if found || c.Raw() == n.Raw() {
			return
		}
		if c.IsElement() && blockTags[c.TagName()] {
			found = true
		}
	})
	return found
}

// transformPhrasingDivs implements the div-to-p rewrite of §4.5.1.
func transformPhrasingDivs(root domutil.Node) {
	var divs []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.Is("div") {
			divs = append(divs, n)
		}
	})

	for _, div := range divs {
		if div.Parent().IsZero() {
			continue
		}
		if allChildrenPhrasing(div) {
			wrapPhrasingChildren(div)
		}

		children := div.ElementChildren()
		if len(children) == 1 && children[0].Is("p") && linkDensity(div) < 0.25 {
			div.ReplaceWith(children[0])
			continue
		}

		if !hasBlockDescendant(div) {
			div.Rename("p")
		}
	}
}

func allChildrenPhrasing(n domutil.Node) bool {
	for _, c := range n.Children() {
		if !isPhrasingNode(c) {
			return false
		}
	}
	return true
}

// wrapPhrasingChildren wraps runs of phrasing children in a new <p>,
// trimming trailing whitespace.
func wrapPhrasingChildren(div domutil.Node) {
	children := div.Children()
	if len(children) == 0 {
		return
	}
	p := domutil.NewElement("p")
	div.InsertBefore(p, children[0])
	for _, c := range children {
		c.Unlink()
		p.AppendChild(c)
	}
	trimTrailingWhitespace(p)
	if len(p.Children()) == 0 {
		p.Unlink()
	}
}

func trimTrailingWhitespace(p domutil.Node) {
	children := p.Children()
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		if c.IsText() && strings.TrimSpace(c.Text()) == "" {
			c.Unlink()
			continue
		}
		break
	}
}

// linkDensity is (sum over <a> descendants of text length, weighted 0.3
// for hash-only links else 1.0) / total inner-text length.
func linkDensity(n domutil.Node) float64 {
	total := len(n.Text())
	if total == 0 {
		return 0
	}
	linkText := 0.0
	domutil.Walk(n, func(c domutil.Node) {
		if !c.Is("a") {
			return
		}
		weight := 1.0
		if href, ok := c.Attr("href"); ok && textpattern.HashURL.MatchString(href) {
			weight = 0.3
		}
		linkText += weight * float64(len(c.Text()))
	})
	return linkText / float64(total)
}
