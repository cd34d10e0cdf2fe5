package postprocess

import (
	"strings"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/prepare"
	"github.com/rijkvp/articlex/internal/textpattern"
)

// cleanConditionally implements §4.6.1: nodes of the given tags are
// removed unless they look like genuine content. Data tables (and
// anything nested inside one) are always exempt.
func cleanConditionally(root domutil.Node, tags ...string) {
	var candidates []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.IsAnyOf(tags...) {
			candidates = append(candidates, n)
		}
	})

	for _, n := range candidates {
		if n.IsZero() || n.Parent().IsZero() {
			continue
		}
		if isDataTableOrInside(n) {
			continue
		}
		if n.Is("ul") || n.Is("ol") {
			if isGenuineList(n) {
				continue
			}
		}
		if hasMediaSchemaDescendant(n) {
			continue
		}
		if shouldRemoveConditionally(n) {
			n.Unlink()
		}
	}
}

func isDataTableOrInside(n domutil.Node) bool {
	for cur := n; !cur.IsZero(); cur = cur.Parent() {
		if cur.Is("table") {
			if v, ok := cur.Attr(prepare.IsDataTableAttr); ok && v == "true" {
				return true
			}
		}
	}
	return false
}

func hasMediaSchemaDescendant(n domutil.Node) bool {
	found := false
	domutil.Walk(n, func(c domutil.Node) {
		if found || !c.IsElement() {
			return
		}
		if t, ok := c.Attr("itemtype"); ok && schemaObjectKind(t) != "" {
			found = true
		}
	})
	return found
}

// isGenuineList keeps a list whose own text makes up at least 90% of the
// node's total inner text (i.e. it is not mostly surrounding chrome).
func isGenuineList(n domutil.Node) bool {
	total := len(n.Text())
	if total == 0 {
		return false
	}
	listText := 0
	for _, c := range n.ElementChildren() {
		if c.Is("li") {
			listText += len(c.Text())
		}
	}
	return float64(listText) >= 0.9*float64(total)
}

func shouldRemoveConditionally(n domutil.Node) bool {
	class, _ := n.Attr("class")
	id, _ := n.Attr("id")
	weight := 0
	if textpattern.Positive.MatchString(class) || textpattern.Positive.MatchString(id) {
		weight += 25
	}
	if textpattern.Negative.MatchString(class) || textpattern.Negative.MatchString(id) {
		weight -= 25
	}
	if weight < 0 {
		return true
	}

	text := n.Text()
	commaCount := strings.Count(text, ",")
	if commaCount >= 10 {
		return false
	}

	paragraphs := countTag(n, "p")
	images := countTag(n, "img")
	listItems := countTag(n, "li")
	inputs := countTag(n, "input")
	headings := countTag(n, "h1") + countTag(n, "h2") + countTag(n, "h3") + countTag(n, "h4")
	embeds := countTag(n, "embed") + countTag(n, "object") + countTag(n, "iframe")

	if images > 1 && float64(images) > float64(paragraphs)*1.5 && !hasFigureAncestorOrSelf(n) {
		return true
	}
	if listItems > paragraphs && !n.IsAnyOf("ul", "ol") {
		return true
	}
	if inputs > countTag(n, "p")/3 {
		return true
	}

	contentLength := len(strings.TrimSpace(text))
	if headings == 0 && contentLength < 25 && (images == 0 || images > 2) {
		return true
	}

	if contentLength < 25 && linkDensity(n) > 0.25 {
		return true
	}
	if contentLength >= 25 && linkDensity(n) > 0.5 {
		return true
	}

	if embeds > 0 && contentLength < 75 {
		return true
	}

	return false
}

func countTag(n domutil.Node, tag string) int {
	count := 0
	domutil.Walk(n, func(c domutil.Node) {
		if c.Is(tag) {
			count++
		}
	})
	return count
}

func hasFigureAncestorOrSelf(n domutil.Node) bool {
	for cur := n; !cur.IsZero(); cur = cur.Parent() {
		if cur.Is("figure") {
			return true
		}
	}
	return false
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
