package readability

import (
	"strings"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/textpattern"
)

// Options configures a single Extract call.
type Options struct {
	KnownTitle              string
	ShouldRemoveTitleHeader bool
}

// candidateTags are the tags collected for scoring (§4.5.1).
var candidateTags = []string{"section", "h2", "h3", "h4", "h5", "h6", "p", "td", "pre"}

func preScan(root domutil.Node, f flags, opts Options, byline *string) {
	var toRemove []domutil.Node
	bylineFound := false

	domutil.Walk(root, func(n domutil.Node) {
		if n == root {
			return
		}
		if n.IsText() {
			if strings.TrimSpace(n.Text()) == "" {
				toRemove = append(toRemove, n)
			}
			return
		}
		if !n.IsElement() {
			return
		}
		if !isVisible(n) {
			toRemove = append(toRemove, n)
			return
		}
		if !bylineFound && isBylineCandidate(n) {
			bylineFound = true
			text := strings.TrimSpace(n.Text())
			if byline != nil {
				*byline = text
			}
			toRemove = append(toRemove, n)
			return
		}
		if opts.ShouldRemoveTitleHeader && opts.KnownTitle != "" && isTitleDuplicate(n, opts.KnownTitle) {
			toRemove = append(toRemove, n)
			return
		}
		if f.stripUnlikely && isUnlikelyCandidate(n) {
			toRemove = append(toRemove, n)
			return
		}
		if n.IsAnyOf("div", "section", "header", "h1", "h2", "h3", "h4", "h5", "h6") && n.IsEmpty() {
			toRemove = append(toRemove, n)
		}
	})

	for _, n := range toRemove {
		n.Unlink()
	}

	transformPhrasingDivs(root)
}

func isVisible(n domutil.Node) bool {
	if v, ok := n.Attr("hidden"); ok && v != "false" {
		return n.HasClassToken("fallback-image")
	}
	if v, ok := n.Attr("aria-hidden"); ok && v == "true" {
		return n.HasClassToken("fallback-image")
	}
	return true
}

func isBylineCandidate(n domutil.Node) bool {
	class, _ := n.Attr("class")
	id, _ := n.Attr("id")
	rel, _ := n.Attr("rel")
	if !textpattern.Byline.MatchString(class) && !textpattern.Byline.MatchString(id) && !textpattern.Byline.MatchString(rel) {
		return false
	}
	return len(strings.TrimSpace(n.Text())) <= 100
}

func isTitleDuplicate(n domutil.Node, knownTitle string) bool {
	if !n.IsAnyOf("h1", "h2") {
		return false
	}
	return strings.TrimSpace(n.Text()) == strings.TrimSpace(knownTitle)
}

func isUnlikelyCandidate(n domutil.Node) bool {
	if n.Is("body") || n.Is("a") {
		return false
	}
	if role, ok := n.Attr("role"); ok && textpattern.UnlikelyRoles[strings.ToLower(role)] {
		return true
	}
	class, _ := n.Attr("class")
	id, _ := n.Attr("id")
	combined := class + " " + id
	if !textpattern.Unlikely.MatchString(combined) {
		return false
	}
	if textpattern.MaybeCandidate.MatchString(combined) {
		return false
	}
	for cur := n.Parent(); !cur.IsZero(); cur = cur.Parent() {
		if cur.IsAnyOf("table", "code") {
			return false
		}
	}
	return true
}
