// Package prepare is the preparation pass (C3): it destructively rewrites
// a parsed document into a cleaned form ready for body extraction —
// tag renames, config/generic stripping, lazy-image repair, URL
// absolutization, noscript recovery, and <br> chain conversion.
package prepare

import (
	"net/url"
	"strings"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/siteconfig"
	"github.com/rijkvp/articlex/internal/textpattern"
	"github.com/rijkvp/articlex/pkg/failure"
)

// Options bundles the inputs a single Prepare call needs beyond the
// document itself.
type Options struct {
	BaseURL    *url.URL
	Site       siteconfig.ConfigEntry
	Global     siteconfig.ConfigEntry
	KnownTitle string
}

// Prepare mutates doc in place following the ordered steps of §4.3.
// Order matters: later steps depend on earlier normalizations.
func Prepare(doc *domutil.Document, opts Options) failure.ClassifiedError {
	root := doc.Root()

	renameTag(root, "h1", "h2")
	removeTitleDuplicateHeadings(root, opts.KnownTitle)
	renameTag(root, "font", "span")
	markDataTables(root)

	if err := stripBySelectors(root, opts.Site.Strip); err != nil {
		return err
	}
	if err := stripBySelectors(root, opts.Global.Strip); err != nil {
		return err
	}

	stripIDOrClass(root, append(append([]string{}, opts.Site.StripIDOrClass...), opts.Global.StripIDOrClass...))
	stripImageSrc(root, append(append([]string{}, opts.Site.StripImageSrc...), opts.Global.StripImageSrc...))

	recoverNoscriptImages(root)
	removeAllOf(root, "noscript")

	repairLazyImages(root)
	wrapVideoIframes(root)

	removeAttrFromTag(root, "a", "onclick")
	removeAttrFromTag(root, "img", "decoding")
	removeAttrFromTag(root, "img", "loading")

	unlinkByClassToken(root, "entry-unrelated")
	unlinkByClassToken(root, "instapaper_ignore")

	unlinkDisplayNone(root)
	removeAttrEverywhere(root, "style")

	removeGlobalNoise(root)

	coalesceBreaks(root)

	if opts.BaseURL != nil {
		absolutizeURLs(root, opts.BaseURL)
	}

	return nil
}

func renameTag(root domutil.Node, from, to string) {
	domutil.Walk(root, func(n domutil.Node) {
		if n.Is(from) {
			n.Rename(to)
		}
	})
}

func removeTitleDuplicateHeadings(root domutil.Node, knownTitle string) {
	if knownTitle == "" {
		return
	}
	var toUnlink []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.Is("h2") && textSimilarity(knownTitle, strings.TrimSpace(n.Text())) > 0.75 {
			toUnlink = append(toUnlink, n)
		}
	})
	for _, n := range toUnlink {
		n.Unlink()
	}
}

func stripBySelectors(root domutil.Node, selectors []string) failure.ClassifiedError {
	if len(selectors) == 0 {
		return nil
	}
	var matches []domutil.Node
	for _, sel := range selectors {
		found, err := root.Select(sel)
		if err != nil {
			return err
		}
		matches = append(matches, found...)
	}
	unlinkUnlessVideoOrNested(matches)
	return nil
}

// unlinkUnlessVideoOrNested implements step 5's exceptions: a matched
// video element (OBJECT/EMBED/IFRAME with a recognized video-host
// attribute) survives, and a node whose ancestor is also in the match
// set is skipped (its ancestor's unlink already removes it).
func unlinkUnlessVideoOrNested(matches []domutil.Node) {
	rawSet := make(map[interface{}]bool, len(matches))
	for _, m := range matches {
		rawSet[m.Raw()] = true
	}

	hasMatchedAncestor := func(n domutil.Node) bool {
		for p := n.Parent(); !p.IsZero(); p = p.Parent() {
			if rawSet[p.Raw()] {
				return true
			}
		}
		return false
	}

	for _, n := range matches {
		if isVideoEmbed(n) {
			continue
		}
		if hasMatchedAncestor(n) {
			continue
		}
		n.Unlink()
	}
}

func isVideoEmbed(n domutil.Node) bool {
	if !n.IsAnyOf("object", "embed", "iframe") {
		return false
	}
	for _, a := range n.Attrs() {
		if textpattern.VideoHost.MatchString(a.Val) {
			return true
		}
	}
	return false
}

func stripIDOrClass(root domutil.Node, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	var matches []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if !n.IsElement() {
			return
		}
		for _, tok := range tokens {
			if n.ClassOrIDContains(tok) {
				matches = append(matches, n)
				return
			}
		}
	})
	unlinkSkippingNestedMatches(matches)
}

func unlinkSkippingNestedMatches(matches []domutil.Node) {
	rawSet := make(map[interface{}]bool, len(matches))
	for _, m := range matches {
		rawSet[m.Raw()] = true
	}
	for _, n := range matches {
		nested := false
		for p := n.Parent(); !p.IsZero(); p = p.Parent() {
			if rawSet[p.Raw()] {
				nested = true
				break
			}
		}
		if !nested {
			n.Unlink()
		}
	}
}

func stripImageSrc(root domutil.Node, substrings []string) {
	if len(substrings) == 0 {
		return
	}
	var matches []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if !n.Is("img") {
			return
		}
		src, _ := n.Attr("src")
		for _, sub := range substrings {
			if strings.Contains(src, sub) {
				matches = append(matches, n)
				return
			}
		}
	})
	for _, n := range matches {
		n.Unlink()
	}
}

func removeAllOf(root domutil.Node, tag string) {
	var matches []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.Is(tag) {
			matches = append(matches, n)
		}
	})
	for _, n := range matches {
		n.Unlink()
	}
}

func removeAttrFromTag(root domutil.Node, tag, attr string) {
	domutil.Walk(root, func(n domutil.Node) {
		if n.Is(tag) {
			n.RemoveAttr(attr)
		}
	})
}

func removeAttrEverywhere(root domutil.Node, attr string) {
	domutil.Walk(root, func(n domutil.Node) {
		if n.IsElement() {
			n.RemoveAttr(attr)
		}
	})
}

func unlinkByClassToken(root domutil.Node, token string) {
	var matches []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.IsElement() && n.HasClassToken(token) {
			matches = append(matches, n)
		}
	})
	for _, n := range matches {
		n.Unlink()
	}
}

func unlinkDisplayNone(root domutil.Node) {
	var matches []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if !n.IsElement() {
			return
		}
		style, ok := n.Attr("style")
		if !ok {
			return
		}
		compact := strings.ReplaceAll(strings.ToLower(style), " ", "")
		if strings.Contains(compact, "display:none") {
			matches = append(matches, n)
		}
	})
	for _, n := range matches {
		n.Unlink()
	}
}

// globalNoiseTags are unlinked unconditionally in step 15.
var globalNoiseTags = []string{
	"form", "input", "textarea", "select", "button",
	"script", "style", "iframe", "object", "embed",
	"footer", "link", "aside",
}

func removeGlobalNoise(root domutil.Node) {
	var matches []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.IsComment() {
			matches = append(matches, n)
			return
		}
		if !n.IsElement() {
			return
		}
		if n.IsAnyOf(globalNoiseTags...) {
			matches = append(matches, n)
			return
		}
		if n.Is("a") && len(n.ElementChildren()) == 0 && strings.TrimSpace(n.Text()) == "" {
			matches = append(matches, n)
			return
		}
		if t, ok := n.Attr("type"); ok && t == "text/css" {
			matches = append(matches, n)
		}
	})
	for _, n := range matches {
		n.Unlink()
	}
}

// textSimilarity implements the glossary definition:
// 1 − |uniq_tokens(B) − tokens(A)| / |tokens(B)|, tokens split on \W+,
// lowercased. Called as textSimilarity(base=title, other=heading) per
// DESIGN.md's resolved argument-order convention.
func textSimilarity(base, other string) float64 {
	baseTokens := tokenize(base)
	otherTokens := tokenize(other)
	if len(otherTokens) == 0 {
		return 0
	}
	baseSet := make(map[string]bool, len(baseTokens))
	for _, t := range baseTokens {
		baseSet[t] = true
	}
	seen := make(map[string]bool, len(otherTokens))
	missing := 0
	uniqOther := 0
	for _, t := range otherTokens {
		if seen[t] {
			continue
		}
		seen[t] = true
		uniqOther++
		if !baseSet[t] {
			missing++
		}
	}
	if uniqOther == 0 {
		return 0
	}
	return 1 - float64(missing)/float64(len(otherTokens))
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}
