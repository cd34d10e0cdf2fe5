package prepare

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/rijkvp/articlex/internal/domutil"
)

// urlBearingAttrs pairs each tag with the attribute whose value is a URL
// to be absolutized (§4.3.5).
var urlBearingAttrs = []struct {
	tag, attr string
}{
	{"img", "src"},
	{"a", "src"},
	{"a", "href"},
	{"object", "data"},
	{"iframe", "src"},
}

// srcsetEntryURL captures the URL portion of one comma-separated srcset
// entry ("URL [descriptor]").
var srcsetEntryURL = regexp.MustCompile(`^\s*(\S+)(.*)$`)

func absolutizeURLs(root domutil.Node, base *url.URL) {
	for _, pair := range urlBearingAttrs {
		var nodes []domutil.Node
		domutil.Walk(root, func(n domutil.Node) {
			if n.Is(pair.tag) {
				nodes = append(nodes, n)
			}
		})
		for _, n := range nodes {
			absolutizeAttr(n, pair.attr, base)
		}
	}
}

func absolutizeAttr(n domutil.Node, attr string, base *url.URL) {
	raw, ok := n.Attr(attr)
	if !ok {
		return
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return
	}
	if strings.HasPrefix(value, "#") {
		n.SetAttr(attr, value)
		return
	}

	if n.Is("a") {
		n.SetAttr("target", "_blank")
	}

	if strings.HasPrefix(strings.ToLower(value), "javascript:") {
		replaceJavascriptPseudoURL(n)
		return
	}

	if srcset, ok := n.Attr("srcset"); ok {
		n.SetAttr("srcset", rewriteSrcset(srcset, base))
	}

	resolved := resolveURL(value, base)
	n.SetAttr(attr, resolved)
}

func resolveURL(value string, base *url.URL) string {
	parsed, err := url.Parse(value)
	if err != nil {
		return value
	}
	if parsed.IsAbs() {
		return parsed.String()
	}
	if base == nil {
		return value
	}
	return base.ResolveReference(parsed).String()
}

func rewriteSrcset(srcset string, base *url.URL) string {
	entries := strings.Split(srcset, ",")
	for i, entry := range entries {
		m := srcsetEntryURL.FindStringSubmatch(entry)
		if m == nil {
			continue
		}
		resolved := resolveURL(m[1], base)
		entries[i] = resolved + m[2]
	}
	return strings.Join(entries, ",")
}

// replaceJavascriptPseudoURL replaces an element carrying a javascript:
// pseudo-URL with a bare text node (if it has a single text child) or a
// <span> wrapper around its children, per §4.3.5.
func replaceJavascriptPseudoURL(n domutil.Node) {
	children := n.Children()
	if len(children) == 1 && children[0].IsText() {
		text := domutil.NewText(children[0].Text())
		n.ReplaceWith(text)
		return
	}

	span := domutil.NewElement("span")
	n.ReplaceWith(span)
	for _, c := range children {
		c.Unlink()
		span.AppendChild(c)
	}
}
