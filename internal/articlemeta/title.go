package articlemeta

import (
	"html"
	"regexp"
	"strings"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/siteconfig"
)

var titleMetaNames = []string{
	"dc:title", "dcterm:title", "og:title", "weibo:article:title", "weibo:webpage:title", "twitter:title",
}

// titleSeparator splits a "Headline - Site Name" style title into
// prefix/suffix halves.
var titleSeparator = regexp.MustCompile(`\s*[-|/>»]\s*`)

// ResolveTitle implements §4.7's title chain: site selectors, global
// selectors, <title>, then meta-tag fallbacks, each HTML-decoded and
// passed through separator splitting.
func ResolveTitle(doc *domutil.Document, cfg siteconfig.ConfigEntry) string {
	if v := firstSelectorText(doc, cfg.Title); v != "" {
		return splitTitle(html.UnescapeString(v))
	}
	if titles, err := doc.Select("title"); err == nil && len(titles) > 0 {
		if text := strings.TrimSpace(titles[0].Text()); text != "" {
			return splitTitle(html.UnescapeString(text))
		}
	}
	for _, name := range titleMetaNames {
		if v := metaContent(doc, name); v != "" {
			return splitTitle(html.UnescapeString(v))
		}
	}
	return ""
}

func firstSelectorText(doc *domutil.Document, selectors []string) string {
	for _, sel := range selectors {
		nodes, err := doc.Select(sel)
		if err != nil || len(nodes) == 0 {
			continue
		}
		if text := strings.TrimSpace(nodes[0].Text()); text != "" {
			return text
		}
	}
	return ""
}

func metaContent(doc *domutil.Document, name string) string {
	nodes, err := doc.Select(`meta[name="` + name + `"], meta[property="` + name + `"]`)
	if err != nil || len(nodes) == 0 {
		return ""
	}
	v, _ := nodes[0].Attr("content")
	return strings.TrimSpace(v)
}

// splitTitle applies the separator rule: if the title contains a
// separator, prefer the prefix half unless it is fewer than 3 words,
// in which case the suffix is used instead.
func splitTitle(title string) string {
	parts := titleSeparator.Split(title, 2)
	if len(parts) != 2 {
		return strings.TrimSpace(title)
	}
	prefix := strings.TrimSpace(parts[0])
	suffix := strings.TrimSpace(parts[1])
	if len(strings.Fields(prefix)) < 3 {
		return suffix
	}
	return prefix
}
