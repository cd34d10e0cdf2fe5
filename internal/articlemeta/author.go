package articlemeta

import (
	"html"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/siteconfig"
)

var authorMetaNames = []string{"dc:creator", "dcterm:creator"}

// ResolveAuthor implements §4.7's author chain: site, then global
// selectors, then meta-tag fallbacks.
func ResolveAuthor(doc *domutil.Document, cfg siteconfig.ConfigEntry) string {
	if v := firstSelectorText(doc, cfg.Author); v != "" {
		return html.UnescapeString(v)
	}
	for _, name := range authorMetaNames {
		if v := metaContent(doc, name); v != "" {
			return html.UnescapeString(v)
		}
	}
	return ""
}
