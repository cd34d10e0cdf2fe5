package articlemeta

import (
	"strings"
	"time"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/siteconfig"
)

// dateLayouts are tried in order; RFC 3339 covers most ISO 8601 output,
// the rest handle common date-only and space-separated variants seen in
// publisher markup.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ResolveDate implements §4.7's date chain: site then global selectors,
// parsed as RFC 3339/ISO 8601. Unparsable or missing values leave the
// result nil rather than erroring.
func ResolveDate(doc *domutil.Document, cfg siteconfig.ConfigEntry) *time.Time {
	raw := firstSelectorDate(doc, cfg.Date)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func firstSelectorDate(doc *domutil.Document, selectors []string) string {
	for _, sel := range selectors {
		nodes, err := doc.Select(sel)
		if err != nil || len(nodes) == 0 {
			continue
		}
		n := nodes[0]
		if v, ok := n.Attr("datetime"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		if v, ok := n.Attr("content"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		if text := strings.TrimSpace(n.Text()); text != "" {
			return text
		}
	}
	return ""
}
