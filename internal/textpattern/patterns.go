// Package textpattern holds the regex constants shared by the
// preparation, readability, post-processing, and metadata components —
// the class/id/role heuristics a readability-style scorer depends on.
// Grounded on original_source's constants module (Rust regex literals),
// translated to Go's RE2 syntax.
package textpattern

import "regexp"

var (
	Unlikely = regexp.MustCompile(`(?i)-ad-|ai2html|banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|footer|gdpr|header|legends|menu|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-remote`)

	MaybeCandidate = regexp.MustCompile(`(?i)and|article|body|column|content|main|shadow`)

	Positive = regexp.MustCompile(`(?i)article|body|content|entry|hentry|h-entry|main|page|pagination|post|text|blog|story`)

	Negative = regexp.MustCompile(`(?i)-ad-|hidden|^hid$|\bhid\b|banner|combx|comment|com-|contact|foot|footer|footnote|gdpr|masthead|media|meta|outbrain|promo|related|scroll|share|shoutbox|sidebar|skyscraper|sponsor|shopping|tags|tool|widget`)

	Byline = regexp.MustCompile(`(?i)byline|author|dateline|writtenby|p-author`)

	VideoHost = regexp.MustCompile(`(?i)//(www\.)?(youtube(-nocookie)?\.com|youtu\.be|vimeo\.com|dailymotion\.com|v\.qq\.com|player\.twitch\.tv|archive\.org|upload\.wikimedia\.org)`)

	ShareElements = regexp.MustCompile(`(?i)share|sharedaddy`)

	HashURL = regexp.MustCompile(`^#.+`)

	UnlikelyRoles = map[string]bool{
		"menu":          true,
		"menubar":       true,
		"complementary": true,
		"navigation":    true,
		"alert":         true,
		"alertdialog":   true,
		"dialog":        true,
	}
)
