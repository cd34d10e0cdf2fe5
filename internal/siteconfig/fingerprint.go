package siteconfig

import "regexp"

// fingerprintRule maps a raw-HTML regex to a synthetic host whose config
// entry should be used when no host-keyed entry matches. Grounded on
// original_source/.../fingerprints.rs.
type fingerprintRule struct {
	pattern *regexp.Regexp
	host    string
}

// fingerprintTable is ordered, not a map, so every rule — including a
// duplicate host mapped from two different patterns — is reachable and
// evaluated in declaration order; first match wins (DESIGN.md Open
// Question 3).
var fingerprintTable = []fingerprintRule{
	{regexp.MustCompile(`(?i)<meta\s+name="generator"\s+content="WordPress`), "wordpress.com"},
	{regexp.MustCompile(`(?i)<meta\s+name="generator"\s+content="Blogger"`), "blogspot.com"},
	{regexp.MustCompile(`(?i)blogspot\.com/feeds`), "blogspot.com"},
	{regexp.MustCompile(`(?i)<meta\s+name="generator"\s+content="Ghost`), "ghost.org"},
}

// matchFingerprint returns the synthetic host for the first matching
// rule, or "" if none match.
func matchFingerprint(rawHTML []byte) string {
	for _, rule := range fingerprintTable {
		if rule.pattern.Match(rawHTML) {
			return rule.host
		}
	}
	return ""
}
