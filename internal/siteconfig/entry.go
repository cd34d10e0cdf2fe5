// Package siteconfig is the configuration model (C2): an in-memory record
// per host with selector lists, strip rules, literal find/replace pairs,
// header overrides, and pagination selectors, built by a line-oriented
// text parser and served from an embedded-default + user-directory
// Collection.
package siteconfig

// FindReplace is one literal find/replace pair read from a config source.
// The pairs are parsed and merged, but no stage of the extraction pipeline
// applies them to the HTML.
type FindReplace struct {
	Find    string
	Replace string
}

// Header is one HTTP header name/value override.
type Header struct {
	Name  string
	Value string
}

// ConfigEntry holds every directive recognized from a single config
// source. All lists may be empty; an entry is valid even with no body
// selectors (callers then rely on the readability fallback).
type ConfigEntry struct {
	Title             []string
	Author            []string
	Date              []string
	Body              []string
	Strip             []string
	StripIDOrClass    []string
	StripImageSrc     []string
	FindReplace       []FindReplace
	Headers           []Header
	SinglePageLink    string
	NextPageLink      string
}

// Merge returns a new ConfigEntry with site-specific values taking
// precedence for single-valued fields and with list fields unioned
// (site first, then global), per §3's "two entries may apply" rule.
func Merge(site, global ConfigEntry) ConfigEntry {
	merged := ConfigEntry{
		Title:          union(site.Title, global.Title),
		Author:         union(site.Author, global.Author),
		Date:           union(site.Date, global.Date),
		Body:           union(site.Body, global.Body),
		Strip:          union(site.Strip, global.Strip),
		StripIDOrClass: union(site.StripIDOrClass, global.StripIDOrClass),
		StripImageSrc:  union(site.StripImageSrc, global.StripImageSrc),
		FindReplace:    append(append([]FindReplace{}, site.FindReplace...), global.FindReplace...),
		SinglePageLink: site.SinglePageLink,
		NextPageLink:   site.NextPageLink,
	}
	if merged.SinglePageLink == "" {
		merged.SinglePageLink = global.SinglePageLink
	}
	if merged.NextPageLink == "" {
		merged.NextPageLink = global.NextPageLink
	}
	merged.Headers = mergeHeaders(site.Headers, global.Headers)
	return merged
}

func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// mergeHeaders merges site headers over global headers: a global header
// whose name is also present in site is dropped (site wins), resolving
// DESIGN.md Open Question 6.
func mergeHeaders(site, global []Header) []Header {
	out := make([]Header, 0, len(site)+len(global))
	seen := make(map[string]bool, len(site))
	for _, h := range site {
		seen[h.Name] = true
		out = append(out, h)
	}
	for _, h := range global {
		if !seen[h.Name] {
			out = append(out, h)
		}
	}
	return out
}
