package siteconfig

import (
	"bufio"
	"io"
	"strings"

	"github.com/rijkvp/articlex/pkg/failure"
)

// ignoredDirectives carries forward-compatibility: unrecognized or
// intentionally-unused directives are silently skipped.
var ignoredDirectives = map[string]bool{
	"tidy":                  true,
	"prune":                 true,
	"test_url":              true,
	"autodetect_on_failure": true,
}

// ParseConfigEntry parses a single line-oriented config source (§4.2).
func ParseConfigEntry(r io.Reader) (ConfigEntry, failure.ClassifiedError) {
	var entry ConfigEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pendingFind string
	hasPendingFind := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if hasPendingFind {
			hasPendingFind = false
			if directive, value, ok := splitDirective(line); ok && directive == "replace_string" {
				entry.FindReplace = append(entry.FindReplace, FindReplace{Find: pendingFind, Replace: value})
				continue
			}
		}

		directive, value, ok := splitDirective(line)
		if !ok {
			continue
		}

		switch {
		case directive == "title":
			entry.Title = append(entry.Title, splitMultiValue(value)...)
		case directive == "author":
			entry.Author = append(entry.Author, splitMultiValue(value)...)
		case directive == "date":
			entry.Date = append(entry.Date, splitMultiValue(value)...)
		case directive == "body":
			entry.Body = append(entry.Body, splitMultiValue(value)...)
		case directive == "strip":
			entry.Strip = append(entry.Strip, value)
		case directive == "strip_id_or_class":
			entry.StripIDOrClass = append(entry.StripIDOrClass, value)
		case directive == "strip_image_src":
			entry.StripImageSrc = append(entry.StripImageSrc, value)
		case directive == "single_page_link":
			entry.SinglePageLink = value
		case directive == "next_page_link":
			entry.NextPageLink = value
		case directive == "find_string":
			pendingFind = value
			hasPendingFind = true
		case strings.HasPrefix(directive, "replace_string("):
			find := directiveArg(directive, "replace_string(")
			entry.FindReplace = append(entry.FindReplace, FindReplace{Find: find, Replace: value})
		case strings.HasPrefix(directive, "http_header("):
			name := directiveArg(directive, "http_header(")
			entry.Headers = append(entry.Headers, Header{Name: name, Value: value})
		case ignoredDirectives[directive]:
			// forward-compatible no-op
		default:
			// unrecognized directive; ignored per §6 stability note
		}
	}

	if err := scanner.Err(); err != nil {
		return ConfigEntry{}, failure.NewScrapeError(failure.KindIO, "failed to read config source", err)
	}

	return entry, nil
}

// splitDirective splits "directive: value" into its two parts. Directives
// are colon-terminated; value is the rest of the line, trimmed and
// truncated at the first inline `#` comment.
func splitDirective(line string) (directive, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), extractValue(line[idx+1:]), true
}

// extractValue trims whitespace and truncates at the first `#` (inline
// comment), per §4.2 and the original's str_extract_value.
func extractValue(raw string) string {
	value := strings.TrimSpace(raw)
	if pos := strings.IndexByte(value, '#'); pos >= 0 {
		value = strings.TrimSpace(value[:pos])
	}
	return value
}

// directiveArg extracts the A in "name(A)" from a directive with the
// given prefix already confirmed present.
func directiveArg(directive, prefix string) string {
	rest := strings.TrimPrefix(directive, prefix)
	return strings.TrimSuffix(rest, ")")
}

// splitMultiValue splits a `|`-delimited value into trimmed, non-empty
// parts. A single value with no `|` returns a one-element slice.
func splitMultiValue(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateHasGlobal is a defensive check used by NewCollection — a missing
// global.txt is a hard KindConfig failure per §7.
func validateHasGlobal(found bool) failure.ClassifiedError {
	if found {
		return nil
	}
	return failure.NewScrapeError(failure.KindConfig, "global.txt is mandatory and was not found", nil)
}
