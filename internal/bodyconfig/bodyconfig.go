// Package bodyconfig is the config-driven body extractor (C4): it applies
// the effective body selector list against a prepared document and moves
// matched subtrees into a fresh output root.
package bodyconfig

import (
	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/postprocess"
	"github.com/rijkvp/articlex/pkg/failure"
)

// Extract evaluates selectors (site then global, in order) against root.
// Each matched node has its style attribute removed, is post-processed,
// detached, and appended to output in selector order. Returns true iff at
// least one node was appended.
func Extract(root domutil.Node, selectors []string, output domutil.Node) (bool, failure.ClassifiedError) {
	appended := false
	for _, selector := range selectors {
		matches, err := root.Select(selector)
		if err != nil {
			return appended, err
		}
		for _, m := range matches {
			m.RemoveAttr("style")
			postprocess.Apply(m)
			m.Unlink()
			output.AppendChild(m)
			appended = true
		}
	}
	return appended, nil
}
