package readability

import (
	"strings"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/pkg/failure"
)

// Result is the outcome of one successful or best-effort Extract call.
type Result struct {
	Container domutil.Node
	Byline    string
}

// Extract implements §4.5's retry loop. It is only invoked once the
// config-driven extractor (C4) found no body. root should already have
// gone through preparation (§4.3); Extract clones it per attempt so
// each relaxed retry starts from the same pristine input.
func Extract(original domutil.Node, opts Options) (Result, failure.ClassifiedError) {
	f := allFlags()

	var best Result
	bestLen := -1

	for {
		clone := original.Clone()
		wrapper := domutil.NewElement("div")
		wrapper.AppendChild(clone)

		var byline string
		preScan(wrapper, f, opts, &byline)

		candidates, scores := scoreCandidates(wrapper, f)
		top := topCandidates(candidates, scores, 5)
		if len(top) == 0 {
			if !f.disableNext() {
				break
			}
			continue
		}

		topCandidate, topScore := promoteTopCandidate(top, scores)
		container := buildSiblingContainer(topCandidate, topScore, scores)

		length := len(strings.TrimSpace(container.Text()))
		if length > bestLen {
			best = Result{Container: container, Byline: byline}
			bestLen = length
		}
		if length >= 500 {
			return best, nil
		}

		if !f.disableNext() {
			break
		}
	}

	return best, nil
}
