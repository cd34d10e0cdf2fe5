package readability

import (
	"golang.org/x/net/html"

	"github.com/rijkvp/articlex/internal/domutil"
)

// promoteTopCandidate implements §4.5.3.
func promoteTopCandidate(top []scoredNode, scores map[*html.Node]float64) (domutil.Node, float64) {
	if len(top) == 0 {
		return domutil.Node{}, 0
	}
	leader := top[0]
	candidate := leader.node
	topScore := leader.score

	if shared := sharedAncestorOfMajority(top, scores, topScore); !shared.IsZero() {
		candidate = shared
		if s, ok := scores[shared.Raw()]; ok {
			topScore = s
		}
	}

	lastScore := scores[candidate.Raw()]
	floor := topScore / 3
	cursor := candidate.Parent()
	for !cursor.IsZero() {
		parentScore, ok := scores[cursor.Raw()]
		if !ok {
			cursor = cursor.Parent()
			continue
		}
		if parentScore > lastScore && parentScore > floor {
			candidate = cursor
			lastScore = parentScore
			cursor = cursor.Parent()
			continue
		}
		break
	}

	if parent := candidate.Parent(); !parent.IsZero() && len(parent.ElementChildren()) == 1 {
		candidate = parent
	}

	return candidate, topScore
}

// sharedAncestorOfMajority looks for an ancestor (within 3 levels) shared
// by at least 3 of the top candidates whose own score is within 75% of
// the leader's score.
func sharedAncestorOfMajority(top []scoredNode, scores map[*html.Node]float64, topScore float64) domutil.Node {
	counts := make(map[*html.Node]int)
	var order []domutil.Node
	seen := make(map[*html.Node]bool)

	for _, t := range top {
		anc := t.node
		for depth := 0; depth < 3; depth++ {
			anc = anc.Parent()
			if anc.IsZero() {
				break
			}
			counts[anc.Raw()]++
			if !seen[anc.Raw()] {
				seen[anc.Raw()] = true
				order = append(order, anc)
			}
		}
	}

	threshold := topScore * 0.75
	for _, anc := range order {
		if counts[anc.Raw()] < 3 {
			continue
		}
		if s, ok := scores[anc.Raw()]; ok && s >= threshold {
			return anc
		}
	}
	return domutil.Node{}
}
