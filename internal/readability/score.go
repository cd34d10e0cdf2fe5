package readability

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/textpattern"
)

type scoredNode struct {
	node  domutil.Node
	score float64
}

func tagBase(tag string) float64 {
	switch tag {
	case "div":
		return 5
	case "pre", "td", "blockquote":
		return 3
	case "address", "ol", "ul", "dl", "dd", "dt", "li", "form":
		return -3
	case "h1", "h2", "h3", "h4", "h5", "h6", "th":
		return -5
	default:
		return 0
	}
}

func classIDWeight(n domutil.Node, f flags) float64 {
	if !f.weighClasses {
		return 0
	}
	weight := 0.0
	class, _ := n.Attr("class")
	id, _ := n.Attr("id")
	if textpattern.Positive.MatchString(class) {
		weight += 25
	}
	if textpattern.Negative.MatchString(class) {
		weight -= 25
	}
	if textpattern.Positive.MatchString(id) {
		weight += 25
	}
	if textpattern.Negative.MatchString(id) {
		weight -= 25
	}
	return weight
}

// scoreCandidates implements §4.5.2: it walks the prescanned tree,
// distributing each scorable node's contentScore across up to 5
// ancestors, and returns the set of ancestors that ended up with a
// score plus the raw score table keyed by the underlying html.Node.
func scoreCandidates(root domutil.Node, f flags) ([]domutil.Node, map[*html.Node]float64) {
	scores := make(map[*html.Node]float64)
	var initialized []domutil.Node

	initialize := func(n domutil.Node) {
		if _, ok := scores[n.Raw()]; ok {
			return
		}
		scores[n.Raw()] = tagBase(n.TagName()) + classIDWeight(n, f)
		initialized = append(initialized, n)
	}

	var scoreNodes []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.IsAnyOf(candidateTags...) {
			scoreNodes = append(scoreNodes, n)
		}
	})

	for _, node := range scoreNodes {
		text := strings.TrimSpace(node.Text())
		if len(text) < 25 {
			continue
		}
		commas := strings.Count(text, ",")
		contentScore := 1.0 + float64(commas) + math.Min(3, math.Floor(float64(len(text))/100))

		var ancestors []domutil.Node
		cur := node
		for i := 0; i < 5; i++ {
			cur = cur.Parent()
			if cur.IsZero() {
				break
			}
			ancestors = append(ancestors, cur)
		}

		for level, ancestor := range ancestors {
			if ancestor.Parent().IsZero() {
				continue
			}
			initialize(ancestor)
			var divider float64
			switch level {
			case 0:
				divider = 1
			case 1:
				divider = 2
			default:
				divider = float64(level) * 3
			}
			scores[ancestor.Raw()] += contentScore / divider
		}
	}

	return initialized, scores
}

// topCandidates returns the n highest-scoring nodes after applying the
// (1 - link_density) penalty.
func topCandidates(candidates []domutil.Node, scores map[*html.Node]float64, n int) []scoredNode {
	scored := make([]scoredNode, 0, len(candidates))
	for _, c := range candidates {
		final := scores[c.Raw()] * (1 - linkDensity(c))
		scored = append(scored, scoredNode{node: c, score: final})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}
