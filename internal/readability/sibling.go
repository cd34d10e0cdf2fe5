package readability

import (
	"math"
	"regexp"

	"golang.org/x/net/html"

	"github.com/rijkvp/articlex/internal/domutil"
)

// siblingContentPattern approximates a sentence ending, used to accept
// link-free <p> siblings that read like prose (§4.5.4).
var siblingContentPattern = regexp.MustCompile(`\.( |$)`)

var containerTagAllowlist = map[string]bool{"div": true, "article": true, "section": true, "p": true}

// buildSiblingContainer implements §4.5.4: gathers the promoted
// candidate's qualifying siblings into a fresh container, wrapped in
// <div id="readability-page-1">.
func buildSiblingContainer(topCandidate domutil.Node, topScore float64, scores map[*html.Node]float64) domutil.Node {
	page := domutil.NewElement("div")
	page.SetAttr("id", "readability-page-1")

	parent := topCandidate.Parent()
	if parent.IsZero() {
		clone := topCandidate.Clone()
		if !containerTagAllowlist[clone.TagName()] {
			clone.Rename("div")
		}
		page.AppendChild(clone)
		return page
	}

	threshold := math.Max(10, topScore*0.2)
	topClasses := topCandidate.ClassTokens()

	for _, sibling := range parent.ElementChildren() {
		include := sibling.Raw() == topCandidate.Raw()
		if !include {
			score := scores[sibling.Raw()]
			if isClassSubset(sibling.ClassTokens(), topClasses) {
				score += topScore * 0.2
			}
			if score >= threshold {
				include = true
			}
		}
		if !include && sibling.Is("p") {
			text := sibling.Text()
			if len(text) > 80 {
				ld := linkDensity(sibling)
				if ld < 0.25 || (ld == 0 && siblingContentPattern.MatchString(text)) {
					include = true
				}
			}
		}
		if !include {
			continue
		}

		clone := sibling.Clone()
		if !containerTagAllowlist[clone.TagName()] {
			clone.Rename("div")
		}
		page.AppendChild(clone)
	}

	return page
}

func isClassSubset(classes, of []string) bool {
	if len(classes) == 0 {
		return false
	}
	ofSet := make(map[string]bool, len(of))
	for _, c := range of {
		ofSet[c] = true
	}
	for _, c := range classes {
		if !ofSet[c] {
			return false
		}
	}
	return true
}
