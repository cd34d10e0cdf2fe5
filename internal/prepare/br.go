package prepare

import (
	"strings"

	"github.com/rijkvp/articlex/internal/domutil"
)

// phrasingTags are treated as phrasing content for the purposes of <br>
// coalescing and div-to-p promotion (§4.3.4, §4.5.1).
var phrasingTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "br": true,
	"cite": true, "code": true, "data": true, "del": true, "dfn": true,
	"em": true, "i": true, "ins": true, "kbd": true, "mark": true,
	"q": true, "s": true, "samp": true, "small": true, "span": true,
	"strong": true, "sub": true, "sup": true, "time": true, "u": true,
	"var": true, "wbr": true, "img": true, "button": true, "input": true,
	"label": true, "output": true, "select": true, "textarea": true,
}

func isPhrasingNode(n domutil.Node) bool {
	if n.IsText() {
		return true
	}
	if !n.IsElement() {
		return false
	}
	if phrasingTags[n.TagName()] {
		return true
	}
	for _, c := range n.Children() {
		if !isPhrasingNode(c) {
			return false
		}
	}
	return true
}

// coalesceBreaks implements §4.3.4: runs of two-or-more <br> (tolerating
// intervening whitespace text) become a <p> absorbing the following
// phrasing-content run.
func coalesceBreaks(root domutil.Node) {
	var brs []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.Is("br") {
			brs = append(brs, n)
		}
	})

	processed := make(map[interface{}]bool)

	for _, br := range brs {
		if processed[br.Raw()] {
			continue
		}
		parent := br.Parent()
		if parent.IsZero() {
			continue
		}

		count := 1
		cursor := br.NextSibling()
		var run []domutil.Node
		for !cursor.IsZero() {
			if cursor.Is("br") {
				count++
				run = append(run, cursor)
				cursor = cursor.NextSibling()
				continue
			}
			if cursor.IsText() && strings.TrimSpace(cursor.Text()) == "" {
				run = append(run, cursor)
				cursor = cursor.NextSibling()
				continue
			}
			break
		}

		if count < 2 {
			continue
		}
		for _, r := range run {
			processed[r.Raw()] = true
		}

		p := domutil.NewElement("p")
		parent.InsertBefore(p, br)
		br.Unlink()
		for _, r := range run {
			r.Unlink()
		}

		// absorb subsequent phrasing content up to the next <br><br> run
		// or a non-phrasing element.
		for {
			next := p.NextSibling()
			if next.IsZero() {
				break
			}
			if next.Is("br") {
				afterBr := next.NextSibling()
				if !afterBr.IsZero() && afterBr.Is("br") {
					break
				}
			}
			if !isPhrasingNode(next) {
				break
			}
			next.Unlink()
			p.AppendChild(next)
		}

		trimTrailingWhitespaceChildren(p)

		if len(p.Children()) == 0 {
			p.Unlink()
			continue
		}

		if p.Parent().Is("p") {
			p.Parent().Rename("div")
		}
	}
}

func trimTrailingWhitespaceChildren(p domutil.Node) {
	children := p.Children()
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		if c.IsText() && strings.TrimSpace(c.Text()) == "" {
			c.Unlink()
			continue
		}
		break
	}
}
