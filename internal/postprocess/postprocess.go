// Package postprocess is the post-processing stage (C6): it operates on
// a chosen article body, removing low-quality headers, conditionally
// cleaning tables/lists/divs, collapsing single-cell tables, dropping
// empty containers, flattening redundant wrappers, and stripping
// presentational attributes.
package postprocess

import (
	"strings"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/textpattern"
)

// emptyTagAllowlist lists void-ish tags kept even when they'd otherwise
// be considered empty (step 9).
var emptyTagAllowlist = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true,
	"area": true, "base": true, "col": true, "embed": true,
	"source": true, "track": true, "wbr": true,
}

// Apply runs the full post-processing pipeline over subtree root.
func Apply(root domutil.Node) {
	cleanLowQualityHeaders(root)
	replaceSchemaOrgObjects(root)
	cleanConditionally(root, "fieldset", "table", "ul", "div")
	removeShareWidgets(root)
	cleanAttributes(root)
	simplifyNestedElements(root)
	collapseSingleCellTables(root)
	removeExtraEmptyContainers(root)
	removeEmptyNodes(root)
}

// classWeight mirrors the glossary's Class weight computation, applied
// independently to class and id.
func classWeight(n domutil.Node) int {
	weight := 0
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

// step 1: clean headers
func cleanLowQualityHeaders(root domutil.Node) {
	var toUnlink []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.IsAnyOf("h1", "h2") && classWeight(n) < 0 {
			toUnlink = append(toUnlink, n)
		}
	})
	for _, n := range toUnlink {
		n.Unlink()
	}
}

// step 4: share widgets
func removeShareWidgets(root domutil.Node) {
	var toUnlink []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if !n.IsElement() {
			return
		}
		class, _ := n.Attr("class")
		id, _ := n.Attr("id")
		combined := class + " " + id
		if textpattern.ShareElements.MatchString(combined) && len(strings.TrimSpace(n.Text())) < 500 {
			toUnlink = append(toUnlink, n)
		}
	})
	for _, n := range toUnlink {
		n.Unlink()
	}
}

// presentationalAttrs are stripped from every node (step 5).
var presentationalAttrs = []string{"style", "align", "bgcolor", "border", "cellpadding", "cellspacing", "valign"}

// reservedAttrs are the scoring/marking annotations removed at the end
// of the pipeline.
var reservedAttrs = []string{"class", "align", "data-content-score", "data-is-data-table"}

func cleanAttributes(root domutil.Node) {
	domutil.Walk(root, func(n domutil.Node) {
		if !n.IsElement() {
			return
		}
		for _, a := range presentationalAttrs {
			n.RemoveAttr(a)
		}
		if n.IsAnyOf("table", "th", "td", "hr", "pre") {
			n.RemoveAttr("width")
			n.RemoveAttr("height")
		}
		for _, a := range reservedAttrs {
			n.RemoveAttr(a)
		}
	})
}

// step 6: simplify nested elements
func simplifyNestedElements(root domutil.Node) {
	var work []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		work = append(work, n)
	})
	for i := len(work) - 1; i >= 0; i-- {
		n := work[i]
		if n.Is("article") || n.Parent().IsZero() {
			continue
		}
		if n.IsAnyOf("div", "section") && n.IsEmpty() {
			n.Unlink()
			continue
		}
		children := n.ElementChildren()
		if len(children) == 1 && children[0].IsAnyOf("div", "section") {
			only := children[0]
			for _, a := range n.Attrs() {
				only.SetAttr(a.Key, a.Val)
			}
			n.ReplaceWith(only)
		}
	}
}

// step 7: collapse single-cell tables
func collapseSingleCellTables(root domutil.Node) {
	var tables []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.Is("table") {
			tables = append(tables, n)
		}
	})
	for _, t := range tables {
		cell := singleCellOf(t)
		if cell.IsZero() {
			continue
		}
		tag := "div"
		if allChildrenPhrasing(cell) {
			tag = "p"
		}
		cell.Rename(tag)
		t.ReplaceWith(cell)
	}
}

func singleCellOf(table domutil.Node) domutil.Node {
	bodies := childrenOfTag(table, "tbody")
	var rows []domutil.Node
	if len(bodies) == 1 {
		rows = childrenOfTag(bodies[0], "tr")
	} else {
		rows = childrenOfTag(table, "tr")
	}
	if len(rows) != 1 {
		return domutil.Node{}
	}
	cells := childrenOfTagAnyOf(rows[0], "td", "th")
	if len(cells) != 1 {
		return domutil.Node{}
	}
	cells[0].Unlink()
	return cells[0]
}

func childrenOfTag(n domutil.Node, tag string) []domutil.Node {
	var out []domutil.Node
	for _, c := range n.ElementChildren() {
		if c.Is(tag) {
			out = append(out, c)
		}
	}
	return out
}

func childrenOfTagAnyOf(n domutil.Node, tags ...string) []domutil.Node {
	var out []domutil.Node
	for _, c := range n.ElementChildren() {
		if c.IsAnyOf(tags...) {
			out = append(out, c)
		}
	}
	return out
}

func allChildrenPhrasing(n domutil.Node) bool {
	for _, c := range n.Children() {
		if c.IsText() {
			continue
		}
		if !c.IsElement() {
			continue
		}
		if !isPhrasingTag(c.TagName()) {
			return false
		}
	}
	return true
}

var phrasingTagSet = map[string]bool{
	"a": true, "abbr": true, "b": true, "br": true, "cite": true, "code": true,
	"em": true, "i": true, "img": true, "mark": true, "q": true, "s": true,
	"small": true, "span": true, "strong": true, "sub": true, "sup": true,
	"time": true, "u": true,
}

func isPhrasingTag(tag string) bool {
	return phrasingTagSet[tag]
}

// step 8 + 9: remove extra empty <p>/<div> and remaining empty nodes.
func removeExtraEmptyContainers(root domutil.Node) {
	var toUnlink []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if !n.IsAnyOf("p", "div") {
			return
		}
		if hasMediaDescendant(n) {
			return
		}
		if strings.TrimSpace(n.Text()) != "" {
			return
		}
		toUnlink = append(toUnlink, n)
	})
	for _, n := range toUnlink {
		n.Unlink()
	}
}

func hasMediaDescendant(n domutil.Node) bool {
	found := false
	domutil.Walk(n, func(c domutil.Node) {
		if c.IsAnyOf("img", "embed", "object", "iframe") {
			found = true
		}
	})
	return found
}

func removeEmptyNodes(root domutil.Node) {
	var work []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		work = append(work, n)
	})
	for i := len(work) - 1; i >= 0; i-- {
		n := work[i]
		if !n.IsElement() || n.Parent().IsZero() {
			continue
		}
		if emptyTagAllowlist[n.TagName()] {
			continue
		}
		if n.IsEmpty() {
			n.Unlink()
		}
	}
}
