package prepare

import (
	"strconv"

	"github.com/rijkvp/articlex/internal/domutil"
)

// IsDataTableAttr is the reserved annotation attribute set by
// markDataTables and read by postprocess's conditional cleaning.
const IsDataTableAttr = "data-is-data-table"

// markDataTables implements §4.3.1: annotate every <table> with whether
// it looks like tabular data (kept through conditional cleaning) or a
// layout table (removable like any other low-value container).
func markDataTables(root domutil.Node) {
	var tables []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.Is("table") {
			tables = append(tables, n)
		}
	})
	for _, t := range tables {
		t.SetAttr(IsDataTableAttr, boolStr(isDataTable(t)))
	}
}

func isDataTable(t domutil.Node) bool {
	if role, ok := t.Attr("role"); ok && role == "presentation" {
		return false
	}
	if dt, ok := t.Attr("datatable"); ok && dt == "0" {
		return false
	}
	if _, ok := t.Attr("summary"); ok {
		return true
	}
	if caption := firstDescendant(t, "caption"); !caption.IsZero() && len(caption.Children()) > 0 {
		return true
	}
	if hasDescendantAnyOf(t, "col", "colgroup", "tfoot", "thead", "th") {
		return true
	}
	if hasDescendantAnyOf(t, "table") {
		return false
	}

	rows := rowCount(t)
	cols := columnCount(t)
	if rows >= 10 || cols > 4 {
		return true
	}
	return rows*cols > 10
}

func firstDescendant(root domutil.Node, tag string) domutil.Node {
	var found domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if !found.IsZero() {
			return
		}
		if n.Is(tag) {
			found = n
		}
	})
	return found
}

func hasDescendantAnyOf(root domutil.Node, tags ...string) bool {
	found := false
	domutil.Walk(root, func(n domutil.Node) {
		if found || n.Raw() == root.Raw() {
			return
		}
		if n.IsAnyOf(tags...) {
			found = true
		}
	})
	return found
}

// rowCount sums rowspan attributes across <tr> elements.
func rowCount(t domutil.Node) int {
	total := 0
	domutil.Walk(t, func(n domutil.Node) {
		if !n.Is("tr") {
			return
		}
		total += rowspanOf(n)
	})
	return total
}

func rowspanOf(tr domutil.Node) int {
	max := 1
	for _, c := range tr.ElementChildren() {
		if !c.IsAnyOf("td", "th") {
			continue
		}
		if v, ok := c.Attr("rowspan"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > max {
				max = n
			}
		}
	}
	return max
}

// columnCount is the max over rows of summed colspans, counting both
// <td> and <th> cells per DESIGN.md Open Question 7.
func columnCount(t domutil.Node) int {
	max := 0
	domutil.Walk(t, func(n domutil.Node) {
		if !n.Is("tr") {
			return
		}
		sum := 0
		for _, c := range n.ElementChildren() {
			if !c.IsAnyOf("td", "th") {
				continue
			}
			span := 1
			if v, ok := c.Attr("colspan"); ok {
				if parsed, err := strconv.Atoi(v); err == nil {
					span = parsed
				}
			}
			sum += span
		}
		if sum > max {
			max = sum
		}
	})
	return max
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
