package postprocess

import "github.com/rijkvp/articlex/internal/domutil"

// replaceSchemaOrgObjects implements §4.6 step 2: divs carrying
// itemtype=schema.org/VideoObject or ImageObject are collapsed to the
// single <img>/<video>/<iframe> they describe, discarding the
// surrounding microdata wrapper.
func replaceSchemaOrgObjects(root domutil.Node) {
	var candidates []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if !n.IsElement() {
			return
		}
		itemtype, ok := n.Attr("itemtype")
		if !ok {
			return
		}
		if schemaObjectKind(itemtype) != "" {
			candidates = append(candidates, n)
		}
	})

	for _, n := range candidates {
		media := firstMediaDescendant(n)
		if media.IsZero() {
			continue
		}
		media.Unlink()
		n.ReplaceWith(media)
	}
}

func schemaObjectKind(itemtype string) string {
	switch itemtype {
	case "http://schema.org/VideoObject", "https://schema.org/VideoObject":
		return "video"
	case "http://schema.org/ImageObject", "https://schema.org/ImageObject":
		return "image"
	default:
		return ""
	}
}

func firstMediaDescendant(n domutil.Node) domutil.Node {
	var found domutil.Node
	domutil.Walk(n, func(c domutil.Node) {
		if !found.IsZero() {
			return
		}
		if c.IsAnyOf("img", "video", "iframe") {
			found = c
		}
	})
	return found
}
