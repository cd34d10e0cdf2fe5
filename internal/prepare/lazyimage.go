package prepare

import (
	"regexp"
	"strings"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/textpattern"
)

const maxInlineBase64SrcLen = 133 // 7-byte "base64," prefix + <=126 bytes of payload

var (
	srcsetCandidatePattern = regexp.MustCompile(`(?i)\.(jpe?g|png|webp)\s+\d`)
	srcCandidatePattern    = regexp.MustCompile(`(?i)^\s*\S+\.(jpe?g|png|webp)\S*\s*$`)
)

// repairLazyImages implements §4.3.3 over <img>, <picture>, <figure>.
func repairLazyImages(root domutil.Node) {
	var targets []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.IsAnyOf("img", "picture", "figure") {
			targets = append(targets, n)
		}
	})

	for _, n := range targets {
		dropTinyBase64Src(n)
		if needsLazyRepair(n) {
			promoteLazyAttrs(n)
		}
		if n.Is("figure") {
			ensureFigureHasImage(n)
		}
	}
}

func dropTinyBase64Src(n domutil.Node) {
	src, ok := n.Attr("src")
	if !ok || !strings.HasPrefix(src, "data:image") || !strings.Contains(src, "base64,") {
		return
	}
	if len(src) >= maxInlineBase64SrcLen {
		return
	}
	if attrsContainImageExt(n) {
		n.RemoveAttr("src")
	}
}

func needsLazyRepair(n domutil.Node) bool {
	_, hasSrc := n.Attr("src")
	_, hasSrcset := n.Attr("srcset")
	if !hasSrc && !hasSrcset {
		return true
	}
	return n.HasClassToken("lazy")
}

func promoteLazyAttrs(n domutil.Node) {
	for _, a := range n.Attrs() {
		if a.Key == "src" || a.Key == "srcset" {
			continue
		}
		if srcsetCandidatePattern.MatchString(a.Val) {
			n.SetAttr("srcset", a.Val)
		} else if srcCandidatePattern.MatchString(a.Val) {
			n.SetAttr("src", a.Val)
		}
	}
}

func ensureFigureHasImage(figure domutil.Node) {
	if !firstDescendant(figure, "img").IsZero() {
		return
	}
	if !firstDescendant(figure, "picture").IsZero() {
		return
	}
	img := domutil.NewElement("img")
	figure.AppendChild(img)
}

// wrapVideoIframes implements step 11: a recognized video-host <iframe>
// is wrapped in a <div class="videoWrapper"> with explicit dimensions;
// other iframes fall through to step 15's unconditional removal.
func wrapVideoIframes(root domutil.Node) {
	var iframes []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.Is("iframe") {
			iframes = append(iframes, n)
		}
	})

	for _, iframe := range iframes {
		src, _ := iframe.Attr("src")
		if !isVideoSrc(src) {
			continue
		}

		wrapper := domutil.NewElement("div")
		wrapper.SetAttr("class", "videoWrapper")
		width := iframe.AttrOr("width", "640")
		height := iframe.AttrOr("height", "360")
		wrapper.SetAttr("width", width)
		wrapper.SetAttr("height", height)

		iframe.ReplaceWith(wrapper)
		wrapper.AppendChild(iframe)
	}
}

func isVideoSrc(src string) bool {
	return textpattern.VideoHost.MatchString(src)
}
