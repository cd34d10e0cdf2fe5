package prepare

import (
	"regexp"
	"strings"

	"github.com/rijkvp/articlex/internal/domutil"
)

var imageExtensionPattern = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp|avif|svg)`)

// recoverNoscriptImages implements §4.3.2: suppress placeholder <img>s,
// then promote a <noscript>'s real <img> over its lazy-loading
// predecessor sibling.
func recoverNoscriptImages(root domutil.Node) {
	removePlaceholderImages(root)

	var noscripts []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if n.Is("noscript") {
			noscripts = append(noscripts, n)
		}
	})

	for _, ns := range noscripts {
		nsImg := soleImage(ns)
		if nsImg.IsZero() {
			continue
		}
		prevSibling := previousElementSibling(ns)
		if prevSibling.IsZero() {
			continue
		}
		prevImg := soleImage(prevSibling)
		if prevImg.IsZero() {
			continue
		}

		copyImageAttrs(prevImg, nsImg)
		prevSibling.ReplaceWith(nsImg)
		ns.Unlink()
	}
}

func removePlaceholderImages(root domutil.Node) {
	var toUnlink []domutil.Node
	domutil.Walk(root, func(n domutil.Node) {
		if !n.Is("img") {
			return
		}
		if hasAny(n, "src", "srcset", "data-src", "data-srcset") {
			return
		}
		if attrsContainImageExt(n) {
			return
		}
		toUnlink = append(toUnlink, n)
	})
	for _, n := range toUnlink {
		n.Unlink()
	}
}

func hasAny(n domutil.Node, attrs ...string) bool {
	for _, a := range attrs {
		if _, ok := n.Attr(a); ok {
			return true
		}
	}
	return false
}

func attrsContainImageExt(n domutil.Node) bool {
	for _, a := range n.Attrs() {
		if imageExtensionPattern.MatchString(a.Val) {
			return true
		}
	}
	return false
}

// soleImage returns the single <img> within n's subtree when n's only
// meaningful content is that one image, else the zero Node.
func soleImage(n domutil.Node) domutil.Node {
	var img domutil.Node
	count := 0
	domutil.Walk(n, func(c domutil.Node) {
		if c.Is("img") {
			count++
			img = c
		}
	})
	if count != 1 {
		return domutil.Node{}
	}
	return img
}

func previousElementSibling(n domutil.Node) domutil.Node {
	for s := n.PrevSibling(); !s.IsZero(); s = s.PrevSibling() {
		if s.IsElement() {
			return s
		}
		if s.IsText() && strings.TrimSpace(s.Text()) != "" {
			return domutil.Node{}
		}
	}
	return domutil.Node{}
}

// copyImageAttrs preserves src's image-bearing attributes on dst without
// overwriting anything dst already has: when dst already carries a
// different value for a name, src's value is recorded as data-old-NAME
// instead; when dst lacks the attribute entirely, src's value fills it in.
func copyImageAttrs(src, dst domutil.Node) {
	for _, attr := range src.Attrs() {
		if !isImageBearingAttr(attr.Key) {
			continue
		}
		if existing, ok := dst.Attr(attr.Key); ok {
			if existing != attr.Val {
				dst.SetAttr("data-old-"+attr.Key, attr.Val)
			}
			continue
		}
		dst.SetAttr(attr.Key, attr.Val)
	}
}

func isImageBearingAttr(key string) bool {
	switch strings.ToLower(key) {
	case "src", "srcset", "width", "height", "sizes", "alt", "title":
		return true
	default:
		return false
	}
}
