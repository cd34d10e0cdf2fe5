package articlemeta

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/siteconfig"
	"github.com/rijkvp/articlex/internal/textpattern"
)

// leadingImageFallback is tried last, when nothing else yields a
// thumbnail: the first content-area image in document order.
const leadingImageFallback = "article img, .post img, .entry-content img"

// ResolveThumbnail implements §4.7's thumbnail chain: twitter:image,
// og:image, <link rel="image_src">, best-scored <img>, leading-image
// fallback selector.
func ResolveThumbnail(doc *domutil.Document, cfg siteconfig.ConfigEntry, baseURLString string, cache *ThumbnailCache) string {
	base, _ := url.Parse(baseURLString)

	if v := metaContent(doc, "twitter:image"); v != "" {
		return resolveThumbURL(v, base)
	}
	if v := metaContent(doc, "og:image"); v != "" {
		return resolveThumbURL(v, base)
	}
	if links, err := doc.Select(`link[rel="image_src"]`); err == nil && len(links) > 0 {
		if href, ok := links[0].Attr("href"); ok && href != "" {
			return resolveThumbURL(href, base)
		}
	}

	if best := bestScoredImage(doc, cache); !best.IsZero() {
		if src, ok := best.Attr("src"); ok && src != "" {
			return resolveThumbURL(src, base)
		}
	}

	if nodes, err := doc.Select(leadingImageFallback); err == nil && len(nodes) > 0 {
		if src, ok := nodes[0].Attr("src"); ok && src != "" {
			return resolveThumbURL(src, base)
		}
	}

	return ""
}

func resolveThumbURL(raw string, base *url.URL) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	if parsed.IsAbs() || base == nil {
		return parsed.String()
	}
	return base.ResolveReference(parsed).String()
}

// bestScoredImage scores every <img> in document order and returns the
// highest-scoring candidate, memoizing per-image scores in cache.
func bestScoredImage(doc *domutil.Document, cache *ThumbnailCache) domutil.Node {
	imgs, err := doc.Select("img")
	if err != nil || len(imgs) == 0 {
		return domutil.Node{}
	}

	var best domutil.Node
	bestScore := -1.0
	for i, img := range imgs {
		score := scoreImageCandidate(img, i, cache)
		if score > bestScore {
			best = img
			bestScore = score
		}
	}
	return best
}

func scoreImageCandidate(img domutil.Node, position int, cache *ThumbnailCache) float64 {
	key := cacheKey(img)
	if key != "" {
		if cached, ok := cache.get(key); ok {
			return cached
		}
	}

	score := 0.0
	src, _ := img.Attr("src")
	lowerSrc := strings.ToLower(src)
	if strings.Contains(lowerSrc, "thumb") || strings.Contains(lowerSrc, "hero") || strings.Contains(lowerSrc, "feature") {
		score += 10
	}
	if strings.Contains(lowerSrc, "icon") || strings.Contains(lowerSrc, "logo") || strings.Contains(lowerSrc, "sprite") || strings.Contains(lowerSrc, "avatar") {
		score -= 10
	}

	alt, _ := img.Attr("alt")
	title, _ := img.Attr("title")
	if strings.TrimSpace(alt) != "" {
		score += 3
	}
	if strings.TrimSpace(title) != "" {
		score += 2
	}

	if parent := img.Parent(); !parent.IsZero() {
		if textpattern.Positive.MatchString(parent.AttrOr("class", "")) {
			score += 5
		}
		if parent.Is("figure") {
			score += 5
		}
	}

	if w := intAttr(img, "width"); w > 0 {
		if w >= 300 {
			score += 5
		} else if w < 100 {
			score -= 5
		}
	}
	if h := intAttr(img, "height"); h > 0 {
		if h >= 200 {
			score += 5
		} else if h < 100 {
			score -= 5
		}
	}

	// earlier images in document order are slightly favored.
	score -= float64(position) * 0.1

	if key != "" {
		cache.put(key, score)
	}
	return score
}

func intAttr(n domutil.Node, attr string) int {
	v, ok := n.Attr(attr)
	if !ok {
		return 0
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return parsed
}
