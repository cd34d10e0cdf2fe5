// Package articlemeta is the metadata & thumbnail resolver (C7): title,
// author, date, and thumbnail are each resolved through a fallback
// chain of site selectors, global selectors, and meta-tag conventions.
package articlemeta

import (
	"sync"
	"time"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/siteconfig"
	"github.com/rijkvp/articlex/pkg/hashutil"
)

// Metadata is the resolved bundle for one page.
type Metadata struct {
	Title        string
	Author       string
	Date         *time.Time
	ThumbnailURL string
}

// ThumbnailCache memoizes per-document thumbnail scoring keyed by a
// blake3 hash of the candidate image's serialized subtree, so repeated
// calls against identical markup in one process lifetime skip rescoring.
type ThumbnailCache struct {
	mu    sync.Mutex
	score map[string]float64
}

func NewThumbnailCache() *ThumbnailCache {
	return &ThumbnailCache{score: make(map[string]float64)}
}

func (c *ThumbnailCache) get(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.score[key]
	return v, ok
}

func (c *ThumbnailCache) put(key string, score float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.score[key] = score
}

func cacheKey(img domutil.Node) string {
	raw, err := domutil.Serialize(img)
	if err != nil {
		return ""
	}
	key, hashErr := hashutil.HashBytes([]byte(raw), hashutil.HashAlgoBLAKE3)
	if hashErr != nil {
		return ""
	}
	return key
}

// Resolve runs the full title/author/date/thumbnail chain against the
// prepared document, before body extraction consumes it.
func Resolve(doc *domutil.Document, cfg siteconfig.ConfigEntry, baseURLString string, cache *ThumbnailCache) Metadata {
	return Metadata{
		Title:        ResolveTitle(doc, cfg),
		Author:       ResolveAuthor(doc, cfg),
		Date:         ResolveDate(doc, cfg),
		ThumbnailURL: ResolveThumbnail(doc, cfg, baseURLString, cache),
	}
}
