// Package extractpipeline is the orchestrator (C8): it composes the DOM
// facade, preparation, body extraction, readability fallback, post-
// processing, and metadata resolution over one or more pages, driving
// the out-of-scope HTTP collaborator behind a rate limiter and retrier.
package extractpipeline

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rijkvp/articlex/internal/articlemeta"
	"github.com/rijkvp/articlex/internal/bodyconfig"
	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/postprocess"
	"github.com/rijkvp/articlex/internal/prepare"
	"github.com/rijkvp/articlex/internal/readability"
	"github.com/rijkvp/articlex/internal/siteconfig"
	"github.com/rijkvp/articlex/pkg/failure"
	"github.com/rijkvp/articlex/pkg/limiter"
	"github.com/rijkvp/articlex/pkg/obslog"
	"github.com/rijkvp/articlex/pkg/retry"
	"github.com/rijkvp/articlex/pkg/timeutil"
)

// maxPages guards the pagination loop against malformed "next page" link
// cycles.
const maxPages = 25

// Article is the orchestrator's output for one URL (all pages merged).
type Article struct {
	Title        string
	Author       string
	Date         *time.Time
	ThumbnailURL string
	HTML         string
}

// Pipeline owns the shared, read-only config collection and the I/O
// collaborators used at the page-fetch boundary.
type Pipeline struct {
	collection *siteconfig.Collection
	limiter    limiter.RateLimiter
	retryParam retry.RetryParam
	sink       obslog.Sink
	thumbs     *articlemeta.ThumbnailCache
}

// New builds a Pipeline against a shared Collection. sink may be
// obslog.NewNop() when the caller does not want structured logging.
func New(collection *siteconfig.Collection, sink obslog.Sink) *Pipeline {
	rl := limiter.NewConcurrentRateLimiter()
	rl.SetBaseDelay(500 * time.Millisecond)
	rl.SetJitter(200 * time.Millisecond)

	return &Pipeline{
		collection: collection,
		limiter:    rl,
		retryParam: retry.NewRetryParam(
			500*time.Millisecond,
			200*time.Millisecond,
			time.Now().UnixNano(),
			3,
			timeutil.NewBackoffParam(500*time.Millisecond, 2.0, 10*time.Second),
		),
		sink:   sink,
		thumbs: articlemeta.NewThumbnailCache(),
	}
}

// Collection exposes the shared config store for offline entry points
// that need to resolve a host's effective config without fetching.
func (p *Pipeline) Collection() *siteconfig.Collection {
	return p.collection
}

var metaCharsetPattern = regexp.MustCompile(`(?i)<meta[^>]+charset=["']?([a-zA-Z0-9_-]+)`)

func detectEncoding(body []byte, headers map[string]string) string {
	if m := metaCharsetPattern.FindSubmatch(body); m != nil {
		return string(m[1])
	}
	if ct, ok := headers["Content-Type"]; ok {
		if idx := strings.Index(strings.ToLower(ct), "charset="); idx >= 0 {
			return strings.Trim(ct[idx+len("charset="):], `"' `)
		}
	}
	return ""
}

// Parse implements the public Scraper.Parse entry point: fetch, follow
// pagination, and return the merged Article. downloadImages is accepted
// for interface parity with §6's public signature; image byte fetching
// is an out-of-scope collaborator this package does not invoke.
func (p *Pipeline) Parse(ctx context.Context, rawURL string, downloadImages bool, client HTTPClient) (Article, failure.ClassifiedError) {
	_ = downloadImages
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Article{}, failure.NewScrapeError(failure.KindInvalidHTML, "invalid url: "+rawURL, err)
	}

	output := domutil.NewDocumentFragment()
	var article Article
	metadataResolved := false

	currentURL := parsed

	for page := 0; page < maxPages; page++ {
		doc, headers, rawHTML, ferr := p.fetchPage(ctx, currentURL, client)
		if ferr != nil {
			p.sink.RecordError("extractpipeline", "fetchPage", obslog.CauseNetworkFailure, ferr.Error(), []obslog.Attribute{obslog.NewAttr(obslog.AttrURL, currentURL.String())})
			if page > 0 {
				break
			}
			return article, ferr
		}

		effective, found := p.collection.Get(currentURL.Host)
		if !found {
			effective = p.collection.GetWithFingerprint(currentURL.Host, rawHTML)
		}
		_ = headers

		if err := prepare.Prepare(doc, prepare.Options{BaseURL: currentURL, Global: effective}); err != nil {
			return article, err
		}

		if !metadataResolved {
			meta := articlemeta.Resolve(doc, effective, currentURL.String(), p.thumbs)
			article.Title = meta.Title
			article.Author = meta.Author
			article.Date = meta.Date
			article.ThumbnailURL = meta.ThumbnailURL
			metadataResolved = true
		}

		ok, extractErr := bodyconfig.Extract(doc.Root(), effective.Body, output.Root())
		if extractErr != nil {
			return article, extractErr
		}
		if !ok {
			result, rerr := readability.Extract(doc.Root(), readability.Options{KnownTitle: article.Title, ShouldRemoveTitleHeader: true})
			if rerr != nil {
				return article, rerr
			}
			if result.Container.IsZero() {
				return article, failure.NewScrapeError(failure.KindScrape, "no content extracted for "+currentURL.String(), nil)
			}
			postprocess.Apply(result.Container)
			output.Root().AppendChild(result.Container)
		}

		next := nextPageURL(doc, effective, currentURL)
		if next == nil {
			break
		}
		currentURL = next
	}

	html, serr := domutil.InnerHTML(output.Root())
	if serr != nil {
		return article, serr
	}
	article.HTML = html
	p.sink.RecordExtraction(parsed.Host, 0, len(html), "pipeline")
	return article, nil
}

func nextPageURL(doc *domutil.Document, cfg siteconfig.ConfigEntry, base *url.URL) *url.URL {
	if cfg.NextPageLink == "" {
		return nil
	}
	nodes, err := doc.Select(cfg.NextPageLink)
	if err != nil || len(nodes) == 0 {
		return nil
	}
	href, ok := nodes[0].Attr("href")
	if !ok || href == "" {
		return nil
	}
	parsed, perr := url.Parse(href)
	if perr != nil {
		return nil
	}
	return base.ResolveReference(parsed)
}

// fetchPage applies the per-host politeness delay, then fetches via the
// retrier, validates content-type, and parses the body into a Document.
func (p *Pipeline) fetchPage(ctx context.Context, target *url.URL, client HTTPClient) (*domutil.Document, map[string]string, []byte, failure.ClassifiedError) {
	delay := p.limiter.ResolveDelay(target.Host)
	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, nil, nil, failure.NewScrapeError(failure.KindHTTP, "context canceled before fetch", ctx.Err())
		case <-time.After(delay):
		}
	}
	p.limiter.MarkLastFetchAsNow(target.Host)

	cfg, _ := p.collection.Get(target.Host)
	headers := map[string]string{}
	for _, h := range cfg.Headers {
		headers[h.Name] = h.Value
	}

	result := retry.Retry(p.retryParam, func() (*HTTPResponse, failure.ClassifiedError) {
		resp, err := client.Fetch(ctx, target.String(), headers)
		if err != nil {
			return nil, failure.NewScrapeError(failure.KindHTTP, "fetch failed: "+target.String(), err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, failure.NewScrapeError(failure.KindHTTP, "non-success status", nil)
		}
		return resp, nil
	})

	if result.IsFailure() {
		p.limiter.Backoff(target.Host)
		return nil, nil, nil, result.Err()
	}
	p.limiter.ResetBackoff(target.Host)
	resp := result.Value()

	contentType := resp.Headers["Content-Type"]
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, nil, nil, failure.NewScrapeError(failure.KindContentType, "response is not text/html", nil)
	}

	encoding := detectEncoding(resp.Body, resp.Headers)
	doc, derr := domutil.ParseHTML(resp.Body, encoding)
	if derr != nil {
		return nil, nil, nil, derr
	}
	return doc, resp.Headers, resp.Body, nil
}
