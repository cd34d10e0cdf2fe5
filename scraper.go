// Package extract is the public entry point of the article-extraction
// engine: given a page's HTML (fetched by the caller or supplied
// directly), it produces a cleaned article body plus title, author,
// date, and thumbnail metadata.
package extract

import (
	"context"
	"net/url"
	"time"

	"github.com/rijkvp/articlex/internal/articlemeta"
	"github.com/rijkvp/articlex/internal/extractpipeline"
	"github.com/rijkvp/articlex/internal/siteconfig"
	"github.com/rijkvp/articlex/pkg/failure"
	"github.com/rijkvp/articlex/pkg/obslog"
)

// HTTPClient is the out-of-scope fetch collaborator (§6): it must
// accept a URL and header map and return status, headers, the URL
// after redirects, and the raw body.
type HTTPClient = extractpipeline.HTTPClient

// HTTPResponse is the collaborator's fetch result.
type HTTPResponse = extractpipeline.HTTPResponse

// Article is the resolved result of one Parse/ParseOffline call.
type Article struct {
	Title        *string
	Author       *string
	URL          string
	Date         *time.Time
	ThumbnailURL *string
	HTML         string
}

// CleanedHTML is the result of CleanHTML: a sanitized fragment plus any
// thumbnail discovered along the way.
type CleanedHTML struct {
	HTML         string
	ThumbnailURL *string
}

// Scraper owns a shared, read-only site-config Collection and drives
// Parse calls against it.
type Scraper struct {
	pipeline *extractpipeline.Pipeline
}

// NewScraper builds a Scraper, loading the embedded default config plus
// an optional user-config directory overlay (§6).
func NewScraper(userConfigDir string) (*Scraper, error) {
	collection, err := siteconfig.NewCollection(userConfigDir)
	if err != nil {
		return nil, err
	}
	return &Scraper{pipeline: extractpipeline.New(collection, obslog.NewNop())}, nil
}

// Parse fetches url (following redirects and pagination) and returns
// the extracted Article.
func (s *Scraper) Parse(ctx context.Context, url string, downloadImages bool, httpClient HTTPClient) (Article, failure.ClassifiedError) {
	result, err := s.pipeline.Parse(ctx, url, downloadImages, httpClient)
	if err != nil {
		return Article{}, err
	}
	return toArticle(url, result), nil
}

// ParseOffline extracts an Article directly from already-fetched HTML,
// skipping the HTTP collaborator and pagination entirely.
func (s *Scraper) ParseOffline(htmlStr string, baseURL *url.URL) (Article, failure.ClassifiedError) {
	result, err := extractpipeline.ExtractOffline(s.collection(), htmlStr, baseURL, articlemeta.NewThumbnailCache())
	if err != nil {
		return Article{}, err
	}
	urlString := ""
	if baseURL != nil {
		urlString = baseURL.String()
	}
	return toArticle(urlString, result), nil
}

// CleanHTML runs the same extraction chain as ParseOffline but returns
// only the cleaned fragment and thumbnail, matching spec §6's
// clean_html entry point.
func (s *Scraper) CleanHTML(htmlStr string, baseURL *url.URL) (CleanedHTML, failure.ClassifiedError) {
	result, err := extractpipeline.ExtractOffline(s.collection(), htmlStr, baseURL, articlemeta.NewThumbnailCache())
	if err != nil {
		return CleanedHTML{}, err
	}
	var thumb *string
	if result.ThumbnailURL != "" {
		thumb = &result.ThumbnailURL
	}
	return CleanedHTML{HTML: result.HTML, ThumbnailURL: thumb}, nil
}

func (s *Scraper) collection() *siteconfig.Collection {
	return s.pipeline.Collection()
}

func toArticle(urlString string, result extractpipeline.Article) Article {
	article := Article{URL: urlString, HTML: result.HTML}
	if result.Title != "" {
		title := result.Title
		article.Title = &title
	}
	if result.Author != "" {
		author := result.Author
		article.Author = &author
	}
	if result.ThumbnailURL != "" {
		thumb := result.ThumbnailURL
		article.ThumbnailURL = &thumb
	}
	article.Date = result.Date
	return article
}
