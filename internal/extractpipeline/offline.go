package extractpipeline

import (
	"net/url"

	"github.com/rijkvp/articlex/internal/articlemeta"
	"github.com/rijkvp/articlex/internal/bodyconfig"
	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/postprocess"
	"github.com/rijkvp/articlex/internal/prepare"
	"github.com/rijkvp/articlex/internal/readability"
	"github.com/rijkvp/articlex/internal/siteconfig"
	"github.com/rijkvp/articlex/pkg/failure"
)

// ExtractOffline runs a single page through the same prepare/extract/
// post-process chain as Parse, without an HTTP collaborator or
// pagination — the engine behind ParseOffline and CleanHTML.
func ExtractOffline(collection *siteconfig.Collection, rawHTML string, baseURL *url.URL, thumbs *articlemeta.ThumbnailCache) (Article, failure.ClassifiedError) {
	doc, err := domutil.ParseHTML([]byte(rawHTML), "")
	if err != nil {
		return Article{}, err
	}

	host := ""
	if baseURL != nil {
		host = baseURL.Host
	}
	effective, found := collection.Get(host)
	if !found {
		effective = collection.GetWithFingerprint(host, []byte(rawHTML))
	}

	if err := prepare.Prepare(doc, prepare.Options{BaseURL: baseURL, Global: effective}); err != nil {
		return Article{}, err
	}

	baseURLString := ""
	if baseURL != nil {
		baseURLString = baseURL.String()
	}
	meta := articlemeta.Resolve(doc, effective, baseURLString, thumbs)

	output := domutil.NewDocumentFragment()
	ok, extractErr := bodyconfig.Extract(doc.Root(), effective.Body, output.Root())
	if extractErr != nil {
		return Article{}, extractErr
	}
	if !ok {
		result, rerr := readability.Extract(doc.Root(), readability.Options{KnownTitle: meta.Title, ShouldRemoveTitleHeader: true})
		if rerr != nil {
			return Article{}, rerr
		}
		if result.Container.IsZero() {
			return Article{}, failure.NewScrapeError(failure.KindScrape, "no content extracted", nil)
		}
		postprocess.Apply(result.Container)
		output.Root().AppendChild(result.Container)
	}

	html, serr := domutil.InnerHTML(output.Root())
	if serr != nil {
		return Article{}, serr
	}

	return Article{
		Title:        meta.Title,
		Author:       meta.Author,
		Date:         meta.Date,
		ThumbnailURL: meta.ThumbnailURL,
		HTML:         html,
	}, nil
}
