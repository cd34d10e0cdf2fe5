package extract_test

import (
	"net/url"
	"testing"

	extract "github.com/rijkvp/articlex"
	"github.com/stretchr/testify/require"
)

func TestParseOffline_ExtractsArticleBody(t *testing.T) {
	scraper, err := extract.NewScraper("")
	require.NoError(t, err)

	base, _ := url.Parse("https://example.com/article")
	markup := `<html><head><title>A Great Headline - Example Times</title>
		<meta property="og:image" content="https://example.com/hero.jpg">
	</head><body>
		<article>
			<p>This is the first paragraph of a real article with enough content to matter.</p>
			<p>This is the second paragraph, continuing with more substantive text for readers.</p>
		</article>
	</body></html>`

	article, aerr := scraper.ParseOffline(markup, base)
	require.Nil(t, aerr)
	require.Contains(t, article.HTML, "first paragraph")
	require.NotNil(t, article.Title)
	require.Equal(t, "A Great Headline", *article.Title)
	require.NotNil(t, article.ThumbnailURL)
	require.Equal(t, "https://example.com/hero.jpg", *article.ThumbnailURL)
}

func TestCleanHTML_ReturnsFragmentAndThumbnail(t *testing.T) {
	scraper, err := extract.NewScraper("")
	require.NoError(t, err)

	base, _ := url.Parse("https://example.com/article")
	markup := `<html><body><article><p>Some article content worth keeping around for the reader to enjoy.</p></article></body></html>`

	cleaned, cerr := scraper.CleanHTML(markup, base)
	require.Nil(t, cerr)
	require.Contains(t, cleaned.HTML, "Some article content")
}
