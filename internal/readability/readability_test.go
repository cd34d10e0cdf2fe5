package readability_test

import (
	"strings"
	"testing"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/rijkvp/articlex/internal/readability"
	"github.com/stretchr/testify/require"
)

func TestExtract_PicksLongestArticleBody(t *testing.T) {
	paragraph := strings.Repeat("This is a sentence with some punctuation, and more words, and even more words to pad it out. ", 3)
	markup := `<html><body>
		<div class="sidebar"><p>Subscribe now, click here, buy today.</p></div>
		<article>
			<h1>Headline</h1>
			<p>` + paragraph + `</p>
			<p>` + paragraph + `</p>
			<p>` + paragraph + `</p>
		</article>
	</body></html>`

	doc, err := domutil.ParseHTML([]byte(markup), "")
	require.Nil(t, err)

	articles, serr := doc.Select("article")
	require.Nil(t, serr)
	require.Len(t, articles, 1)

	result, rerr := readability.Extract(articles[0], readability.Options{})
	require.Nil(t, rerr)
	require.False(t, result.Container.IsZero())
	require.Contains(t, result.Container.Text(), "sentence with some punctuation")
}

func TestExtract_EmptyInputYieldsZeroContainer(t *testing.T) {
	doc, err := domutil.ParseHTML([]byte(`<html><body><div id="x"></div></body></html>`), "")
	require.Nil(t, err)

	divs, serr := doc.Select("#x")
	require.Nil(t, serr)

	result, rerr := readability.Extract(divs[0], readability.Options{})
	require.Nil(t, rerr)
	require.True(t, result.Container.IsZero())
}
