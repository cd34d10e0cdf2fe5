package domutil_test

import (
	"testing"

	"github.com/rijkvp/articlex/internal/domutil"
	"github.com/stretchr/testify/require"
)

func TestParseHTML_Basic(t *testing.T) {
	doc, err := domutil.ParseHTML([]byte(`<html><body><p>hello</p></body></html>`), "")
	require.Nil(t, err)
	require.NotNil(t, doc)

	nodes, err := doc.Select("p")
	require.Nil(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, "hello", nodes[0].Text())
}

func TestParseHTML_EmptyInput(t *testing.T) {
	_, err := domutil.ParseHTML([]byte(""), "")
	require.NotNil(t, err)
}

func TestSelect_InvalidSelector(t *testing.T) {
	doc, err := domutil.ParseHTML([]byte(`<html><body></body></html>`), "")
	require.Nil(t, err)

	_, selErr := doc.Select("[[[")
	require.NotNil(t, selErr)
}

func TestNode_AttrMutation(t *testing.T) {
	doc, err := domutil.ParseHTML([]byte(`<html><body><a href="x" class="a b">link</a></body></html>`), "")
	require.Nil(t, err)

	nodes, err := doc.Select("a")
	require.Nil(t, err)
	require.Len(t, nodes, 1)

	a := nodes[0]
	require.True(t, a.HasClassToken("b"))
	a.SetAttr("href", "y")
	v, ok := a.Attr("href")
	require.True(t, ok)
	require.Equal(t, "y", v)

	a.RemoveAttr("class")
	_, ok = a.Attr("class")
	require.False(t, ok)
}

func TestNode_UnlinkAndSerialize(t *testing.T) {
	doc, err := domutil.ParseHTML([]byte(`<html><body><div><p id="keep">a</p><p id="drop">b</p></div></body></html>`), "")
	require.Nil(t, err)

	nodes, err := doc.Select("#drop")
	require.Nil(t, err)
	require.Len(t, nodes, 1)
	nodes[0].Unlink()

	divs, err := doc.Select("div")
	require.Nil(t, err)
	out, serr := domutil.Serialize(divs[0])
	require.Nil(t, serr)
	require.Contains(t, out, "keep")
	require.NotContains(t, out, "drop")
}
