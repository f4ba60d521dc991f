package extractor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(anchors ...string) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>Links</title></head><body><ul>")
	for _, a := range anchors {
		b.WriteString("<li>" + a + "</li>")
	}
	b.WriteString("</ul></body></html>")
	return []byte(b.String())
}

func TestExtractLinksDistinctAbsolute(t *testing.T) {
	var anchors []string
	for i := 0; i < 25; i++ {
		anchors = append(anchors, fmt.Sprintf(`<a href="https://site%d.example.org/page">site %d</a>`, i, i))
	}

	links, err := New().ExtractLinks(page(anchors...), "", "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, 25, links.Len())
	assert.True(t, links.Contains("https://site0.example.org/page"))
	assert.True(t, links.Contains("https://site24.example.org/page"))
}

func TestExtractLinksCollapsesDuplicates(t *testing.T) {
	body := page(
		`<a href="/about">About</a>`,
		`<a href="/about">About again</a>`,
		`<a href="https://example.com/about">Absolute about</a>`,
		`<a href="/contact">Contact</a>`,
	)

	links, err := New().ExtractLinks(body, "", "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/about", "https://example.com/contact"}, links.URLs())
}

func TestExtractLinksRelativeForms(t *testing.T) {
	body := page(
		`<a href="/page1">Page 1</a>`,
		`<a href="../page2">Page 2</a>`,
		`<a href="./page3">Page 3</a>`,
		`<a href="page4">Page 4</a>`,
		`<a href="/path/to/page5#section1">Page 5 with anchor</a>`,
		`<a href="?q=go">Query only</a>`,
		`<a href="#top">Fragment only</a>`,
		`<a href="//cdn.example.net/lib.js">Protocol relative</a>`,
	)

	links, err := New().ExtractLinks(body, "", "https://example.com/docs/")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com/page1",
		"https://example.com/page2",
		"https://example.com/docs/page3",
		"https://example.com/docs/page4",
		"https://example.com/path/to/page5#section1",
		"https://example.com/docs/?q=go",
		"https://example.com/docs/#top",
		"https://cdn.example.net/lib.js",
	}, links.URLs())
}

func TestExtractLinksIgnoresAnchorsWithoutHref(t *testing.T) {
	body := page(
		`<a name="top">no href</a>`,
		`<a href="">empty href</a>`,
		`<link href="/style.css" rel="stylesheet">`,
		`<img src="/logo.png">`,
	)

	links, err := New().ExtractLinks(body, "", "https://example.com/")
	require.NoError(t, err)

	// an empty href joins back to the base itself
	assert.Equal(t, []string{"https://example.com/"}, links.URLs())
}

func TestExtractLinksOtherSchemesPassThrough(t *testing.T) {
	body := page(
		`<a href="mailto:team@example.com">Mail</a>`,
		`<a href="tel:+15551234">Call</a>`,
		`<a href="javascript:void(0)">Nothing</a>`,
	)

	links, err := New().ExtractLinks(body, "", "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"mailto:team@example.com",
		"tel:+15551234",
		"javascript:void(0)",
	}, links.URLs())
}

func TestExtractLinksMalformedHTML(t *testing.T) {
	body := []byte(`<html><body><a href="/one">one<div><a href="/two">two</p></span>`)

	links, err := New().ExtractLinks(body, "", "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/one", "https://example.com/two"}, links.URLs())
}

func TestExtractLinksEmptyDocument(t *testing.T) {
	links, err := New().ExtractLinks(nil, "", "https://example.com/")
	require.NoError(t, err)
	assert.True(t, links.IsEmpty())
}

func TestExtractLinksWhitespaceInHref(t *testing.T) {
	body := page(
		"<a href=\"\n  /about\">About</a>",
		`<a href=" /contact ">Contact</a>`,
		"<a href=\"/docs/\tintro\">Intro</a>",
		"<a href=\"  https://example.org/\r\n\">Out</a>",
	)

	links, err := New().ExtractLinks(body, "", "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com/about",
		"https://example.com/contact ",
		"https://example.com/docs/intro",
		"https://example.org/",
	}, links.URLs())
	for _, u := range links.URLs() {
		assert.NotContains(t, u, "\n")
	}
}

func TestExtractLinksKeepsRawCharacters(t *testing.T) {
	body := page(
		`<a href="/café menu">Menu</a>`,
		`<a href="%zz">Broken escape</a>`,
		`<a href="tag/c%2B%2B?q=a b">Tag</a>`,
	)

	links, err := New().ExtractLinks(body, "", "https://example.com/blog/")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com/café menu",
		"https://example.com/blog/%zz",
		"https://example.com/blog/tag/c%2B%2B?q=a b",
	}, links.URLs())
}

func TestExtractLinksDecodesCharset(t *testing.T) {
	// "caf\xe9" is café in ISO-8859-1
	fromHeader := []byte("<html><body><a href=\"/caf\xe9\">x</a></body></html>")
	links, err := New().ExtractLinks(fromHeader, "text/html; charset=iso-8859-1", "https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/café"}, links.URLs())

	fromMeta := []byte("<html><head><meta charset=\"windows-1252\"></head><body><a href=\"/caf\xe9\">x</a></body></html>")
	links, err = New().ExtractLinks(fromMeta, "", "https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/café"}, links.URLs())
}

func TestResolve(t *testing.T) {
	const base = "https://example.com/docs/guide"

	tests := []struct {
		name string
		href string
		want string
	}{
		{"absolute path", "/about", "https://example.com/about"},
		{"http prefix kept verbatim", "http://Other.example.com/A/../B", "http://Other.example.com/A/../B"},
		{"sibling", "intro", "https://example.com/docs/intro"},
		{"dot segments", "a/./b/../c", "https://example.com/docs/a/c"},
		{"parent", "../up", "https://example.com/up"},
		{"above root", "../../../top", "https://example.com/top"},
		{"trailing dot dot", "a/..", "https://example.com/docs/"},
		{"query only", "?page=2", "https://example.com/docs/guide?page=2"},
		{"fragment only", "#s1", "https://example.com/docs/guide#s1"},
		{"protocol relative", "//cdn.example.net/x", "https://cdn.example.net/x"},
		{"bad escape joined", "%zz", "https://example.com/docs/%zz"},
		{"other scheme", "mailto:a@example.com", "mailto:a@example.com"},
		{"empty", "", base},
		{"leading newline", "\n\t/about", "https://example.com/about"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(base, tt.href))
		})
	}
}
