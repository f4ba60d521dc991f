package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/amosWeiskopf/linkdump/internal/models"
)

// anchorSelector matches every anchor carrying an href, empty or not
const anchorSelector = "a[href]"

// Extractor pulls hyperlink targets out of HTML documents
type Extractor struct {
	selector string
}

// New creates a new Extractor instance
func New() *Extractor {
	return &Extractor{
		selector: anchorSelector,
	}
}

// ExtractLinks parses htmlContent and returns the set of link targets found
// in it, resolved against baseURL. contentType is the response's
// Content-Type header and may be empty; together with <meta> sniffing it
// selects the charset the body is decoded with.
func (e *Extractor) ExtractLinks(htmlContent []byte, contentType, baseURL string) (*models.LinkSet, error) {
	root, err := html.Parse(decode(htmlContent, contentType))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	links := models.NewLinkSet()
	goquery.NewDocumentFromNode(root).Find(e.selector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		links.Add(Resolve(baseURL, href))
	})

	return links, nil
}

// ExtractLinksFrom is ExtractLinks for a streaming body
func (e *Extractor) ExtractLinksFrom(r io.Reader, contentType, baseURL string) (*models.LinkSet, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	return e.ExtractLinks(body, contentType, baseURL)
}

// decode returns body as UTF-8. Without a declared charset a body that is
// already valid UTF-8 is kept as-is instead of falling back to windows-1252.
func decode(body []byte, contentType string) io.Reader {
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" || (!certain && name == "windows-1252" && utf8.Valid(body)) {
		return bytes.NewReader(body)
	}
	return enc.NewDecoder().Reader(bytes.NewReader(body))
}

// Resolve turns href into an absolute URL. Leading spaces and control
// characters are dropped and tabs and newlines removed first. Hrefs starting
// with "http" are then returned as-is; everything else is joined with base
// per RFC 3986. Other schemes (mailto:, tel:, javascript:) come back
// unchanged. The join is textual: nothing is escaped or unescaped.
func Resolve(base, href string) string {
	href = cleanHref(href)
	if strings.HasPrefix(href, "http") {
		return href
	}
	return join(cleanHref(base), href)
}

// cleanHref trims leading C0 controls and spaces and removes every tab,
// CR and LF, the way browsers read attribute URLs.
func cleanHref(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool { return r <= ' ' })
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
}

// urlParts holds the raw components of a URL reference
type urlParts struct {
	scheme   string
	netloc   string
	path     string
	query    string
	fragment string
}

func split(s string) urlParts {
	var p urlParts

	if i := strings.IndexByte(s, ':'); i > 0 && isScheme(s[:i]) {
		p.scheme, s = strings.ToLower(s[:i]), s[i+1:]
	}

	if strings.HasPrefix(s, "//") {
		rest := s[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		p.netloc, s = rest[:end], rest[end:]
	}

	if i := strings.IndexByte(s, '#'); i >= 0 {
		s, p.fragment = s[:i], s[i+1:]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s, p.query = s[:i], s[i+1:]
	}
	p.path = s

	return p
}

func isScheme(s string) bool {
	for i, c := range s {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

func (p urlParts) String() string {
	s := p.path
	if p.netloc != "" || (p.scheme != "" && !strings.HasPrefix(s, "//")) {
		if s != "" && s[0] != '/' {
			s = "/" + s
		}
		s = "//" + p.netloc + s
	}
	if p.scheme != "" {
		s = p.scheme + ":" + s
	}
	if p.query != "" {
		s += "?" + p.query
	}
	if p.fragment != "" {
		s += "#" + p.fragment
	}
	return s
}

func join(base, ref string) string {
	if base == "" {
		return ref
	}
	if ref == "" {
		return base
	}

	b := split(base)
	r := split(ref)
	if r.scheme == "" {
		r.scheme = b.scheme
	}
	if r.scheme != b.scheme {
		return ref
	}
	if r.netloc != "" {
		return r.String()
	}
	r.netloc = b.netloc

	if r.path == "" {
		r.path = b.path
		if r.query == "" {
			r.query = b.query
		}
		return r.String()
	}

	r.path = mergePaths(b.path, r.path)
	return r.String()
}

// mergePaths applies ref to the base path and removes dot segments
func mergePaths(base, ref string) string {
	var segments []string
	if strings.HasPrefix(ref, "/") {
		segments = strings.Split(ref, "/")
	} else {
		baseParts := strings.Split(base, "/")
		if baseParts[len(baseParts)-1] != "" {
			// last base segment is a file, not a directory
			baseParts = baseParts[:len(baseParts)-1]
		}
		segments = append(baseParts, strings.Split(ref, "/")...)

		// drop empty inner segments so the join adds no doubled slashes
		if len(segments) > 2 {
			merged := []string{segments[0]}
			for _, seg := range segments[1 : len(segments)-1] {
				if seg != "" {
					merged = append(merged, seg)
				}
			}
			segments = append(merged, segments[len(segments)-1])
		}
	}

	resolved := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "..":
			if len(resolved) > 0 {
				resolved = resolved[:len(resolved)-1]
			}
		case ".":
		default:
			resolved = append(resolved, seg)
		}
	}

	if last := segments[len(segments)-1]; last == "." || last == ".." {
		resolved = append(resolved, "")
	}

	if p := strings.Join(resolved, "/"); p != "" {
		return p
	}
	return "/"
}
