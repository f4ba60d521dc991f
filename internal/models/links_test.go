package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkSetAdd(t *testing.T) {
	s := NewLinkSet()

	assert.True(t, s.Add("https://example.com/a"))
	assert.True(t, s.Add("https://example.com/b"))
	assert.False(t, s.Add("https://example.com/a"))

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("https://example.com/b"))
	assert.False(t, s.Contains("https://example.com/c"))
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, s.URLs())
}

func TestLinkSetURLsIsACopy(t *testing.T) {
	s := NewLinkSet()
	s.Add("https://example.com/")

	urls := s.URLs()
	urls[0] = "mutated"

	assert.Equal(t, []string{"https://example.com/"}, s.URLs())
}

func TestLinkSetNil(t *testing.T) {
	var s *LinkSet

	assert.Equal(t, 0, s.Len())
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.URLs())
}

func TestFetchResult(t *testing.T) {
	failed := FetchResult{Domain: "https://example.com/", URLs: NewLinkSet(), Err: errors.New("boom")}
	assert.True(t, failed.Failed())
	assert.False(t, failed.Empty())

	empty := FetchResult{Domain: "https://example.com/", URLs: NewLinkSet()}
	assert.False(t, empty.Failed())
	assert.True(t, empty.Empty())

	full := FetchResult{Domain: "https://example.com/", URLs: NewLinkSet()}
	full.URLs.Add("https://example.com/about")
	assert.False(t, full.Failed())
	assert.False(t, full.Empty())
}
