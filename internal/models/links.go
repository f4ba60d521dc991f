package models

import "time"

// LinkSet is a set of absolute URLs that remembers insertion order.
// The zero value is not usable; create one with NewLinkSet.
type LinkSet struct {
	seen  map[string]struct{}
	order []string
}

// NewLinkSet returns an empty LinkSet
func NewLinkSet() *LinkSet {
	return &LinkSet{
		seen: make(map[string]struct{}),
	}
}

// Add inserts url into the set. It reports whether the url was new.
func (s *LinkSet) Add(url string) bool {
	if _, ok := s.seen[url]; ok {
		return false
	}
	s.seen[url] = struct{}{}
	s.order = append(s.order, url)
	return true
}

// Contains reports whether url is in the set
func (s *LinkSet) Contains(url string) bool {
	_, ok := s.seen[url]
	return ok
}

// Len returns the number of unique URLs
func (s *LinkSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// IsEmpty reports whether the set holds no URLs. A nil set is empty.
func (s *LinkSet) IsEmpty() bool {
	return s.Len() == 0
}

// URLs returns a copy of the set's members in insertion order
func (s *LinkSet) URLs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// FetchResult is the outcome of fetching one page and extracting its links
type FetchResult struct {
	Domain     string    `json:"domain"`
	StatusCode int       `json:"status_code"`
	URLs       *LinkSet  `json:"-"`
	FetchedAt  time.Time `json:"fetched_at"`
	Err        error     `json:"-"`
}

// Failed reports whether the fetch or the extraction failed
func (r FetchResult) Failed() bool {
	return r.Err != nil
}

// Empty reports whether the fetch succeeded but found no links
func (r FetchResult) Empty() bool {
	return r.Err == nil && r.URLs.IsEmpty()
}
