package domain

import (
	"net/http"
	"time"
)

// Block is one content fragment of a fetched document, keyed by the CSS
// selector of the container it replaces.
type Block struct {
	Container string `json:"container" yaml:"container" msgpack:"container"`
	HTML      string `json:"html" yaml:"html" msgpack:"html"`
}

// PageRecord represents one fetched document. It is created by the fetcher,
// read by the render phase, and treated as immutable once stored in a cache.
type PageRecord struct {
	// URL is the canonical resolved address. It is the cache key, and after
	// a redirect it reflects the final address, not the requested one.
	URL string `json:"url" yaml:"url" msgpack:"url"`

	// ResponseURL is the address the server ultimately answered from.
	// Equal to URL when no redirect occurred.
	ResponseURL string `json:"response_url" yaml:"response_url" msgpack:"response_url"`

	Title  string  `json:"title" yaml:"title" msgpack:"title"`
	Blocks []Block `json:"blocks" yaml:"blocks" msgpack:"blocks"`

	Status int         `json:"status" yaml:"status" msgpack:"status"`
	Header http.Header `json:"header,omitempty" yaml:"header,omitempty" msgpack:"header"`

	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at" msgpack:"fetched_at"`
}

// Redirected reports whether the record was served from a different address
// than the one it was requested under.
func (p *PageRecord) Redirected() bool {
	return p.ResponseURL != "" && p.ResponseURL != p.URL
}

// Clone returns a deep copy so cache adapters can hand out records without
// sharing mutable slices with callers.
func (p *PageRecord) Clone() *PageRecord {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Blocks = make([]Block, len(p.Blocks))
	copy(cp.Blocks, p.Blocks)
	if p.Header != nil {
		cp.Header = p.Header.Clone()
	}
	return &cp
}
