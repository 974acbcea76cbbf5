// Package page holds the crawled-page aggregate stored in the search index.
package page

import (
	"crypto/sha1" //nolint:gosec // key derivation, not cryptography
	"encoding/hex"
	"fmt"
	"time"
)

// Page is an indexed web page (immutable value object).
//
// The URL is the stable identity: re-indexing the same URL replaces every
// field except click_count, which only the click-feedback updater mutates.
type Page struct {
	url        string
	favicon    string
	title      string
	headings   string
	content    string
	filters    []string
	clickCount int64
	timestamp  time.Time
	embedding  []float32
}

// New validates and creates a Page.
func New(
	url, favicon, title, headings, content string,
	filters []string, timestamp time.Time,
) (Page, error) {
	if url == "" {
		return Page{}, fmt.Errorf("page URL is required")
	}
	return Page{
		url:       url,
		favicon:   favicon,
		title:     title,
		headings:  headings,
		content:   content,
		filters:   cloneStrings(filters),
		timestamp: timestamp,
	}, nil
}

// Reconstruct creates a Page without validation (storage hydration).
func Reconstruct(
	url, favicon, title, headings, content string,
	filters []string, clickCount int64, timestamp time.Time, embedding []float32,
) Page {
	return Page{
		url: url, favicon: favicon, title: title, headings: headings,
		content: content, filters: filters, clickCount: clickCount,
		timestamp: timestamp, embedding: embedding,
	}
}

// Key returns the store document ID for a URL: hex SHA-1 of the exact URL.
// Exact-match by construction; two clicks on the same URL hit the same key.
func Key(url string) string {
	h := sha1.Sum([]byte(url)) //nolint:gosec
	return hex.EncodeToString(h[:])
}

// URL returns the page URL (unique identity).
func (p *Page) URL() string { return p.url }

// Favicon returns the favicon URL.
func (p *Page) Favicon() string { return p.favicon }

// Title returns the page title.
func (p *Page) Title() string { return p.title }

// Headings returns the serialized headings list.
func (p *Page) Headings() string { return p.headings }

// Content returns the serialized content passages.
func (p *Page) Content() string { return p.content }

// Filters returns the facet tags.
func (p *Page) Filters() []string { return p.filters }

// ClickCount returns the popularity counter.
func (p *Page) ClickCount() int64 { return p.clickCount }

// Timestamp returns the page date.
func (p *Page) Timestamp() time.Time { return p.timestamp }

// Embedding returns the content embedding vector (nil if not embedded).
func (p *Page) Embedding() []float32 { return p.embedding }

// WithEmbedding returns a copy with the given vector set.
func (p *Page) WithEmbedding(v []float32) Page {
	c := *p
	c.embedding = v
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
