// Package snippet projects raw hits into API-facing result records,
// picking the heading/content fragment most relevant to the query.
package snippet

import (
	"strings"
	"unicode/utf8"

	"github.com/astroseek/astroseek/internal/domain/search/hit"
)

// MaxContentLen is the display-snippet truncation threshold in characters.
const MaxContentLen = 200

// Ellipsis marks a truncated snippet.
const Ellipsis = "..."

// Record is the API-facing projection of one hit.
type Record struct {
	URL        string   `json:"url"`
	Favicon    string   `json:"favicon,omitempty"`
	Title      string   `json:"title"`
	Headings   string   `json:"headings,omitempty"`
	Content    string   `json:"content"`
	Filters    []string `json:"filters,omitempty"`
	Score      float64  `json:"score"`
	ClickCount int64    `json:"click_count"`
}

// decorationStripper removes the list-stringification artifacts carried by
// the headings/content fields (quotes and brackets from upstream naive
// serialization). The parsing contract is preserved as-is for index
// compatibility even though a native list encoding would be cleaner.
var decorationStripper = strings.NewReplacer("'", "", `"`, "", "[", "", "]", "")

// Project maps a scored hit into a result record. Headings are scanned for
// the first fragment containing the normalized query, which then overrides
// the title; the content snippet is chosen the same way and truncated.
func Project(h *hit.Hit, normalizedQuery string) Record {
	p := h.Page()

	title := p.Title()
	if over, ok := BestCandidate(p.Headings(), normalizedQuery); ok {
		title = over
	}

	content, ok := BestCandidate(p.Content(), normalizedQuery)
	if !ok {
		content = strings.TrimSpace(decorationStripper.Replace(p.Content()))
	}

	return Record{
		URL:        p.URL(),
		Favicon:    p.Favicon(),
		Title:      title,
		Headings:   p.Headings(),
		Content:    Truncate(content),
		Filters:    p.Filters(),
		Score:      h.Score(),
		ClickCount: p.ClickCount(),
	}
}

// BestCandidate strips list decoration from a serialized field, splits it
// into comma-separated candidates, and returns the first candidate
// containing the query (case-insensitive substring match).
func BestCandidate(serialized, normalizedQuery string) (string, bool) {
	if serialized == "" || normalizedQuery == "" {
		return "", false
	}
	stripped := decorationStripper.Replace(serialized)
	needle := strings.ToLower(normalizedQuery)

	for _, part := range strings.Split(stripped, ",") {
		candidate := strings.TrimSpace(part)
		if candidate == "" {
			continue
		}
		if strings.Contains(strings.ToLower(candidate), needle) {
			return candidate, true
		}
	}
	return "", false
}

// Truncate cuts display content at MaxContentLen characters, appending an
// ellipsis when anything was dropped. Counts runes, not bytes: multibyte
// content gets the full character budget and is never cut mid-rune.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxContentLen {
		return s
	}
	return string([]rune(s)[:MaxContentLen]) + Ellipsis
}
