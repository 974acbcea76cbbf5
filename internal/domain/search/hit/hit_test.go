package hit

import (
	"testing"
	"time"

	"github.com/astroseek/astroseek/internal/domain/page"
)

func mkHit(url string, clicks int64, score float64) Hit {
	p := page.Reconstruct(url, "", "t", "", "c", nil, clicks, time.Time{}, nil)
	return New(p, score)
}

func urls(hits []Hit) []string {
	out := make([]string, len(hits))
	for i := range hits {
		out[i] = hits[i].Page().URL()
	}
	return out
}

func TestSortLexical_ClicksDominateScore(t *testing.T) {
	hits := []Hit{
		mkHit("https://a", 0, 99.0),
		mkHit("https://b", 5, 1.0),
		mkHit("https://c", 2, 50.0),
	}
	SortLexical(hits)

	want := []string{"https://b", "https://c", "https://a"}
	for i, u := range urls(hits) {
		if u != want[i] {
			t.Fatalf("order = %v, want %v", urls(hits), want)
		}
	}
}

func TestSortLexical_ScoreBreaksClickTies(t *testing.T) {
	hits := []Hit{
		mkHit("https://low", 3, 1.0),
		mkHit("https://high", 3, 9.0),
	}
	SortLexical(hits)
	if hits[0].Page().URL() != "https://high" {
		t.Errorf("order = %v", urls(hits))
	}
}

func TestSortLexical_URLBreaksFullTies(t *testing.T) {
	hits := []Hit{
		mkHit("https://zzz", 1, 2.0),
		mkHit("https://aaa", 1, 2.0),
	}
	SortLexical(hits)
	if hits[0].Page().URL() != "https://aaa" {
		t.Errorf("order = %v", urls(hits))
	}
}

func TestSortSemantic(t *testing.T) {
	hits := []Hit{
		mkHit("https://b", 0, 1.3),
		mkHit("https://a", 9, 1.5), // clicks are irrelevant in semantic mode
		mkHit("https://c", 0, 1.5),
	}
	SortSemantic(hits)

	want := []string{"https://a", "https://c", "https://b"}
	for i, u := range urls(hits) {
		if u != want[i] {
			t.Fatalf("order = %v, want %v", urls(hits), want)
		}
	}
}

func TestWithScore(t *testing.T) {
	h := mkHit("https://a", 0, 1.0)
	rescored := h.WithScore(7.5)
	if h.Score() != 1.0 || rescored.Score() != 7.5 {
		t.Errorf("scores = %v, %v", h.Score(), rescored.Score())
	}
}
