package redis

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/astroseek/astroseek/internal/db"
)

func TestBuildTextQueryString(t *testing.T) {
	fields := []string{"title", "headings", "content"}

	cases := []struct {
		name string
		q    db.TextQuery
		want string
	}{
		{
			"should group over fields",
			db.TextQuery{Query: "mars rover", Fields: fields},
			"(@title:(mars rover) | @headings:(mars rover) | @content:(mars rover))",
		},
		{
			"filter plus text",
			db.TextQuery{Query: "mars", Fields: fields, FilterTag: "space"},
			"@filters:{space} (@title:(mars) | @headings:(mars) | @content:(mars))",
		},
		{
			"filter only",
			db.TextQuery{FilterTag: "space"},
			"@filters:{space}",
		},
		{
			"date window only",
			db.TextQuery{Dates: &db.TimeRange{From: 100, To: 200}},
			"@timestamp:[100 200]",
		},
		{
			"empty query matches all",
			db.TextQuery{},
			"*",
		},
		{
			"whitespace-only text matches all",
			db.TextQuery{Query: "   "},
			"*",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := buildTextQueryString(&c.q); got != c.want {
				t.Errorf("buildTextQueryString = %q, want %q", got, c.want)
			}
		})
	}
}

func TestBuildFilterString(t *testing.T) {
	got := buildFilterString("sci-fi", &db.TimeRange{From: 1577836800, To: 1609459199})
	want := `@filters:{sci\-fi} @timestamp:[1577836800 1609459199]`
	if got != want {
		t.Errorf("buildFilterString = %q, want %q", got, want)
	}

	if got := buildFilterString("", nil); got != "" {
		t.Errorf("expected empty filter string, got %q", got)
	}
}

func TestEscapeQuery(t *testing.T) {
	got := escapeQuery(`what's new (2021)`)
	want := `what\'s new \(2021\)`
	if got != want {
		t.Errorf("escapeQuery = %q, want %q", got, want)
	}
}

func TestVectorToBytes(t *testing.T) {
	v := []float32{1.5, -2.0}
	got := vectorToBytes(v)
	if len(got) != 8 {
		t.Fatalf("length = %d, want 8", len(got))
	}
	first := math.Float32frombits(binary.LittleEndian.Uint32([]byte(got)[:4]))
	second := math.Float32frombits(binary.LittleEndian.Uint32([]byte(got)[4:]))
	if first != 1.5 || second != -2.0 {
		t.Errorf("round-trip = %v, %v", first, second)
	}
}
