package plan

import (
	"testing"

	"github.com/astroseek/astroseek/internal/domain/search/mode"
	"github.com/astroseek/astroseek/internal/domain/search/query"
)

func TestBuild_Lexical(t *testing.T) {
	q, err := query.New("The Mars Rover", "space", "2021", 5, 10, mode.Lexical)
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	lex, sem, err := Build(&q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sem != nil {
		t.Fatal("semantic plan must be nil for lexical mode")
	}
	if lex == nil {
		t.Fatal("expected lexical plan")
	}
	if lex.Text != "mars rover" {
		t.Errorf("Text = %q, want %q", lex.Text, "mars rover")
	}
	if lex.FilterTag != "space" || lex.Skip != 5 || lex.Limit != 10 {
		t.Errorf("plan = %+v", lex)
	}
	if lex.Dates == nil {
		t.Fatal("expected date window for year filter")
	}
}

func TestBuild_Semantic(t *testing.T) {
	q, err := query.New("mars rover", "", "", 0, 10, mode.Semantic)
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	lex, sem, err := Build(&q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lex != nil {
		t.Fatal("lexical plan must be nil for semantic mode")
	}
	if sem == nil {
		t.Fatal("expected semantic plan")
	}
	if sem.Dates != nil {
		t.Errorf("expected no date window, got %+v", sem.Dates)
	}
}
