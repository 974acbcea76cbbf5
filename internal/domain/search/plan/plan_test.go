package plan

import (
	"math"
	"testing"
	"time"
)

func TestYearRange(t *testing.T) {
	tr, err := YearRange("2020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantFrom := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	wantTo := time.Date(2020, 12, 31, 23, 59, 59, 0, time.UTC).Unix()
	if tr.From != wantFrom || tr.To != wantTo {
		t.Errorf("range = [%d, %d], want [%d, %d]", tr.From, tr.To, wantFrom, wantTo)
	}
}

func TestYearRange_Empty(t *testing.T) {
	tr, err := YearRange("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr != nil {
		t.Errorf("expected nil range for empty year, got %+v", tr)
	}
}

func TestBoosts_FieldWeights(t *testing.T) {
	cases := []struct {
		name     string
		title    string
		headings string
		content  string
		want     float64
	}{
		{"title only", "mars rover", "", "", TitleWeight},
		{"headings only", "", "about mars", "", HeadingsWeight},
		{"content only", "", "", "pictures from mars", ContentWeight},
		{"all fields", "mars", "mars", "mars", TitleWeight + HeadingsWeight + ContentWeight},
		{"no match", "venus", "jupiter", "saturn", 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Boosts(c.title, c.headings, c.content, nil, "mars", "")
			if got != c.want {
				t.Errorf("Boosts = %v, want %v", got, c.want)
			}
		})
	}
}

func TestBoosts_WeightOrdering(t *testing.T) {
	title := Boosts("mars", "", "", nil, "mars", "")
	headings := Boosts("", "mars", "", nil, "mars", "")
	content := Boosts("", "", "mars", nil, "mars", "")
	if !(title > headings && headings > content) {
		t.Errorf("expected title > headings > content, got %v, %v, %v", title, headings, content)
	}
}

func TestBoosts_TagBoosts(t *testing.T) {
	filters := []string{"space-head", "space-cont", "misc"}

	got := Boosts("", "", "", filters, "", "space")
	if got != TagHeadWeight+TagContWeight {
		t.Errorf("tag boosts = %v, want %v", got, TagHeadWeight+TagContWeight)
	}

	// A head-tagged document outweighs a full field match across all fields.
	headOnly := Boosts("", "", "", []string{"space-head"}, "", "space")
	allFields := Boosts("mars", "mars", "mars", nil, "mars", "")
	if headOnly <= allFields {
		t.Errorf("expected head tag (%v) to outweigh field matches (%v)", headOnly, allFields)
	}

	// No tag boost without the facet filter set.
	if got := Boosts("", "", "", filters, "", ""); got != 1 {
		t.Errorf("expected neutral multiplier without filter, got %v", got)
	}
}

func TestBoosts_CaseInsensitiveFieldMatch(t *testing.T) {
	if got := Boosts("Mars Rover Landing", "", "", nil, "mars", ""); got != TitleWeight {
		t.Errorf("Boosts = %v, want %v", got, TitleWeight)
	}
}

func TestSemanticScore(t *testing.T) {
	if got := SemanticScore(0); got != 2.0 {
		t.Errorf("SemanticScore(0) = %v, want 2.0", got)
	}
	if got := SemanticScore(1); got != 1.0 {
		t.Errorf("SemanticScore(1) = %v, want 1.0", got)
	}
	// Distance 0.76 sits exactly at the floor.
	if got := SemanticScore(0.76); math.Abs(got-SemanticMinScore) > 1e-9 {
		t.Errorf("SemanticScore(0.76) = %v, want %v", got, SemanticMinScore)
	}
}
