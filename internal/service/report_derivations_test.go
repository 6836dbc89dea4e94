package service

import (
	"testing"

	"reading-persona/internal/domain"
)

func TestBuildRadarChart(t *testing.T) {
	points := BuildRadarChart(vec(10, 20, 30, 40, 50))
	if len(points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(points))
	}
	for i, p := range points {
		if p.Trait != domain.TraitOrder[i] || p.Value != (i+1)*10 || p.FullMark != 100 || p.Subject == "" {
			t.Fatalf("unexpected point %d: %+v", i, p)
		}
	}
}

func TestDeriveReadingDNABounds(t *testing.T) {
	empty := DeriveReadingDNA(domain.PreferenceInput{}, domain.BaselineVector())
	if len(empty) != minDNAItems {
		t.Fatalf("expected fillers up to %d items, got %d", minDNAItems, len(empty))
	}

	rich := domain.PreferenceInput{
		Genres:          []string{"novel", "poetry", "essay", "history"},
		Moods:           []string{"philosophical"},
		Emotions:        []string{"joy", "fear", "empathy"},
		Themes:          []string{"growth"},
		NarrativeStyles: []string{"philosophical"},
		Pace:            "slow",
	}
	got := DeriveReadingDNA(rich, vec(90, 50, 50, 90, 20))
	if len(got) != maxDNAItems {
		t.Fatalf("expected %d items, got %d", maxDNAItems, len(got))
	}
	if got[0].Title != "Buscador de ideas" {
		t.Fatalf("expected rules in order, got %q first", got[0].Title)
	}
}

func TestDeriveReadingStyleSumsToHundred(t *testing.T) {
	vectors := []domain.ScoreVector{
		domain.BaselineVector(),
		vec(0, 0, 0, 0, 0),
		vec(100, 33, 33, 0, 0),
		vec(71, 64, 58, 12, 90),
	}
	for _, v := range vectors {
		style := DeriveReadingStyle(v)
		total := style.MainStyle.Percentage
		for _, s := range style.SubStyles {
			total += s.Percentage
			if s.Percentage > style.MainStyle.Percentage {
				t.Fatalf("sub style above main for %+v: %+v", v, style)
			}
		}
		if total != 100 {
			t.Fatalf("expected 100%% for %+v, got %d", v, total)
		}
		if len(style.SubStyles) != 2 {
			t.Fatalf("expected 2 sub styles, got %d", len(style.SubStyles))
		}
	}
}

func TestDeriveReadingDirections(t *testing.T) {
	got := DeriveReadingDirections(vec(90, 80, 30, 50, 70))
	if len(got) != 3 {
		t.Fatalf("expected 3 directions, got %d", len(got))
	}
	if got[0].Category != deepenDirections[domain.TraitOpenness].Category {
		t.Fatalf("expected to deepen openness first, got %q", got[0].Category)
	}
	if got[1].Category != broadenDirections[domain.TraitExtraversion].Category {
		t.Fatalf("expected to broaden lowest trait, got %q", got[1].Category)
	}
	if got[2].Category != broadenDirections[domain.TraitAgreeableness].Category {
		t.Fatalf("expected agreeableness next, got %q", got[2].Category)
	}

	allHigh := DeriveReadingDirections(vec(90, 90, 90, 90, 90))
	if len(allHigh) != 1 {
		t.Fatalf("expected only the deepen direction when all traits are high, got %d", len(allHigh))
	}

	got[0].Examples[0] = "mutado"
	if deepenDirections[domain.TraitOpenness].Examples[0] == "mutado" {
		t.Fatalf("direction shares examples with rule table")
	}
}

func TestDeriveGrowthPotential(t *testing.T) {
	cases := []struct {
		genres int
		scope  string
	}{
		{0, "narrow"}, {2, "narrow"}, {3, "moderate"}, {4, "moderate"}, {5, "diverse"},
	}
	for _, tc := range cases {
		p := domain.PreferenceInput{Genres: make([]string, tc.genres)}
		g := DeriveGrowthPotential(p, vec(90, 50, 10, 50, 20))
		if g.CurrentScope != tc.scope {
			t.Fatalf("genres=%d: expected scope %s, got %s", tc.genres, tc.scope, g.CurrentScope)
		}
		if len(g.Challenges) != 3 || len(g.Suggestions) != 2 {
			t.Fatalf("unexpected growth lists %+v", g)
		}
		if g.Suggestions[0] != growthSuggestionByTrait[domain.TraitExtraversion] {
			t.Fatalf("expected lowest trait suggestion first, got %q", g.Suggestions[0])
		}
	}
}

func TestComputeStatistics(t *testing.T) {
	stats := ComputeStatistics(domain.PreferenceInput{
		Genres:   []string{"novel", "poetry"},
		Moods:    []string{"dark"},
		Emotions: []string{"fear", "joy", "sadness"},
		Pace:     "slow",
	})
	want := domain.ReportStatistics{
		TotalResponses: 4,
		DiversityScore: 30,
		ClarityScore:   44,
		CompletionRate: 44,
	}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}

	empty := ComputeStatistics(domain.PreferenceInput{})
	if empty != (domain.ReportStatistics{}) {
		t.Fatalf("expected zero stats, got %+v", empty)
	}
}
