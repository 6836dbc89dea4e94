package service

import (
	"reflect"
	"testing"

	"reading-persona/internal/domain"
)

func vec(o, c, e, a, s int) domain.ScoreVector {
	return domain.ScoreVector{Openness: o, Conscientiousness: c, Extraversion: e, Agreeableness: a, EmotionalStability: s}
}

func TestRankTraitsTieBreakUsesCanonicalOrder(t *testing.T) {
	got := RankTraits(domain.BaselineVector())
	if !reflect.DeepEqual(got, domain.TraitOrder) {
		t.Fatalf("expected canonical order on full tie, got %v", got)
	}

	got = RankTraits(vec(50, 70, 50, 70, 90))
	want := []domain.Trait{
		domain.TraitEmotionalStability,
		domain.TraitConscientiousness,
		domain.TraitAgreeableness,
		domain.TraitOpenness,
		domain.TraitExtraversion,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResolvePersona(t *testing.T) {
	cases := []struct {
		name        string
		v           domain.ScoreVector
		title       string
		description string
	}{
		{
			name:        "baseline is default",
			v:           domain.BaselineVector(),
			title:       "Lector equilibrado",
			description: DefaultPersona().Description,
		},
		{
			name:        "moderate top trait is default",
			v:           vec(60, 58, 50, 50, 50),
			title:       "Lector equilibrado",
			description: DefaultPersona().Description,
		},
		{
			name:        "single high trait",
			v:           vec(50, 50, 75, 50, 50),
			title:       "Cazador de tramas trepidantes",
			description: *singleTraitRules[domain.TraitExtraversion].Description,
		},
		{
			name:        "combination overrides single rule fields it defines",
			v:           vec(80, 70, 50, 50, 50),
			title:       "Investigador intelectual",
			description: *singleTraitRules[domain.TraitOpenness].Description,
		},
		{
			name:        "tie on top uses priority for pair order",
			v:           vec(50, 70, 50, 70, 50),
			title:       "Crecimiento comprometido",
			description: *singleTraitRules[domain.TraitConscientiousness].Description,
		},
		{
			name:        "pair without combination keeps single rule",
			v:           vec(50, 50, 50, 65, 64),
			title:       "Conector empatico",
			description: *singleTraitRules[domain.TraitAgreeableness].Description,
		},
		{
			name:        "low stability top is single rule",
			v:           vec(10, 10, 10, 10, 90),
			title:       "Observador sereno",
			description: *singleTraitRules[domain.TraitEmotionalStability].Description,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolvePersona(tc.v)
			if got.Title != tc.title {
				t.Fatalf("expected title %q, got %q", tc.title, got.Title)
			}
			if got.Description != tc.description {
				t.Fatalf("expected description %q, got %q", tc.description, got.Description)
			}
			if !got.Complete() {
				t.Fatalf("expected complete persona, got %+v", got)
			}
		})
	}
}

func TestResolvePersonaIsTotal(t *testing.T) {
	steps := []int{0, 39, 40, 60, 61, 100}
	for _, o := range steps {
		for _, c := range steps {
			for _, e := range steps {
				for _, a := range steps {
					for _, s := range steps {
						p := ResolvePersona(vec(o, c, e, a, s))
						if !p.Complete() {
							t.Fatalf("incomplete persona for %v: %+v", vec(o, c, e, a, s), p)
						}
					}
				}
			}
		}
	}
}

func TestResolvePersonaDoesNotShareRuleSlices(t *testing.T) {
	p := ResolvePersona(vec(90, 50, 50, 50, 50))
	p.KeyTraits[0] = "mutado"
	if singleTraitRules[domain.TraitOpenness].KeyTraits[0] == "mutado" {
		t.Fatalf("persona shares KeyTraits with rule table")
	}
	if DefaultPersona().KeyTraits[0] == "mutado" {
		t.Fatalf("persona shares KeyTraits with default")
	}
}

func TestPersonaApplyPartialOverride(t *testing.T) {
	base := DefaultPersona()
	got := base.Apply(domain.PersonaPatch{Title: strPtr("Nuevo")})
	if got.Title != "Nuevo" {
		t.Fatalf("expected overridden title, got %q", got.Title)
	}
	if got.Icon != base.Icon || got.Subtitle != base.Subtitle || !reflect.DeepEqual(got.KeyTraits, base.KeyTraits) {
		t.Fatalf("expected unset fields to keep default values, got %+v", got)
	}
}
