package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"reading-persona/internal/domain"
	"reading-persona/internal/repository"
)

func TestPreferenceValidatorRequiresGenres(t *testing.T) {
	v := NewPreferenceValidator()

	if err := v.Validate(domain.PreferenceInput{Genres: []string{"novel"}}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	cases := map[string]domain.PreferenceInput{
		"missing genres": {Moods: []string{"dark"}},
		"empty genres":   {Genres: []string{}},
		"blank genre":    {Genres: []string{""}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			err := v.Validate(p)
			if !errors.Is(err, ErrInvalidPreferences) {
				t.Fatalf("expected ErrInvalidPreferences, got %v", err)
			}
		})
	}
}

func TestNormalizePreferences(t *testing.T) {
	got := NormalizePreferences(domain.PreferenceInput{
		Genres:     []string{" novel ", "novel", "", "Science"},
		Difficulty: " Challenging ",
		Moods:      []string{"Dark", "dark ", " "},
		Pace:       "SLOW",
	})
	if !reflect.DeepEqual(got.Genres, []string{"novel", "Science"}) {
		t.Fatalf("unexpected genres %v", got.Genres)
	}
	if got.Difficulty != "challenging" || got.Pace != "slow" {
		t.Fatalf("unexpected single options %q %q", got.Difficulty, got.Pace)
	}
	if !reflect.DeepEqual(got.Moods, []string{"dark"}) {
		t.Fatalf("unexpected moods %v", got.Moods)
	}
	if got.Themes != nil {
		t.Fatalf("expected nil themes, got %v", got.Themes)
	}
}

func TestSavePreferencesDerivesAuthorsFromBooks(t *testing.T) {
	prefs := repository.NewMemoryPreferenceRepository()
	books := repository.StaticBookLookup{
		"b1": {ID: "b1", Author: "Borges"},
		"b2": {ID: "b2", Author: "Borges"},
		"b3": {ID: "b3", Author: "Ocampo"},
	}
	svc := NewPreferenceService(prefs, nil, books, zap.NewNop())

	saved, err := svc.SavePreferences(context.Background(), "u1", domain.PreferenceInput{
		Genres:          []string{"novel"},
		Moods:           []string{"Dark"},
		SelectedBookIDs: []string{"b1", "b2", "b3"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !saved.OnboardingCompleted || saved.UpdatedAt.IsZero() {
		t.Fatalf("expected completed onboarding, got %+v", saved)
	}
	if !reflect.DeepEqual(saved.Preferences.Authors, []string{"Borges", "Ocampo"}) {
		t.Fatalf("unexpected authors %v", saved.Preferences.Authors)
	}

	stored, err := prefs.GetByUserID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(stored.Preferences.Moods, []string{"dark"}) {
		t.Fatalf("expected normalized moods stored, got %v", stored.Preferences.Moods)
	}
}

func TestSavePreferencesRejectsInvalidInput(t *testing.T) {
	prefs := repository.NewMemoryPreferenceRepository()
	svc := NewPreferenceService(prefs, nil, nil, zap.NewNop())

	_, err := svc.SavePreferences(context.Background(), "u1", domain.PreferenceInput{Genres: []string{"  "}})
	if !errors.Is(err, ErrInvalidPreferences) {
		t.Fatalf("expected ErrInvalidPreferences, got %v", err)
	}
	if _, err := prefs.GetByUserID(context.Background(), "u1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected nothing stored, got %v", err)
	}
}

func TestOnboardingStatus(t *testing.T) {
	ctx := context.Background()
	prefs := repository.NewMemoryPreferenceRepository()
	reports := repository.NewMemoryReportRepository()
	svc := NewPreferenceService(prefs, reports, nil, zap.NewNop())

	status, err := svc.Status(ctx, "u1")
	if err != nil || status.Completed || status.HasReport {
		t.Fatalf("expected empty status, got %+v (%v)", status, err)
	}

	if _, err := svc.SavePreferences(ctx, "u1", domain.PreferenceInput{Genres: []string{"novel"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	status, _ = svc.Status(ctx, "u1")
	if !status.Completed || status.HasReport {
		t.Fatalf("expected completed without report, got %+v", status)
	}

	_ = reports.Upsert(ctx, domain.Report{ID: "r1", UserID: "u1"})
	status, _ = svc.Status(ctx, "u1")
	if !status.Completed || !status.HasReport {
		t.Fatalf("expected completed with report, got %+v", status)
	}
}

func TestGenresReturnsCopy(t *testing.T) {
	g := Genres()
	if len(g) != 12 {
		t.Fatalf("expected 12 genres, got %d", len(g))
	}
	g[0].Name = "mutado"
	if Genres()[0].Name == "mutado" {
		t.Fatalf("catalog mutated through returned slice")
	}
}
