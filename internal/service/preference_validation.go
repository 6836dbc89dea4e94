package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"reading-persona/internal/domain"
)

// PreferenceValidator aplica las reglas minimas sobre el onboarding.
type PreferenceValidator struct {
	validate *validator.Validate
}

func NewPreferenceValidator() *PreferenceValidator {
	return &PreferenceValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate devuelve *ValidationError (que envuelve ErrInvalidPreferences) si
// falta la seleccion minima, por ejemplo cero generos.
func (v *PreferenceValidator) Validate(p domain.PreferenceInput) error {
	err := v.validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field())+":"+fe.Tag())
	}
	return &ValidationError{Fields: fields}
}

// NormalizePreferences recorta espacios, pasa a minusculas las opciones y
// elimina vacios y duplicados. Los generos y libros conservan su forma.
func NormalizePreferences(p domain.PreferenceInput) domain.PreferenceInput {
	return domain.PreferenceInput{
		Genres:          normalizeList(p.Genres, false),
		Authors:         normalizeList(p.Authors, false),
		Difficulty:      normalizeOption(p.Difficulty),
		Moods:           normalizeList(p.Moods, true),
		Emotions:        normalizeList(p.Emotions, true),
		Themes:          normalizeList(p.Themes, true),
		NarrativeStyles: normalizeList(p.NarrativeStyles, true),
		Purposes:        normalizeList(p.Purposes, true),
		Length:          normalizeOption(p.Length),
		Pace:            normalizeOption(p.Pace),
		SelectedBookIDs: normalizeList(p.SelectedBookIDs, false),
	}
}

func normalizeOption(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeList(in []string, lower bool) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if lower {
			s = strings.ToLower(s)
		}
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
