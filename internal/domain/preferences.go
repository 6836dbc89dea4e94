package domain

import "time"

// PreferenceInput son las selecciones del onboarding de un usuario.
// Las claves ausentes no aportan nada al puntaje.
type PreferenceInput struct {
	Genres          []string `json:"preferred_genres" validate:"required,min=1,dive,required"`
	Authors         []string `json:"preferred_authors,omitempty"`
	Difficulty      string   `json:"preferred_difficulty,omitempty"`
	Moods           []string `json:"preferred_moods,omitempty"`
	Emotions        []string `json:"preferred_emotions,omitempty"`
	Themes          []string `json:"preferred_themes,omitempty"`
	NarrativeStyles []string `json:"narrative_styles,omitempty"`
	Purposes        []string `json:"reading_purposes,omitempty"`
	Length          string   `json:"preferred_length,omitempty"`
	Pace            string   `json:"reading_pace,omitempty"`
	SelectedBookIDs []string `json:"selected_book_ids,omitempty"`
}

// UserPreferences es el registro persistido del onboarding.
type UserPreferences struct {
	UserID              string          `json:"user_id"`
	Preferences         PreferenceInput `json:"preferences"`
	OnboardingCompleted bool            `json:"onboarding_completed"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Genre es una opcion del catalogo de generos del onboarding.
type Genre struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}
