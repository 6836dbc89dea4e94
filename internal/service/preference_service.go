package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"reading-persona/internal/domain"
	"reading-persona/internal/repository"
)

var genreCatalog = []domain.Genre{
	{ID: "novel", Name: "Novela", Icon: "📖", Description: "Ficcion literaria, novelas y cuentos"},
	{ID: "poetry", Name: "Poesia", Icon: "✍️", Description: "Poemarios y comentarios de poesia"},
	{ID: "essay", Name: "Ensayo", Icon: "📝", Description: "Prosa, ensayos y columnas"},
	{ID: "self-help", Name: "Desarrollo personal", Icon: "💪", Description: "Exito, motivacion y habitos"},
	{ID: "science", Name: "Ciencia", Icon: "🔬", Description: "Fisica, quimica, biologia y espacio"},
	{ID: "history", Name: "Historia", Icon: "📜", Description: "Historia local, universal y biografias"},
	{ID: "philosophy", Name: "Filosofia", Icon: "🤔", Description: "Pensamiento, etica y logica"},
	{ID: "art", Name: "Arte", Icon: "🎨", Description: "Pintura, musica y cine"},
	{ID: "economy", Name: "Economia y negocios", Icon: "💼", Description: "Finanzas, inversion y gestion"},
	{ID: "tech", Name: "Tecnologia", Icon: "💻", Description: "Programacion y tendencias tecnologicas"},
	{ID: "travel", Name: "Viajes", Icon: "✈️", Description: "Cronicas de viaje y guias"},
	{ID: "cooking", Name: "Cocina", Icon: "🍳", Description: "Recetas y ensayos gastronomicos"},
}

// Genres devuelve una copia del catalogo fijo de generos del onboarding.
func Genres() []domain.Genre {
	return append([]domain.Genre(nil), genreCatalog...)
}

// OnboardingStatus resume en que punto del onboarding esta el usuario.
type OnboardingStatus struct {
	Completed bool `json:"onboarding_completed"`
	HasReport bool `json:"has_report"`
}

// PreferenceService guarda y consulta las respuestas del onboarding.
type PreferenceService struct {
	prefs     repository.PreferenceRepository
	reports   repository.ReportRepository
	books     repository.BookLookup
	validator *PreferenceValidator
	logger    *zap.Logger
	now       func() time.Time
}

// NewPreferenceService acepta books y reports nil; en ese caso no se derivan
// autores ni se informa si existe reporte.
func NewPreferenceService(prefs repository.PreferenceRepository, reports repository.ReportRepository, books repository.BookLookup, logger *zap.Logger) *PreferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{
		prefs:     prefs,
		reports:   reports,
		books:     books,
		validator: NewPreferenceValidator(),
		logger:    logger,
		now:       time.Now,
	}
}

// SavePreferences normaliza, valida y guarda las respuestas del onboarding.
// Si vienen libros elegidos y no hay autores, los autores salen de esos libros.
func (s *PreferenceService) SavePreferences(ctx context.Context, userID string, input domain.PreferenceInput) (domain.UserPreferences, error) {
	if s == nil || s.prefs == nil {
		return domain.UserPreferences{}, ErrServiceNotConfigured
	}
	p := NormalizePreferences(input)
	if err := s.validator.Validate(p); err != nil {
		return domain.UserPreferences{}, err
	}

	if len(p.Authors) == 0 && len(p.SelectedBookIDs) > 0 && s.books != nil {
		books, err := s.books.FindByIDs(ctx, p.SelectedBookIDs)
		if err != nil {
			s.logger.Warn("book lookup failed, saving without authors", zap.String("user_id", userID), zap.Error(err))
		}
		p.Authors = authorsOf(books)
	}

	up := domain.UserPreferences{
		UserID:              userID,
		Preferences:         p,
		OnboardingCompleted: true,
		UpdatedAt:           s.now().UTC(),
	}
	if err := s.prefs.Upsert(ctx, up); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("save preferences: %w", err)
	}
	s.logger.Info("preferences saved",
		zap.String("user_id", userID),
		zap.Int("genres", len(p.Genres)),
		zap.Int("authors", len(p.Authors)),
	)
	return up, nil
}

// Status informa si el onboarding esta completo y si ya hay reporte generado.
func (s *PreferenceService) Status(ctx context.Context, userID string) (OnboardingStatus, error) {
	if s == nil || s.prefs == nil {
		return OnboardingStatus{}, ErrServiceNotConfigured
	}
	var status OnboardingStatus
	up, err := s.prefs.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return status, nil
	case err != nil:
		return status, fmt.Errorf("load preferences: %w", err)
	}
	status.Completed = up.OnboardingCompleted

	if s.reports != nil {
		_, err := s.reports.GetByUserID(ctx, userID)
		switch {
		case err == nil:
			status.HasReport = true
		case !errors.Is(err, repository.ErrNotFound):
			s.logger.Warn("report lookup failed for status", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return status, nil
}

func authorsOf(books []domain.SelectedBook) []string {
	seen := make(map[string]struct{}, len(books))
	var out []string
	for _, b := range books {
		if b.Author == "" {
			continue
		}
		if _, ok := seen[b.Author]; ok {
			continue
		}
		seen[b.Author] = struct{}{}
		out = append(out, b.Author)
	}
	return out
}
