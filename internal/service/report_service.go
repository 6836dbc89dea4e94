package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"reading-persona/internal/domain"
	"reading-persona/internal/repository"
)

// ReportObserver recibe la telemetria de cada generacion.
type ReportObserver interface {
	ObserveGeneration(d time.Duration, outcome string)
	NarrativeDegraded(reason string)
	PersistenceDegraded()
}

type noopObserver struct{}

func (noopObserver) ObserveGeneration(time.Duration, string) {}
func (noopObserver) NarrativeDegraded(string)               {}
func (noopObserver) PersistenceDegraded()                   {}

// ReportOutcome es el reporte generado mas los caminos degradados que se tomaron.
// Ninguna degradacion es un error: el reporte siempre esta completo.
type ReportOutcome struct {
	Report              domain.Report
	NarrativeDegraded   bool
	PersistenceDegraded bool
}

// ReportService orquesta puntaje, perfil, persona, narrativa y persistencia.
type ReportService struct {
	prefs     repository.PreferenceRepository
	reports   repository.ReportRepository
	augmenter NarrativeAugmenter
	validator *PreferenceValidator
	logger    *zap.Logger

	books    repository.BookLookup
	similar  repository.SimilarReaderFinder
	limiter  RateLimiter
	observer ReportObserver
	now      func() time.Time
	newID    func() string
}

// ReportServiceOption configura colaboradores opcionales.
type ReportServiceOption func(*ReportService)

func WithBookLookup(b repository.BookLookup) ReportServiceOption {
	return func(s *ReportService) { s.books = b }
}

func WithSimilarReaderFinder(f repository.SimilarReaderFinder) ReportServiceOption {
	return func(s *ReportService) { s.similar = f }
}

func WithRegenerateLimiter(l RateLimiter) ReportServiceOption {
	return func(s *ReportService) { s.limiter = l }
}

func WithReportObserver(o ReportObserver) ReportServiceOption {
	return func(s *ReportService) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithClock fija reloj y generador de ids (tests).
func WithClock(now func() time.Time, newID func() string) ReportServiceOption {
	return func(s *ReportService) {
		if now != nil {
			s.now = now
		}
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewReportService(prefs repository.PreferenceRepository, reports repository.ReportRepository, augmenter NarrativeAugmenter, logger *zap.Logger, opts ...ReportServiceOption) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ReportService{
		prefs:     prefs,
		reports:   reports,
		augmenter: augmenter,
		validator: NewPreferenceValidator(),
		logger:    logger,
		observer:  noopObserver{},
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateReport arma el reporte del usuario y lo guarda reemplazando el anterior.
// Solo falla si no hay preferencias, si son invalidas o si ctx se cancela antes de
// persistir; en ese ultimo caso no se guarda nada.
func (s *ReportService) GenerateReport(ctx context.Context, userID string, selectedBookIDs []string) (ReportOutcome, error) {
	if s == nil || s.prefs == nil || s.reports == nil || s.augmenter == nil {
		return ReportOutcome{}, ErrServiceNotConfigured
	}
	p, err := s.loadPreferences(ctx, userID)
	if err != nil {
		return ReportOutcome{}, err
	}
	return s.generate(ctx, userID, p, selectedBookIDs)
}

// loadPreferences trae y valida las preferencias guardadas del usuario.
func (s *ReportService) loadPreferences(ctx context.Context, userID string) (domain.PreferenceInput, error) {
	up, err := s.prefs.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.PreferenceInput{}, ErrPreferencesNotFound
	}
	if err != nil {
		return domain.PreferenceInput{}, fmt.Errorf("load preferences: %w", err)
	}
	if err := s.validator.Validate(up.Preferences); err != nil {
		return domain.PreferenceInput{}, err
	}
	return up.Preferences, nil
}

func (s *ReportService) generate(ctx context.Context, userID string, p domain.PreferenceInput, selectedBookIDs []string) (ReportOutcome, error) {
	start := s.now()

	scores := ScorePreferences(p)
	profile := LevelProfile(scores)
	persona := ResolvePersona(scores)

	report := domain.Report{
		UserID:     userID,
		Version:    domain.ReportVersion,
		Scores:     scores,
		Profile:    profile,
		Persona:    persona,
		RadarChart: BuildRadarChart(scores),
		Statistics: ComputeStatistics(p),
	}

	bookIDs := selectedBookIDs
	if len(bookIDs) == 0 {
		bookIDs = p.SelectedBookIDs
	}

	var (
		narrative NarrativeResult
		g         errgroup.Group
	)
	g.Go(func() error {
		narrative = s.augmenter.Augment(ctx, NarrativeInput{
			Scores:      scores,
			Profile:     profile,
			Persona:     persona,
			Preferences: p,
		})
		return nil
	})
	g.Go(func() error {
		report.ReadingDNA = DeriveReadingDNA(p, scores)
		report.ReadingStyle = DeriveReadingStyle(scores)
		report.ReadingDirections = DeriveReadingDirections(scores)
		report.GrowthPotential = DeriveGrowthPotential(p, scores)
		return nil
	})
	g.Go(func() error {
		report.SelectedBooks = s.lookupBooks(ctx, userID, bookIDs)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		s.observer.ObserveGeneration(s.now().Sub(start), "canceled")
		s.logger.Info("report generation canceled, discarding", zap.String("user_id", userID))
		return ReportOutcome{}, err
	}

	report.ID = s.newID()
	report.CreatedAt = s.now().UTC()
	report.Summary = narrative.Summary
	report.Closing = narrative.Closing
	report.NarrativeSource = domain.NarrativeSourceGenerated
	if narrative.Degraded {
		report.NarrativeSource = domain.NarrativeSourceFallback
		s.observer.NarrativeDegraded(narrative.Reason)
	}

	outcome := ReportOutcome{Report: report, NarrativeDegraded: narrative.Degraded}

	if err := s.reports.Upsert(ctx, outcome.Report); err != nil {
		outcome.PersistenceDegraded = true
		s.observer.PersistenceDegraded()
		s.logger.Warn("report persistence failed, returning unsaved report",
			zap.String("user_id", userID),
			zap.String("report_id", report.ID),
			zap.Error(err),
		)
	}

	result := "ok"
	if outcome.NarrativeDegraded || outcome.PersistenceDegraded {
		result = "degraded"
	}
	s.observer.ObserveGeneration(s.now().Sub(start), result)
	s.logger.Info("report generated",
		zap.String("user_id", userID),
		zap.String("report_id", report.ID),
		zap.String("persona", persona.Title),
		zap.Bool("narrative_degraded", outcome.NarrativeDegraded),
		zap.Bool("persistence_degraded", outcome.PersistenceDegraded),
	)
	return outcome, nil
}

// RegenerateReport repite la generacion, limitada por usuario. El limite se
// consume recien despues de verificar que hay preferencias validas.
func (s *ReportService) RegenerateReport(ctx context.Context, userID string, selectedBookIDs []string) (ReportOutcome, error) {
	if s == nil || s.prefs == nil || s.reports == nil || s.augmenter == nil {
		return ReportOutcome{}, ErrServiceNotConfigured
	}
	p, err := s.loadPreferences(ctx, userID)
	if err != nil {
		return ReportOutcome{}, err
	}
	if s.limiter != nil && !s.limiter.Allow(ctx, userID) {
		return ReportOutcome{}, ErrRateLimited
	}
	return s.generate(ctx, userID, p, selectedBookIDs)
}

// GetReport devuelve el ultimo reporte guardado.
func (s *ReportService) GetReport(ctx context.Context, userID string) (domain.Report, error) {
	if s == nil || s.reports == nil {
		return domain.Report{}, ErrServiceNotConfigured
	}
	report, err := s.reports.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Report{}, ErrReportNotFound
	}
	if err != nil {
		return domain.Report{}, fmt.Errorf("load report: %w", err)
	}
	return report, nil
}

// FindSimilarReaders busca los k lectores con puntajes mas cercanos al reporte guardado.
func (s *ReportService) FindSimilarReaders(ctx context.Context, userID string, k int) ([]domain.SimilarReader, error) {
	if s == nil || s.similar == nil {
		return nil, ErrServiceNotConfigured
	}
	report, err := s.GetReport(ctx, userID)
	if err != nil {
		return nil, err
	}
	readers, err := s.similar.FindSimilar(ctx, userID, report.Scores, k)
	if err != nil {
		return nil, fmt.Errorf("find similar readers: %w", err)
	}
	return readers, nil
}

func (s *ReportService) lookupBooks(ctx context.Context, userID string, ids []string) []domain.SelectedBook {
	if s.books == nil || len(ids) == 0 {
		return nil
	}
	books, err := s.books.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("book lookup failed, omitting selected books", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return books
}
