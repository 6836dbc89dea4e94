package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reading-persona/internal/domain"
)

// PreferenceRepository define el contrato de persistencia del onboarding.
type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID string) (domain.UserPreferences, error)
	Upsert(ctx context.Context, prefs domain.UserPreferences) error
}

// PgPreferenceRepository implementa PreferenceRepository usando pgxpool.
type PgPreferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPgPreferenceRepository(pool *pgxpool.Pool) *PgPreferenceRepository {
	return &PgPreferenceRepository{pool: pool}
}

func (r *PgPreferenceRepository) GetByUserID(ctx context.Context, userID string) (domain.UserPreferences, error) {
	const query = `
		SELECT user_id, preferences, onboarding_completed, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`
	var (
		up  domain.UserPreferences
		raw []byte
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&up.UserID,
		&raw,
		&up.OnboardingCompleted,
		&up.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.UserPreferences{}, ErrNotFound
	}
	if err != nil {
		return domain.UserPreferences{}, err
	}
	if err := json.Unmarshal(raw, &up.Preferences); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return up, nil
}

func (r *PgPreferenceRepository) Upsert(ctx context.Context, prefs domain.UserPreferences) error {
	raw, err := json.Marshal(prefs.Preferences)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	const query = `
		INSERT INTO user_preferences (user_id, preferences, onboarding_completed, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			preferences = EXCLUDED.preferences,
			onboarding_completed = EXCLUDED.onboarding_completed,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.pool.Exec(ctx, query,
		prefs.UserID,
		raw,
		prefs.OnboardingCompleted,
		prefs.UpdatedAt,
	)
	return err
}

// MemoryPreferenceRepository guarda preferencias en memoria (CLI y tests).
type MemoryPreferenceRepository struct {
	mu    sync.RWMutex
	prefs map[string]domain.UserPreferences
}

func NewMemoryPreferenceRepository() *MemoryPreferenceRepository {
	return &MemoryPreferenceRepository{prefs: make(map[string]domain.UserPreferences)}
}

func (r *MemoryPreferenceRepository) GetByUserID(_ context.Context, userID string) (domain.UserPreferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	up, ok := r.prefs[userID]
	if !ok {
		return domain.UserPreferences{}, ErrNotFound
	}
	return up, nil
}

func (r *MemoryPreferenceRepository) Upsert(_ context.Context, prefs domain.UserPreferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[prefs.UserID] = prefs
	return nil
}
