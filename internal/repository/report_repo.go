package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"reading-persona/internal/domain"
)

// ReportRepository guarda un reporte por usuario; Upsert reemplaza el anterior completo.
type ReportRepository interface {
	Upsert(ctx context.Context, report domain.Report) error
	GetByUserID(ctx context.Context, userID string) (domain.Report, error)
}

// SimilarReaderFinder busca lectores con vector de puntajes cercano.
type SimilarReaderFinder interface {
	FindSimilar(ctx context.Context, userID string, scores domain.ScoreVector, k int) ([]domain.SimilarReader, error)
}

// PgReportRepository implementa ReportRepository y SimilarReaderFinder con pgvector.
type PgReportRepository struct {
	pool *pgxpool.Pool
}

func NewPgReportRepository(pool *pgxpool.Pool) *PgReportRepository {
	return &PgReportRepository{pool: pool}
}

func (r *PgReportRepository) Upsert(ctx context.Context, report domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	const query = `
		INSERT INTO onboarding_reports (id, user_id, version, report_data, score_vector, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			id = EXCLUDED.id,
			version = EXCLUDED.version,
			report_data = EXCLUDED.report_data,
			score_vector = EXCLUDED.score_vector,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.pool.Exec(ctx, query,
		report.ID,
		report.UserID,
		report.Version,
		data,
		pgvector.NewVector(report.Scores.Floats()),
		report.CreatedAt,
		time.Now().UTC(),
	)
	return err
}

func (r *PgReportRepository) GetByUserID(ctx context.Context, userID string) (domain.Report, error) {
	const query = `
		SELECT report_data
		FROM onboarding_reports
		WHERE user_id = $1
	`
	var raw []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Report{}, ErrNotFound
	}
	if err != nil {
		return domain.Report{}, err
	}
	var report domain.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return domain.Report{}, fmt.Errorf("decode report: %w", err)
	}
	return report, nil
}

func (r *PgReportRepository) FindSimilar(ctx context.Context, userID string, scores domain.ScoreVector, k int) ([]domain.SimilarReader, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT user_id, report_data->'persona'->>'title', score_vector <-> $2
		FROM onboarding_reports
		WHERE user_id <> $1
		ORDER BY score_vector <-> $2
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, pgvector.NewVector(scores.Floats()), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSimilarReaders(rows)
}

func scanSimilarReaders(rows pgxRows) ([]domain.SimilarReader, error) {
	var out []domain.SimilarReader
	for rows.Next() {
		var s domain.SimilarReader
		if err := rows.Scan(&s.UserID, &s.Persona, &s.Distance); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// pgxRows es la interfaz minima de pgx.Rows que usamos para escanear.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}

// MemoryReportRepository guarda reportes en memoria. Cada escritura es una copia
// independiente, asi que un reporte nunca hereda campos del anterior.
type MemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[string][]byte
}

func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{reports: make(map[string][]byte)}
}

func (r *MemoryReportRepository) Upsert(ctx context.Context, report domain.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[report.UserID] = data
	return nil
}

func (r *MemoryReportRepository) GetByUserID(_ context.Context, userID string) (domain.Report, error) {
	r.mu.RLock()
	data, ok := r.reports[userID]
	r.mu.RUnlock()
	if !ok {
		return domain.Report{}, ErrNotFound
	}
	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return domain.Report{}, fmt.Errorf("decode report: %w", err)
	}
	return report, nil
}

// FindSimilar usa distancia euclidiana, igual que el operador <-> de pgvector.
func (r *MemoryReportRepository) FindSimilar(ctx context.Context, userID string, scores domain.ScoreVector, k int) ([]domain.SimilarReader, error) {
	if k <= 0 {
		k = 5
	}
	r.mu.RLock()
	ids := make([]string, 0, len(r.reports))
	for id := range r.reports {
		if id != userID {
			ids = append(ids, id)
		}
	}
	r.mu.RUnlock()

	out := make([]domain.SimilarReader, 0, len(ids))
	for _, id := range ids {
		other, err := r.GetByUserID(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, domain.SimilarReader{
			UserID:   id,
			Persona:  other.Persona.Title,
			Distance: euclidean(scores.Floats(), other.Scores.Floats()),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].UserID < out[j].UserID
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func euclidean(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
