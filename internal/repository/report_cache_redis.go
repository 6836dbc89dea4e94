package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"reading-persona/internal/domain"
)

// CacheObserver recibe aciertos y fallos del cache.
type CacheObserver interface {
	CacheLookup(hit bool)
}

// CachedReportRepository pone un cache en Redis delante de otro ReportRepository.
// Upsert escribe el reporte nuevo en el cache y las lecturas solo llenan claves
// vacias, asi una lectura vieja no pisa una escritura mas nueva. Los errores de
// Redis nunca cortan la operacion.
type CachedReportRepository struct {
	next     ReportRepository
	client   redis.Cmdable
	ttl      time.Duration
	prefix   string
	observer CacheObserver
	logger   *zap.Logger
}

func NewCachedReportRepository(next ReportRepository, client redis.Cmdable, ttl time.Duration, observer CacheObserver, logger *zap.Logger) *CachedReportRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedReportRepository{
		next:     next,
		client:   client,
		ttl:      ttl,
		prefix:   "report:",
		observer: observer,
		logger:   logger,
	}
}

// Upsert escribe en la base y despues en el cache. Si no puede escribir el
// cache, borra la clave para no seguir sirviendo el reporte anterior.
func (r *CachedReportRepository) Upsert(ctx context.Context, report domain.Report) error {
	if err := r.next.Upsert(ctx, report); err != nil {
		return err
	}
	if r.client == nil {
		return nil
	}
	key := r.key(report.UserID)
	encoded, err := json.Marshal(report)
	if err == nil {
		err = r.client.Set(ctx, key, encoded, r.ttl).Err()
	}
	if err == nil {
		return nil
	}
	r.logger.Warn("report cache write-through failed", zap.String("user_id", report.UserID), zap.Error(err))
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("report cache invalidation failed", zap.String("user_id", report.UserID), zap.Error(err))
	}
	return nil
}

func (r *CachedReportRepository) GetByUserID(ctx context.Context, userID string) (domain.Report, error) {
	if r.client == nil {
		return r.next.GetByUserID(ctx, userID)
	}

	data, err := r.client.Get(ctx, r.key(userID)).Bytes()
	if err == nil {
		var report domain.Report
		if jsonErr := json.Unmarshal(data, &report); jsonErr == nil {
			r.recordLookup(true)
			return report, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("report cache read failed", zap.String("user_id", userID), zap.Error(err))
	}
	r.recordLookup(false)

	report, err := r.next.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Report{}, err
	}
	if encoded, err := json.Marshal(report); err == nil {
		if err := r.client.SetNX(ctx, r.key(userID), encoded, r.ttl).Err(); err != nil {
			r.logger.Warn("report cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return report, nil
}

func (r *CachedReportRepository) key(userID string) string {
	return r.prefix + userID
}

func (r *CachedReportRepository) recordLookup(hit bool) {
	if r.observer != nil {
		r.observer.CacheLookup(hit)
	}
}
