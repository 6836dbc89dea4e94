package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reading-persona/internal/domain"
)

type countingReportRepo struct {
	*MemoryReportRepository
	gets int
}

func (c *countingReportRepo) GetByUserID(ctx context.Context, userID string) (domain.Report, error) {
	c.gets++
	return c.MemoryReportRepository.GetByUserID(ctx, userID)
}

type recordingObserver struct {
	hits, misses int
}

func (o *recordingObserver) CacheLookup(hit bool) {
	if hit {
		o.hits++
		return
	}
	o.misses++
}

func newCachedRepo(t *testing.T) (*CachedReportRepository, *countingReportRepo, *miniredis.Miniredis, *recordingObserver) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := &countingReportRepo{MemoryReportRepository: NewMemoryReportRepository()}
	obs := &recordingObserver{}
	return NewCachedReportRepository(inner, client, time.Minute, obs, zap.NewNop()), inner, mr, obs
}

func TestCachedReportRepositoryServesSecondReadFromRedis(t *testing.T) {
	repo, inner, mr, obs := newCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, inner.Upsert(ctx, sampleReport("u1", "r1", "Uno", domain.BaselineVector())))

	first, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	second, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)

	require.Equal(t, "r1", first.ID)
	require.Equal(t, first, second)
	require.Equal(t, 1, inner.gets)
	require.Equal(t, 1, obs.hits)
	require.Equal(t, 1, obs.misses)
	require.True(t, mr.Exists("report:u1"))
	require.Equal(t, time.Minute, mr.TTL("report:u1"))
}

func TestCachedReportRepositoryUpsertWritesThrough(t *testing.T) {
	repo, inner, mr, _ := newCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleReport("u1", "r1", "Uno", domain.BaselineVector())))
	_, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, sampleReport("u1", "r2", "Dos", domain.BaselineVector())))
	require.True(t, mr.Exists("report:u1"))

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "r2", got.ID)
	require.Equal(t, 0, inner.gets)
}

// failingCmdable deja pasar todo a Redis salvo los comandos marcados.
type failingCmdable struct {
	redis.Cmdable
	failSet bool
	failDel bool
	dels    int
}

func (f *failingCmdable) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if f.failSet {
		cmd := redis.NewStatusCmd(ctx, "set", key)
		cmd.SetErr(errors.New("set unavailable"))
		return cmd
	}
	return f.Cmdable.Set(ctx, key, value, ttl)
}

func (f *failingCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.dels++
	if f.failDel {
		cmd := redis.NewIntCmd(ctx, "del")
		cmd.SetErr(errors.New("del unavailable"))
		return cmd
	}
	return f.Cmdable.Del(ctx, keys...)
}

func newFailingCachedRepo(t *testing.T, failSet, failDel bool) (*CachedReportRepository, *failingCmdable) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	wrapped := &failingCmdable{Cmdable: client, failSet: failSet, failDel: failDel}
	inner := &countingReportRepo{MemoryReportRepository: NewMemoryReportRepository()}
	return NewCachedReportRepository(inner, wrapped, time.Minute, nil, zap.NewNop()), wrapped
}

func TestCachedReportRepositoryReplacesEvenWhenDelFails(t *testing.T) {
	repo, wrapped := newFailingCachedRepo(t, false, true)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleReport("u1", "r1", "Uno", domain.BaselineVector())))
	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "r1", got.ID)

	require.NoError(t, repo.Upsert(ctx, sampleReport("u1", "r2", "Dos", domain.BaselineVector())))
	got, err = repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "r2", got.ID)
	require.Equal(t, 0, wrapped.dels)
}

func TestCachedReportRepositoryDeletesWhenWriteThroughFails(t *testing.T) {
	repo, wrapped := newFailingCachedRepo(t, true, false)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleReport("u1", "r1", "Uno", domain.BaselineVector())))
	_, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, sampleReport("u1", "r2", "Dos", domain.BaselineVector())))
	require.Equal(t, 2, wrapped.dels)

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "r2", got.ID)
}

// racingReportRepo simula un lector que trae el reporte viejo de la base
// mientras otro request guarda uno nuevo.
type racingReportRepo struct {
	*MemoryReportRepository
	onGet func()
}

func (r *racingReportRepo) GetByUserID(ctx context.Context, userID string) (domain.Report, error) {
	stale, err := r.MemoryReportRepository.GetByUserID(ctx, userID)
	if r.onGet != nil {
		hook := r.onGet
		r.onGet = nil
		hook()
	}
	return stale, err
}

func TestCachedReportRepositoryStaleFillDoesNotOverwriteNewerReport(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	inner := &racingReportRepo{MemoryReportRepository: NewMemoryReportRepository()}
	require.NoError(t, inner.Upsert(ctx, sampleReport("u1", "r1", "Uno", domain.BaselineVector())))
	repo := NewCachedReportRepository(inner, client, time.Minute, nil, zap.NewNop())
	inner.onGet = func() {
		require.NoError(t, repo.Upsert(ctx, sampleReport("u1", "r2", "Dos", domain.BaselineVector())))
	}

	stale, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "r1", stale.ID)

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "r2", got.ID)
}

func TestCachedReportRepositoryFailsOpenWhenRedisDown(t *testing.T) {
	repo, inner, mr, _ := newCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, inner.Upsert(ctx, sampleReport("u1", "r1", "Uno", domain.BaselineVector())))
	mr.Close()

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "r1", got.ID)

	require.NoError(t, repo.Upsert(ctx, sampleReport("u1", "r2", "Dos", domain.BaselineVector())))
}

func TestCachedReportRepositoryPropagatesNotFound(t *testing.T) {
	repo, _, _, _ := newCachedRepo(t)
	_, err := repo.GetByUserID(context.Background(), "nadie")
	require.True(t, errors.Is(err, ErrNotFound))
}
