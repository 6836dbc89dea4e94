package repository

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"reading-persona/internal/domain"
)

// BookLookup resuelve ids de libros a datos para mostrar. Los ids desconocidos se omiten.
type BookLookup interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.SelectedBook, error)
}

// PgBookRepository implementa BookLookup usando pgxpool.
type PgBookRepository struct {
	pool *pgxpool.Pool
}

func NewPgBookRepository(pool *pgxpool.Pool) *PgBookRepository {
	return &PgBookRepository{pool: pool}
}

func (r *PgBookRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.SelectedBook, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `
		SELECT id, title, author, COALESCE(cover_image, '')
		FROM books
		WHERE id = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]domain.SelectedBook, len(ids))
	for rows.Next() {
		var b domain.SelectedBook
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CoverImage); err != nil {
			return nil, err
		}
		found[b.ID] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return inRequestOrder(ids, found), nil
}

// CachedBookLookup guarda en un LRU en proceso los libros ya resueltos.
type CachedBookLookup struct {
	next  BookLookup
	cache *lru.Cache[string, domain.SelectedBook]
}

func NewCachedBookLookup(next BookLookup, size int) (*CachedBookLookup, error) {
	if size <= 0 {
		size = 512
	}
	cache, err := lru.New[string, domain.SelectedBook](size)
	if err != nil {
		return nil, fmt.Errorf("create book cache: %w", err)
	}
	return &CachedBookLookup{next: next, cache: cache}, nil
}

func (c *CachedBookLookup) FindByIDs(ctx context.Context, ids []string) ([]domain.SelectedBook, error) {
	found := make(map[string]domain.SelectedBook, len(ids))
	var missing []string
	for _, id := range ids {
		if b, ok := c.cache.Get(id); ok {
			found[id] = b
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		fetched, err := c.next.FindByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, b := range fetched {
			c.cache.Add(b.ID, b)
			found[b.ID] = b
		}
	}
	return inRequestOrder(ids, found), nil
}

func inRequestOrder(ids []string, found map[string]domain.SelectedBook) []domain.SelectedBook {
	out := make([]domain.SelectedBook, 0, len(found))
	for _, id := range ids {
		if b, ok := found[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// StaticBookLookup sirve un catalogo fijo (CLI y tests).
type StaticBookLookup map[string]domain.SelectedBook

func (s StaticBookLookup) FindByIDs(_ context.Context, ids []string) ([]domain.SelectedBook, error) {
	return inRequestOrder(ids, s), nil
}
