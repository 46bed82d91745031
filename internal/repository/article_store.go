// Package repository defines the persistence contracts consumed by the
// usecase layer. Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"
	"errors"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
)

// ErrConflict indicates a unique-key violation on insert, typically a URL
// race between concurrent feed reconciliations. Callers recover by re-reading
// the conflicting row; the error is never surfaced to API clients.
var ErrConflict = errors.New("unique key conflict")

// ArticleStore is the single owner of persisted article state.
// Lookup methods return (nil, nil) when no row matches.
type ArticleStore interface {
	// Get retrieves an article by its ID.
	Get(ctx context.Context, id string) (*entity.Article, error)
	// FindByURL retrieves the article with the given URL, if any.
	FindByURL(ctx context.Context, url string) (*entity.Article, error)
	// FindByURLs retrieves all articles whose URL is in the given set,
	// keyed by URL. Batching avoids an N+1 lookup during reconciliation.
	FindByURLs(ctx context.Context, urls []string) (map[string]*entity.Article, error)
	// FindBySourceTag retrieves all articles carrying the given source tag,
	// ordered by published_at descending.
	FindBySourceTag(ctx context.Context, tag string) ([]*entity.Article, error)
	// Create inserts a single article, assigning its ID.
	// Returns ErrConflict if the URL is already present.
	Create(ctx context.Context, article *entity.Article) error
	// InsertMany inserts a batch of new articles in one statement, assigning
	// IDs. The store does not guarantee idempotence: callers must pre-filter
	// URL collisions. Returns ErrConflict if a row still collides.
	InsertMany(ctx context.Context, articles []*entity.Article) ([]*entity.Article, error)
}
