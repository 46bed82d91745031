package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/repository"
)

// DefaultFeaturedQuery is the upstream query used for the featured article.
const DefaultFeaturedQuery = "breaking news"

// Service orchestrates the external client, the reconciler and the article
// store behind the product-facing feed operations.
type Service struct {
	Client     Client
	Store      repository.ArticleStore
	Reconciler *Reconciler

	// FeaturedQuery overrides DefaultFeaturedQuery when non-empty.
	FeaturedQuery string

	// Now is the clock for ingestion timestamps. Nil means time.Now.
	Now func() time.Time
}

// NewService creates a feed Service wired to the given client and store.
func NewService(client Client, store repository.ArticleStore) *Service {
	return &Service{
		Client:     client,
		Store:      store,
		Reconciler: &Reconciler{Store: store},
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GetFeed fetches one external page for the query and reconciles it with the
// store and with admin articles, returning the requested slice of the merged
// feed.
//
// The external fetch is sized with the same limit/offset pair that paginates
// the merged list, so admin articles are not accounted for when sizing the
// fetch. This is a known approximation, kept deliberately.
func (s *Service) GetFeed(ctx context.Context, query string, limit, offset int) (*Result, error) {
	if limit < 1 {
		return nil, &entity.ValidationError{Field: "limit", Message: "must be positive"}
	}
	if offset < 0 {
		return nil, &entity.ValidationError{Field: "offset", Message: "must not be negative"}
	}

	batch, err := s.Client.FetchPage(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("fetch external page: %w", err)
	}

	result, err := s.Reconciler.Reconcile(ctx, batch, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("reconcile feed: %w", err)
	}
	return result, nil
}

// Search is GetFeed anchored at the first page.
func (s *Service) Search(ctx context.Context, term string, limit int) (*Result, error) {
	return s.GetFeed(ctx, term, limit, 0)
}

// GetFeatured fetches a single breaking-news article from the provider. The
// stored copy wins when the URL has been seen before; otherwise the article
// is persisted for stable future reference.
func (s *Service) GetFeatured(ctx context.Context) (*entity.Article, error) {
	query := s.FeaturedQuery
	if query == "" {
		query = DefaultFeaturedQuery
	}

	batch, err := s.Client.FetchPage(ctx, query, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch featured: %w", err)
	}

	raw, ok := firstUsable(batch)
	if !ok {
		return nil, ErrNoFeaturedAvailable
	}

	stored, err := s.Store.FindByURL(ctx, raw.URL)
	if err != nil {
		return nil, fmt.Errorf("find featured by url: %w", err)
	}
	if stored != nil {
		return stored, nil
	}

	now := s.now()
	publishedAt, err := time.Parse(time.RFC3339, raw.PublishedAtText)
	if err != nil {
		publishedAt = now
	}
	sourceTag := raw.SourceName
	if sourceTag == "" {
		sourceTag = entity.SourceExternal
	}

	article := &entity.Article{
		Title:       raw.Title,
		Description: raw.Description,
		Content:     raw.Content,
		SourceTag:   sourceTag,
		ImageURL:    raw.ImageURL,
		URL:         raw.URL,
		PublishedAt: publishedAt,
		CreatedAt:   now,
	}
	if err := s.Store.Create(ctx, article); err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("persist featured: %w", err)
		}
		// Lost the race; the winning row is the stable reference.
		stored, err = s.Store.FindByURL(ctx, raw.URL)
		if err != nil {
			return nil, fmt.Errorf("re-read featured: %w", err)
		}
		if stored != nil {
			return stored, nil
		}
	}
	return article, nil
}

// firstUsable returns the first raw article that carries a URL.
func firstUsable(batch []RawArticle) (RawArticle, bool) {
	for _, raw := range batch {
		if raw.URL != "" {
			return raw, true
		}
	}
	return RawArticle{}, false
}
