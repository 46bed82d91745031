package collection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/repository"
)

// Service manages one per-user article list. Construct one instance per list
// kind, each backed by its own UserListStore.
type Service struct {
	Name     string
	Lists    repository.UserListStore
	Articles repository.ArticleStore

	// Now is the clock for save timestamps. Nil means time.Now.
	Now func() time.Time
}

// NewFavoritesService creates the favorites list service.
func NewFavoritesService(lists repository.UserListStore, articles repository.ArticleStore) *Service {
	return &Service{Name: entity.ListFavorites, Lists: lists, Articles: articles}
}

// NewWatchLaterService creates the watch-later list service.
func NewWatchLaterService(lists repository.UserListStore, articles repository.ArticleStore) *Service {
	return &Service{Name: entity.ListWatchLater, Lists: lists, Articles: articles}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Add saves an article to the user's list and returns the new entry joined
// with the article it references.
// Returns ErrArticleNotFound if the article does not exist.
// Returns ErrAlreadySaved if the article is already in the list.
func (s *Service) Add(ctx context.Context, userID, articleID string) (*repository.ListEntryWithArticle, error) {
	if userID == "" || articleID == "" {
		return nil, ErrInvalidInput
	}

	art, err := s.Articles.Get(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}

	existing, err := s.Lists.FindByUserAndArticle(ctx, userID, articleID)
	if err != nil {
		return nil, fmt.Errorf("check existing entry: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadySaved
	}

	entry := &entity.ListEntry{
		UserID:    userID,
		ArticleID: articleID,
		CreatedAt: s.now(),
	}
	if err := s.Lists.Create(ctx, entry); err != nil {
		// The unique (user_id, article_id) index closes the race between
		// the lookup above and this insert.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadySaved
		}
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return &repository.ListEntryWithArticle{Entry: entry, Article: art}, nil
}

// List returns the user's saved entries joined with their articles,
// most recently saved first.
func (s *Service) List(ctx context.Context, userID string) ([]repository.ListEntryWithArticle, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	entries, err := s.Lists.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Remove deletes an entry from the user's list. The entry must belong to the
// caller; entries of other users are reported as not found.
func (s *Service) Remove(ctx context.Context, entryID, userID string) error {
	if entryID == "" || userID == "" {
		return ErrInvalidInput
	}

	deleted, err := s.Lists.Delete(ctx, entryID, userID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return nil
}
