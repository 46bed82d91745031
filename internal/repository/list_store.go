package repository

import (
	"context"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
)

// ListEntryWithArticle pairs a list entry with the article it references,
// for list responses that embed the full article.
type ListEntryWithArticle struct {
	Entry   *entity.ListEntry
	Article *entity.Article
}

// UserListStore persists one kind of per-user article list (favorites or
// watch later). Implementations are bound to a single list at construction.
// Lookup methods return (nil, nil) when no row matches.
type UserListStore interface {
	// FindByUserAndArticle retrieves the entry for the given pair, if any.
	FindByUserAndArticle(ctx context.Context, userID, articleID string) (*entity.ListEntry, error)
	// ListByUser retrieves all of a user's entries with their articles,
	// newest first.
	ListByUser(ctx context.Context, userID string) ([]ListEntryWithArticle, error)
	// Create inserts a new entry, assigning its ID.
	Create(ctx context.Context, entry *entity.ListEntry) error
	// Delete removes the entry only if it belongs to the given user.
	// Returns (false, nil) when no matching row exists.
	Delete(ctx context.Context, id, userID string) (bool, error)
}
