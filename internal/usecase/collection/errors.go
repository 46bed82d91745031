// Package collection provides use cases for per-user article lists:
// favorites and watch-later. Both lists share the same behavior and differ
// only in which table backs them.
package collection

import (
	"errors"
	"fmt"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
)

// Sentinel errors for collection use case operations. The not-found
// sentinels wrap entity.ErrNotFound so callers can match the domain
// category as well as the specific error.
var (
	// ErrArticleNotFound indicates that the article to be saved does not
	// exist in the store.
	ErrArticleNotFound = fmt.Errorf("article %w", entity.ErrNotFound)

	// ErrAlreadySaved indicates that the article is already in the user's list.
	ErrAlreadySaved = errors.New("article already saved to this list")

	// ErrEntryNotFound indicates that no list entry matches the given ID for
	// this user. Removing another user's entry reports the same error.
	ErrEntryNotFound = fmt.Errorf("list entry %w", entity.ErrNotFound)

	// ErrInvalidInput indicates a missing user or article identifier.
	ErrInvalidInput = entity.ErrInvalidInput
)
