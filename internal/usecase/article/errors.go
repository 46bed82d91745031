// Package article provides use cases for admin-authored articles.
// It implements business logic for publishing and querying articles written
// by administrators, as opposed to articles ingested from the external
// provider.
package article

import (
	"errors"
	"fmt"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
)

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	// It wraps entity.ErrNotFound so callers can match the domain category.
	ErrArticleNotFound = fmt.Errorf("article %w", entity.ErrNotFound)

	// ErrInvalidArticleID indicates that the provided article ID is empty or
	// not a well-formed identifier.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrDuplicateArticle indicates that an article with the same URL already
	// exists. This prevents duplicate articles from being created.
	ErrDuplicateArticle = errors.New("article with this URL already exists")
)
