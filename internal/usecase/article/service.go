package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/repository"
)

// CreateInput represents the input parameters for publishing an admin article.
type CreateInput struct {
	AuthorID    string
	Title       string
	Description string
	Content     string
	ImageURL    string
	URL         string
}

// Service provides admin article management use cases.
// It handles business logic for article operations and delegates persistence
// to the repository.
type Service struct {
	Store repository.ArticleStore

	// Now is the clock for publication timestamps. Nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create publishes a new admin article. The article is tagged as
// admin-authored, attributed to the caller and stamped with the current time
// so it sorts into the feed at its publication moment.
//
// Returns a ValidationError if any input field is invalid.
// Returns ErrDuplicateArticle if the URL is already stored.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	if in.AuthorID == "" {
		return nil, &entity.ValidationError{Field: "authorID", Message: "is required"}
	}
	if in.Title == "" {
		return nil, &entity.ValidationError{Field: "title", Message: "is required"}
	}
	if in.URL != "" {
		if err := entity.ValidateURL(in.URL); err != nil {
			return nil, fmt.Errorf("validate URL: %w", err)
		}
	}
	if in.ImageURL != "" {
		if err := entity.ValidateURL(in.ImageURL); err != nil {
			return nil, fmt.Errorf("validate image URL: %w", err)
		}
	}

	now := s.now()
	authorID := in.AuthorID
	art := &entity.Article{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		SourceTag:   entity.SourceAdmin,
		ImageURL:    in.ImageURL,
		URL:         in.URL,
		PublishedAt: now,
		AuthorID:    &authorID,
		CreatedAt:   now,
	}

	if err := s.Store.Create(ctx, art); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateArticle
		}
		return nil, fmt.Errorf("create article: %w", err)
	}
	return art, nil
}

// List retrieves all admin-authored articles, newest first.
func (s *Service) List(ctx context.Context) ([]*entity.Article, error) {
	articles, err := s.Store.FindBySourceTag(ctx, entity.SourceAdmin)
	if err != nil {
		return nil, fmt.Errorf("list admin articles: %w", err)
	}
	return articles, nil
}

// Get retrieves a single article by its ID.
// Returns ErrInvalidArticleID if the ID is empty.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.Article, error) {
	if id == "" {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	return art, nil
}
