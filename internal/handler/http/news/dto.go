// Package news provides HTTP handlers for the combined news feed: the merged
// feed itself, keyword search and the featured article.
package news

import (
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Content     string    `json:"content,omitempty"`
	AuthorID    *string   `json:"author_id"`
	Source      string    `json:"source"`
	ImageURL    string    `json:"image_url,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDTO converts an article entity to its transfer representation.
func ToDTO(a *entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		AuthorID:    a.AuthorID,
		Source:      a.SourceTag,
		ImageURL:    a.ImageURL,
		URL:         a.URL,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
	}
}

// ToDTOs converts a page of articles. Always returns a non-nil slice so empty
// pages encode as [] rather than null.
func ToDTOs(articles []*entity.Article) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, ToDTO(a))
	}
	return out
}
