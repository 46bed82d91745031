// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and User, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Source tags distinguish locally authored content from externally fetched content.
const (
	// SourceAdmin marks articles authored by an admin user. Admin articles
	// are always merged into feed results and are never touched by feed
	// reconciliation.
	SourceAdmin = "admin"

	// SourceExternal is the fallback tag for externally fetched articles
	// whose provider did not report a source name.
	SourceExternal = "external"
)

// Article represents a news article in the system.
// Articles are either authored by an admin user or ingested from the external
// news provider the first time their URL is seen. A non-empty URL is unique
// across the store and serves as the deduplication key; once stored, an
// article is immutable.
type Article struct {
	ID          string
	Title       string
	Description string
	Content     string
	SourceTag   string
	ImageURL    string
	URL         string
	PublishedAt time.Time
	AuthorID    *string // nil for externally sourced articles
	CreatedAt   time.Time
}

// IsAdmin reports whether the article was authored locally by an admin user.
func (a *Article) IsAdmin() bool {
	return a.SourceTag == SourceAdmin
}
