package entity

import "time"

// User represents a registered account.
// Email and Username are unique across the store. HashedPassword holds the
// bcrypt hash; the plaintext password never leaves the auth service.
type User struct {
	ID             string
	Email          string
	Username       string
	HashedPassword string
	IsAdmin        bool
	CreatedAt      time.Time
}

// List kinds for user article lists.
const (
	ListFavorites  = "favorites"
	ListWatchLater = "watch_later"
)

// ListEntry links a user to an article on one of their lists (favorites or
// watch later). At most one entry exists per (user, article) pair per list.
type ListEntry struct {
	ID        string
	UserID    string
	ArticleID string
	CreatedAt time.Time
}
