// Package collection exposes the per-user article lists (favorites and
// watch later) over HTTP. Both lists share the same handlers; each list is
// registered with its own service instance and route prefix.
package collection

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/auth"
	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/requestid"
	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/respond"
	"github.com/soban-iftikhar/BuzzNews/internal/repository"
	"github.com/soban-iftikhar/BuzzNews/internal/usecase/collection"
)

// EntryDTO is the JSON shape of a saved list entry with its article embedded.
type EntryDTO struct {
	ID        string      `json:"id"`
	ArticleID string      `json:"article_id"`
	CreatedAt time.Time   `json:"created_at"`
	Article   *ArticleDTO `json:"article"`
}

// ArticleDTO mirrors the article shape used by the news endpoints.
type ArticleDTO struct {
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

func toEntryDTO(e repository.ListEntryWithArticle) EntryDTO {
	dto := EntryDTO{
		ID:        e.Entry.ID,
		ArticleID: e.Entry.ArticleID,
		CreatedAt: e.Entry.CreatedAt,
	}
	if a := e.Article; a != nil {
		dto.Article = &ArticleDTO{
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
	return dto
}

var (
	errUnauthorized = errors.New("unauthorized")
	errBadBody      = errors.New("invalid request body")
)

type addRequest struct {
	ArticleID string `json:"article_id"`
}

// AddHandler saves an article to the caller's list.
type AddHandler struct {
	Svc *collection.Service
}

func (h AddHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respond.Error(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errBadBody)
		return
	}

	saved, err := h.Svc.Add(r.Context(), claims.UserID, req.ArticleID)
	if err != nil {
		slog.Error("add list entry failed",
			"request_id", requestid.FromContext(r.Context()),
			"list", h.Svc.Name,
			"error", err,
		)
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusCreated, toEntryDTO(*saved))
}

// ListHandler returns all of the caller's saved entries, newest first.
type ListHandler struct {
	Svc *collection.Service
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respond.Error(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	entries, err := h.Svc.List(r.Context(), claims.UserID)
	if err != nil {
		slog.Error("list entries failed",
			"request_id", requestid.FromContext(r.Context()),
			"list", h.Svc.Name,
			"error", err,
		)
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryDTO(e))
	}
	respond.JSON(w, http.StatusOK, out)
}

// RemoveHandler deletes an entry from the caller's list.
type RemoveHandler struct {
	Svc *collection.Service
	// Message is the confirmation text returned on success,
	// e.g. "Removed from favorites".
	Message string
}

func (h RemoveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respond.Error(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	if err := h.Svc.Remove(r.Context(), r.PathValue("id"), claims.UserID); err != nil {
		slog.Error("remove list entry failed",
			"request_id", requestid.FromContext(r.Context()),
			"list", h.Svc.Name,
			"error", err,
		)
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": h.Message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, collection.ErrArticleNotFound),
		errors.Is(err, collection.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, collection.ErrAlreadySaved),
		errors.Is(err, collection.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
