// Package article provides HTTP handlers for admin-authored articles.
package article

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/auth"
	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/respond"
	artUC "github.com/soban-iftikhar/BuzzNews/internal/usecase/article"
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

func toDTO(a *entity.Article) DTO {
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

// CreateHandler publishes a new admin article, attributed to the caller.
type CreateHandler struct{ Svc *artUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		ImageURL    string `json:"image_url"`
		URL         string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	art, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		AuthorID:    claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		URL:         req.URL,
	})
	if err != nil {
		code := http.StatusBadRequest
		var vErr *entity.ValidationError
		if !errors.As(err, &vErr) && !errors.Is(err, artUC.ErrDuplicateArticle) {
			code = http.StatusInternalServerError
		}
		respond.SafeError(w, code, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(art))
}

// ListHandler returns all admin-authored articles.
type ListHandler struct{ Svc *artUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	respond.JSON(w, http.StatusOK, out)
}

// GetHandler returns a single article by ID.
type GetHandler struct{ Svc *artUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	art, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, artUC.ErrInvalidArticleID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, artUC.ErrArticleNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(art))
}

// Register registers the admin article endpoints with the given mux.
// All routes require an authenticated admin.
func Register(mux *http.ServeMux, svc *artUC.Service, requireAdmin func(http.Handler) http.Handler) {
	mux.Handle("POST /api/admin/articles", requireAdmin(CreateHandler{Svc: svc}))
	mux.Handle("GET /api/admin/articles", requireAdmin(ListHandler{Svc: svc}))
	mux.Handle("GET /api/admin/articles/{id}", requireAdmin(GetHandler{Svc: svc}))
}
