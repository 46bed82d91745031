package news

import (
	"net/http"

	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/respond"
	"github.com/soban-iftikhar/BuzzNews/internal/usecase/feed"
)

// FeaturedHandler serves the single current breaking-news article.
type FeaturedHandler struct{ Svc *feed.Service }

func (h FeaturedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	article, err := h.Svc.GetFeatured(r.Context())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(article))
}
