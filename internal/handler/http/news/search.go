package news

import (
	"net/http"

	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/respond"
	"github.com/soban-iftikhar/BuzzNews/internal/usecase/feed"
)

// SearchHandler serves keyword search over the merged feed, always anchored
// at the first page.
type SearchHandler struct{ Svc *feed.Service }

func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		term = DefaultQuery
	}
	limit, _, err := paging(r, defaultSearchLimit)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.Search(r.Context(), term, limit)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTOs(result.Page))
}
