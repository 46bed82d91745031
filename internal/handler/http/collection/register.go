package collection

import (
	"net/http"

	"github.com/soban-iftikhar/BuzzNews/internal/usecase/collection"
)

// Register mounts one list's routes under the given prefix
// (e.g. "/api/favorites"). All routes require an authenticated user.
func Register(mux *http.ServeMux, prefix, removedMessage string, svc *collection.Service, requireUser func(http.Handler) http.Handler) {
	mux.Handle("POST "+prefix, requireUser(AddHandler{Svc: svc}))
	mux.Handle("GET "+prefix, requireUser(ListHandler{Svc: svc}))
	mux.Handle("DELETE "+prefix+"/{id}", requireUser(RemoveHandler{Svc: svc, Message: removedMessage}))
}
