package news

import (
	"net/http"

	"github.com/soban-iftikhar/BuzzNews/internal/usecase/feed"
)

// Register registers the public news endpoints with the given mux.
func Register(mux *http.ServeMux, svc *feed.Service) {
	mux.Handle("GET /api/news", FeedHandler{Svc: svc})
	// The merged external + admin view with explicit pagination. Same
	// handler as /api/news; kept as its own route for frontend use.
	mux.Handle("GET /api/news/combined", FeedHandler{Svc: svc})
	mux.Handle("GET /api/news/search", SearchHandler{Svc: svc})
	mux.Handle("GET /api/news/featured", FeaturedHandler{Svc: svc})
}
