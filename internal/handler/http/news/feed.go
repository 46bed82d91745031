package news

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/respond"
	"github.com/soban-iftikhar/BuzzNews/internal/usecase/feed"
)

const (
	// DefaultQuery is used when the client does not supply one.
	DefaultQuery = "technology"

	defaultFeedLimit   = 6
	defaultSearchLimit = 10
	maxLimit           = 100
)

// FeedHandler serves the merged feed: external provider results reconciled
// with stored and admin-authored articles.
type FeedHandler struct{ Svc *feed.Service }

func (h FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		query = DefaultQuery
	}
	limit, offset, err := paging(r, defaultFeedLimit)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.GetFeed(r.Context(), query, limit, offset)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTOs(result.Page))
}

// paging parses limit and offset query parameters with bounds checking.
func paging(r *http.Request, defaultLimit int) (int, int, error) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return 0, 0, errors.New("limit must be a positive integer")
		}
		limit = parsed
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return 0, 0, errors.New("offset must be a non-negative integer")
		}
		offset = parsed
	}
	return limit, offset, nil
}

// statusFor maps feed errors to HTTP status codes.
func statusFor(err error) int {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, feed.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, feed.ErrUpstreamMalformed):
		return http.StatusBadGateway
	case errors.Is(err, feed.ErrNoFeaturedAvailable):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
