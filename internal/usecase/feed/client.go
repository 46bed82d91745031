package feed

import "context"

// RawArticle is a single article record as returned by the external news
// provider, before normalization. Every field except URL may be empty.
type RawArticle struct {
	Title           string
	Description     string
	Content         string
	SourceName      string
	ImageURL        string
	URL             string
	PublishedAtText string
}

// Client fetches pages of raw articles from the external news provider.
type Client interface {
	// FetchPage retrieves one provider page for the query. The provider
	// paginates 1-indexed by page size; implementations translate
	// (pageSize, pageOffset) into the provider page floor(offset/size)+1.
	// Fails with ErrUpstreamUnavailable or ErrUpstreamMalformed.
	FetchPage(ctx context.Context, query string, pageSize, pageOffset int) ([]RawArticle, error)
}
