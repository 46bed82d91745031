package feed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/usecase/feed"
)

type stubClient struct {
	batch []feed.RawArticle
	err   error

	lastQuery    string
	lastPageSize int
	lastOffset   int
	calls        int
}

func (c *stubClient) FetchPage(_ context.Context, query string, pageSize, pageOffset int) ([]feed.RawArticle, error) {
	c.calls++
	c.lastQuery = query
	c.lastPageSize = pageSize
	c.lastOffset = pageOffset
	return c.batch, c.err
}

func TestGetFeed_MergesClientAndStore(t *testing.T) {
	store := newStubStore()
	client := &stubClient{batch: []feed.RawArticle{
		raw("a", "2024-01-01T00:00:00Z"),
		raw("b", "2024-02-01T00:00:00Z"),
	}}
	svc := feed.NewService(client, store)

	result, err := svc.GetFeed(context.Background(), "golang", 10, 0)
	if err != nil {
		t.Fatalf("GetFeed err=%v", err)
	}
	if got := urls(result.Page); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("page urls = %v, want [b a]", got)
	}
	if client.lastQuery != "golang" {
		t.Errorf("query passed to client = %q, want %q", client.lastQuery, "golang")
	}
	if client.lastPageSize != 10 || client.lastOffset != 0 {
		t.Errorf("client paging = (%d, %d), want (10, 0)",
			client.lastPageSize, client.lastOffset)
	}
}

func TestGetFeed_UpstreamErrorPropagates(t *testing.T) {
	client := &stubClient{err: feed.ErrUpstreamUnavailable}
	svc := feed.NewService(client, newStubStore())

	_, err := svc.GetFeed(context.Background(), "golang", 10, 0)
	if !errors.Is(err, feed.ErrUpstreamUnavailable) {
		t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestGetFeed_InvalidParamsDoNotHitClient(t *testing.T) {
	client := &stubClient{}
	svc := feed.NewService(client, newStubStore())

	if _, err := svc.GetFeed(context.Background(), "q", 0, 0); err == nil {
		t.Error("expected error for limit < 1")
	}
	if _, err := svc.GetFeed(context.Background(), "q", 5, -1); err == nil {
		t.Error("expected error for negative offset")
	}
	if client.calls != 0 {
		t.Errorf("client called %d times on invalid input, want 0", client.calls)
	}
}

func TestSearch_IsFirstPage(t *testing.T) {
	client := &stubClient{batch: []feed.RawArticle{raw("a", "2024-01-01T00:00:00Z")}}
	svc := feed.NewService(client, newStubStore())

	result, err := svc.Search(context.Background(), "ai", 5)
	if err != nil {
		t.Fatalf("Search err=%v", err)
	}
	if client.lastOffset != 0 {
		t.Errorf("Search used offset %d, want 0", client.lastOffset)
	}
	if len(result.Page) != 1 {
		t.Errorf("page has %d articles, want 1", len(result.Page))
	}
}

func TestGetFeatured_PersistsNewArticle(t *testing.T) {
	store := newStubStore()
	client := &stubClient{batch: []feed.RawArticle{raw("a", "2024-03-01T00:00:00Z")}}
	svc := feed.NewService(client, store)

	article, err := svc.GetFeatured(context.Background())
	if err != nil {
		t.Fatalf("GetFeatured err=%v", err)
	}
	if article.URL != "a" {
		t.Errorf("URL = %q, want %q", article.URL, "a")
	}
	if client.lastQuery != feed.DefaultFeaturedQuery {
		t.Errorf("query = %q, want %q", client.lastQuery, feed.DefaultFeaturedQuery)
	}
	if client.lastPageSize != 1 {
		t.Errorf("pageSize = %d, want 1", client.lastPageSize)
	}
	if stored := store.byURL["a"]; stored == nil {
		t.Error("featured article was not persisted")
	}
}

func TestGetFeatured_StoredCopyWins(t *testing.T) {
	store := newStubStore()
	store.put(&entity.Article{
		Title:       "stored",
		SourceTag:   "newsapi",
		URL:         "a",
		PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	client := &stubClient{batch: []feed.RawArticle{{
		Title:           "fetched",
		SourceName:      "newsapi",
		URL:             "a",
		PublishedAtText: "2024-03-01T00:00:00Z",
	}}}
	svc := feed.NewService(client, store)

	article, err := svc.GetFeatured(context.Background())
	if err != nil {
		t.Fatalf("GetFeatured err=%v", err)
	}
	if article.Title != "stored" {
		t.Errorf("Title = %q, stored copy must win", article.Title)
	}
	if len(store.byID) != 1 {
		t.Errorf("store has %d articles, want 1", len(store.byID))
	}
}

func TestGetFeatured_SkipsURLLessLeadingArticles(t *testing.T) {
	store := newStubStore()
	client := &stubClient{batch: []feed.RawArticle{
		{Title: "no url", PublishedAtText: "2024-03-01T00:00:00Z"},
		raw("a", "2024-02-01T00:00:00Z"),
	}}
	svc := feed.NewService(client, store)

	article, err := svc.GetFeatured(context.Background())
	if err != nil {
		t.Fatalf("GetFeatured err=%v", err)
	}
	if article.URL != "a" {
		t.Errorf("URL = %q, want the first article carrying a URL", article.URL)
	}
}

func TestGetFeatured_NoUsableArticles(t *testing.T) {
	tests := []struct {
		name  string
		batch []feed.RawArticle
	}{
		{name: "empty batch", batch: nil},
		{name: "only url-less articles", batch: []feed.RawArticle{{Title: "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := feed.NewService(&stubClient{batch: tt.batch}, newStubStore())
			_, err := svc.GetFeatured(context.Background())
			if !errors.Is(err, feed.ErrNoFeaturedAvailable) {
				t.Fatalf("err = %v, want ErrNoFeaturedAvailable", err)
			}
		})
	}
}

func TestGetFeatured_ConflictAdoptsWinner(t *testing.T) {
	store := newStubStore()
	rival := &entity.Article{
		Title:       "rival",
		SourceTag:   "newsapi",
		URL:         "a",
		PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	store.put(rival)
	client := &stubClient{batch: []feed.RawArticle{raw("a", "2024-03-01T00:00:00Z")}}
	svc := feed.NewService(client, store)
	// first lookup misses, the insert then collides with the rival row
	svc.Store = &featuredRaceStore{stubStore: store}

	article, err := svc.GetFeatured(context.Background())
	if err != nil {
		t.Fatalf("GetFeatured err=%v", err)
	}
	if article.Title != "rival" {
		t.Errorf("Title = %q, want the rival's stored row", article.Title)
	}
}

// featuredRaceStore makes the first FindByURL miss and later ones hit,
// simulating a rival insert landing between lookup and create.
type featuredRaceStore struct {
	*stubStore
	lookups int
}

func (s *featuredRaceStore) FindByURL(ctx context.Context, url string) (*entity.Article, error) {
	s.lookups++
	if s.lookups == 1 {
		return nil, nil
	}
	return s.stubStore.FindByURL(ctx, url)
}
