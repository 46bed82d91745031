// Package newsapi implements the external feed client against the NewsAPI
// "everything" endpoint.
package newsapi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/observability/metrics"
	"github.com/soban-iftikhar/BuzzNews/internal/resilience/circuitbreaker"
	"github.com/soban-iftikhar/BuzzNews/internal/usecase/feed"
)

// Client fetches article pages from the external news provider. It implements
// the feed.Client interface.
//
// Requests run through a circuit breaker; while the circuit is open the
// client fails fast with feed.ErrUpstreamUnavailable instead of hitting the
// provider.
//
// Thread safety: Client is safe for concurrent use.
type Client struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         Config
}

// NewClient creates a provider client with the given configuration.
func NewClient(config Config) *Client {
	return &Client{
		client: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
		circuitBreaker: circuitbreaker.New(circuitbreaker.NewsProviderConfig()),
		config:         config,
	}
}

// response mirrors the provider's "everything" payload.
type response struct {
	Status       string        `json:"status"`
	TotalResults int           `json:"totalResults"`
	Articles     []wireArticle `json:"articles"`
}

// wireArticle carries the fields we store. The provider also sends a
// source object and author, but stored rows are tagged with the fixed
// provider name, so those are left undecoded.
type wireArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// FetchPage retrieves one page of provider results for the query, sorted by
// publication time. The provider paginates with 1-based page numbers, so the
// article offset is translated to page = offset/pageSize + 1; offsets that
// are not page-aligned land on the page containing them.
func (c *Client) FetchPage(ctx context.Context, query string, pageSize, pageOffset int) ([]feed.RawArticle, error) {
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > c.config.MaxPageSize {
		pageSize = c.config.MaxPageSize
	}
	page := 1
	if pageOffset > 0 {
		page = pageOffset/pageSize + 1
	}

	start := time.Now()
	batch, err := c.fetch(ctx, query, pageSize, page)
	duration := time.Since(start)

	switch {
	case err == nil:
		metrics.RecordUpstreamFetch("success", duration)
	case errors.Is(err, feed.ErrUpstreamMalformed):
		metrics.RecordUpstreamFetch("malformed", duration)
	default:
		metrics.RecordUpstreamFetch("unavailable", duration)
	}
	return batch, err
}

func (c *Client) fetch(ctx context.Context, query string, pageSize, page int) ([]feed.RawArticle, error) {
	endpoint, err := c.buildURL(query, pageSize, page)
	if err != nil {
		return nil, fmt.Errorf("build provider url: %w", err)
	}

	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, endpoint)
	})
	if err != nil {
		var malformed *malformedError
		if errors.As(err, &malformed) {
			return nil, fmt.Errorf("%w: %v", feed.ErrUpstreamMalformed, malformed.reason)
		}
		slog.Warn("provider fetch failed",
			slog.String("query", query),
			slog.Int("page", page),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", feed.ErrUpstreamUnavailable, err)
	}
	return result.([]feed.RawArticle), nil
}

func (c *Client) buildURL(query string, pageSize, page int) (string, error) {
	base, err := url.Parse(c.config.BaseURL + "/everything")
	if err != nil {
		return "", err
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("sortBy", "publishedAt")
	params.Set("language", c.config.Language)
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page))
	params.Set("apiKey", c.config.APIKey)
	base.RawQuery = params.Encode()
	return base.String(), nil
}

// malformedError marks decode failures so they can be told apart from
// transport failures after the breaker unwraps them.
type malformedError struct {
	reason string
}

func (e *malformedError) Error() string { return e.reason }

func (c *Client) doRequest(ctx context.Context, endpoint string) ([]feed.RawArticle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "BuzzNews/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close provider response body", slog.Any("error", closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, fmt.Errorf("provider returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var payload response
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &malformedError{reason: fmt.Sprintf("decode response: %v", err)}
	}
	if payload.Status != "ok" {
		return nil, &malformedError{reason: fmt.Sprintf("provider status %q", payload.Status)}
	}

	batch := make([]feed.RawArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		batch = append(batch, feed.RawArticle{
			Title:           a.Title,
			Description:     a.Description,
			Content:         a.Content,
			SourceName:      "newsapi",
			ImageURL:        a.URLToImage,
			URL:             a.URL,
			PublishedAtText: a.PublishedAt,
		})
	}
	return batch, nil
}
