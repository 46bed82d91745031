package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/observability/metrics"
	"github.com/soban-iftikhar/BuzzNews/internal/repository"
)

// Reconciler merges a batch of raw external articles with the article store
// and with admin-authored articles, producing a deduplicated, time-ordered,
// paginated view. It performs no network I/O; all blocking is confined to the
// store.
type Reconciler struct {
	Store repository.ArticleStore

	// Now is the clock used for ingestion timestamps and timestamp
	// fallbacks. Nil means time.Now.
	Now func() time.Time
}

// Result is the outcome of one reconciliation pass.
type Result struct {
	// Page is the requested slice of the merged, sorted union.
	Page []*entity.Article
	// TotalConsidered is the size of the merged union before pagination.
	TotalConsidered int
	// Inserted is the number of new articles persisted by this pass.
	Inserted int
}

func (r *Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Reconcile runs one merge pass over the already-fetched batch.
//
// Raw articles without a URL are silently excluded; unparsable publication
// timestamps are substituted with the current time rather than failing the
// batch. Articles whose URL is already stored are returned unchanged from the
// store; the remainder are persisted in a single batched insert. Admin
// articles are always unioned into the result regardless of the query that
// produced the batch. The union is stable-sorted by published_at descending
// and sliced to [offset, offset+limit), clipped to the available length.
func (r *Reconciler) Reconcile(ctx context.Context, batch []RawArticle, limit, offset int) (*Result, error) {
	if limit < 1 {
		return nil, &entity.ValidationError{Field: "limit", Message: "must be positive"}
	}
	if offset < 0 {
		return nil, &entity.ValidationError{Field: "offset", Message: "must not be negative"}
	}

	start := r.now()
	defer func() { metrics.RecordReconcileDuration(time.Since(start)) }()

	candidates := r.normalize(batch, start)

	urls := make([]string, 0, len(candidates))
	for _, c := range candidates {
		urls = append(urls, c.URL)
	}
	existing, err := r.Store.FindByURLs(ctx, urls)
	if err != nil {
		return nil, fmt.Errorf("find existing by url: %w", err)
	}

	merged := make([]*entity.Article, 0, len(candidates))
	pending := make([]*entity.Article, 0, len(candidates))
	for _, c := range candidates {
		if stored, ok := existing[c.URL]; ok {
			// The store is the source of truth for anything already
			// seen; never overwrite a stored row with fetched fields.
			merged = append(merged, stored)
			continue
		}
		merged = append(merged, c)
		pending = append(pending, c)
	}
	metrics.RecordArticlesDeduplicated(len(merged) - len(pending))

	inserted := 0
	if len(pending) > 0 {
		inserted, err = r.persist(ctx, pending)
		if err != nil {
			return nil, err
		}
	}
	metrics.RecordArticlesIngested(inserted)

	admin, err := r.Store.FindBySourceTag(ctx, entity.SourceAdmin)
	if err != nil {
		return nil, fmt.Errorf("find admin articles: %w", err)
	}
	seen := make(map[string]struct{}, len(merged))
	for _, a := range merged {
		seen[a.ID] = struct{}{}
	}
	for _, a := range admin {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		merged = append(merged, a)
	}

	// Stable keeps arrival order for equal timestamps.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	return &Result{
		Page:            paginate(merged, limit, offset),
		TotalConsidered: len(merged),
		Inserted:        inserted,
	}, nil
}

// normalize drops raw articles without a URL, collapses duplicate URLs inside
// the batch (first occurrence wins) and converts the rest to article entities
// with parsed or substituted timestamps.
func (r *Reconciler) normalize(batch []RawArticle, now time.Time) []*entity.Article {
	out := make([]*entity.Article, 0, len(batch))
	seen := make(map[string]struct{}, len(batch))
	for _, raw := range batch {
		if raw.URL == "" {
			metrics.RecordArticleDropped("missing_url")
			continue
		}
		if _, ok := seen[raw.URL]; ok {
			metrics.RecordArticleDropped("duplicate_in_batch")
			continue
		}
		seen[raw.URL] = struct{}{}

		publishedAt, err := time.Parse(time.RFC3339, raw.PublishedAtText)
		if err != nil {
			// A single bad timestamp must not drop the article or
			// abort the batch.
			publishedAt = now
		}

		sourceTag := raw.SourceName
		if sourceTag == "" {
			sourceTag = entity.SourceExternal
		}

		out = append(out, &entity.Article{
			Title:       raw.Title,
			Description: raw.Description,
			Content:     raw.Content,
			SourceTag:   sourceTag,
			ImageURL:    raw.ImageURL,
			URL:         raw.URL,
			PublishedAt: publishedAt,
			CreatedAt:   now,
		})
	}
	return out
}

// persist inserts the pending batch in one statement. A unique-key conflict
// means a concurrent reconciliation won the race for some URL; the rows are
// then resolved one by one against the store instead of surfacing an error.
func (r *Reconciler) persist(ctx context.Context, pending []*entity.Article) (int, error) {
	_, err := r.Store.InsertMany(ctx, pending)
	if err == nil {
		return len(pending), nil
	}
	if !errors.Is(err, repository.ErrConflict) {
		return 0, fmt.Errorf("insert new articles: %w", err)
	}

	slog.Debug("batch insert conflicted, resolving per row",
		slog.Int("pending", len(pending)))

	inserted := 0
	for _, article := range pending {
		winner, err := r.resolveRow(ctx, article)
		if err != nil {
			return inserted, err
		}
		if winner == nil {
			inserted++
			continue
		}
		// Someone else already created it; adopt the stored row.
		*article = *winner
	}
	return inserted, nil
}

// resolveRow inserts a single article, adopting the existing row when the URL
// is already present. Returns the stored row on conflict, nil when this call
// inserted the article.
func (r *Reconciler) resolveRow(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	stored, err := r.Store.FindByURL(ctx, article.URL)
	if err != nil {
		return nil, fmt.Errorf("resolve conflicting url: %w", err)
	}
	if stored != nil {
		return stored, nil
	}

	err = r.Store.Create(ctx, article)
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, repository.ErrConflict) {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	// Lost the race between the lookup and the insert.
	stored, err = r.Store.FindByURL(ctx, article.URL)
	if err != nil {
		return nil, fmt.Errorf("re-read conflicting url: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("conflicting url vanished: %s", article.URL)
	}
	return stored, nil
}

// paginate slices [offset, offset+limit) clipped to the available length.
// An offset beyond the end yields an empty page, not an error.
func paginate(articles []*entity.Article, limit, offset int) []*entity.Article {
	if offset >= len(articles) {
		return []*entity.Article{}
	}
	end := offset + limit
	if end > len(articles) {
		end = len(articles)
	}
	return articles[offset:end]
}
