// Package postgres implements the repository contracts on PostgreSQL
// using database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/repository"
)

const uniqueViolation = "23505"

// isConflict reports whether err is a unique-key violation.
func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleStore {
	return &ArticleRepo{db: db}
}

const articleColumns = `id, title, description, content, source_tag, image_url, url, published_at, author_id, created_at`

func scanArticle(row interface{ Scan(...any) error }) (*entity.Article, error) {
	var (
		article     entity.Article
		description sql.NullString
		content     sql.NullString
		imageURL    sql.NullString
		url         sql.NullString
		authorID    sql.NullString
	)
	if err := row.Scan(&article.ID, &article.Title, &description, &content,
		&article.SourceTag, &imageURL, &url, &article.PublishedAt, &authorID,
		&article.CreatedAt); err != nil {
		return nil, err
	}
	article.Description = description.String
	article.Content = content.String
	article.ImageURL = imageURL.String
	article.URL = url.String
	if authorID.Valid {
		article.AuthorID = &authorID.String
	}
	return &article, nil
}

// nullIfEmpty maps empty strings to SQL NULL so the unique index on url
// does not collide on URL-less admin articles.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) FindByURL(ctx context.Context, url string) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE url = $1
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, url))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByURL: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) FindByURLs(ctx context.Context, urls []string) (map[string]*entity.Article, error) {
	if len(urls) == 0 {
		return make(map[string]*entity.Article), nil
	}

	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE url = ANY($1)`
	rows, err := repo.db.QueryContext(ctx, query, pq.Array(urls))
	if err != nil {
		return nil, fmt.Errorf("FindByURLs: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]*entity.Article, len(urls))
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("FindByURLs: Scan: %w", err)
		}
		result[article.URL] = article
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FindByURLs: rows.Err: %w", err)
	}
	return result, nil
}

func (repo *ArticleRepo) FindBySourceTag(ctx context.Context, tag string) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE source_tag = $1
ORDER BY published_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, tag)
	if err != nil {
		return nil, fmt.Errorf("FindBySourceTag: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 50)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("FindBySourceTag: Scan: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	const query = `
INSERT INTO articles
       (id, title, description, content, source_tag, image_url, url, published_at, author_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := repo.db.ExecContext(ctx, query,
		article.ID, article.Title, nullIfEmpty(article.Description),
		nullIfEmpty(article.Content), article.SourceTag,
		nullIfEmpty(article.ImageURL), nullIfEmpty(article.URL),
		article.PublishedAt, article.AuthorID, article.CreatedAt,
	)
	if isConflict(err) {
		return fmt.Errorf("Create: %w", repository.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) InsertMany(ctx context.Context, articles []*entity.Article) ([]*entity.Article, error) {
	if len(articles) == 0 {
		return articles, nil
	}

	var sb strings.Builder
	sb.WriteString(`
INSERT INTO articles
       (id, title, description, content, source_tag, image_url, url, published_at, author_id, created_at)
VALUES `)
	args := make([]any, 0, len(articles)*10)
	for i, article := range articles {
		if article.ID == "" {
			article.ID = uuid.New().String()
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 10
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10)
		args = append(args,
			article.ID, article.Title, nullIfEmpty(article.Description),
			nullIfEmpty(article.Content), article.SourceTag,
			nullIfEmpty(article.ImageURL), nullIfEmpty(article.URL),
			article.PublishedAt, article.AuthorID, article.CreatedAt,
		)
	}

	_, err := repo.db.ExecContext(ctx, sb.String(), args...)
	if isConflict(err) {
		return nil, fmt.Errorf("InsertMany: %w", repository.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("InsertMany: %w", err)
	}
	return articles, nil
}
