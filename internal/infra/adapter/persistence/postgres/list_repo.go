package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/repository"
)

// UserListRepo implements repository.UserListStore against one list table.
// The favorites and watch_later tables share the same shape, so the table
// name is the only thing that differs between the two stores.
type UserListRepo struct {
	db    *sql.DB
	table string
}

func NewFavoriteRepo(db *sql.DB) repository.UserListStore {
	return &UserListRepo{db: db, table: "favorites"}
}

func NewWatchLaterRepo(db *sql.DB) repository.UserListStore {
	return &UserListRepo{db: db, table: "watch_later"}
}

func (repo *UserListRepo) FindByUserAndArticle(ctx context.Context, userID, articleID string) (*entity.ListEntry, error) {
	query := fmt.Sprintf(`
SELECT id, user_id, article_id, created_at
FROM %s
WHERE user_id = $1 AND article_id = $2
LIMIT 1`, repo.table)

	var entry entity.ListEntry
	err := repo.db.QueryRowContext(ctx, query, userID, articleID).
		Scan(&entry.ID, &entry.UserID, &entry.ArticleID, &entry.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByUserAndArticle: %w", err)
	}
	return &entry, nil
}

func (repo *UserListRepo) ListByUser(ctx context.Context, userID string) ([]repository.ListEntryWithArticle, error) {
	query := fmt.Sprintf(`
SELECT e.id, e.user_id, e.article_id, e.created_at,
       a.id, a.title, a.description, a.content, a.source_tag, a.image_url, a.url, a.published_at, a.author_id, a.created_at
FROM %s e
INNER JOIN articles a ON e.article_id = a.id
WHERE e.user_id = $1
ORDER BY e.created_at DESC`, repo.table)

	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.ListEntryWithArticle, 0, 20)
	for rows.Next() {
		var (
			entry       entity.ListEntry
			article     entity.Article
			description sql.NullString
			content     sql.NullString
			imageURL    sql.NullString
			url         sql.NullString
			authorID    sql.NullString
		)
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.ArticleID, &entry.CreatedAt,
			&article.ID, &article.Title, &description, &content,
			&article.SourceTag, &imageURL, &url, &article.PublishedAt,
			&authorID, &article.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListByUser: Scan: %w", err)
		}
		article.Description = description.String
		article.Content = content.String
		article.ImageURL = imageURL.String
		article.URL = url.String
		if authorID.Valid {
			article.AuthorID = &authorID.String
		}
		result = append(result, repository.ListEntryWithArticle{
			Entry:   &entry,
			Article: &article,
		})
	}
	return result, rows.Err()
}

func (repo *UserListRepo) Create(ctx context.Context, entry *entity.ListEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := fmt.Sprintf(`
INSERT INTO %s
       (id, user_id, article_id, created_at)
VALUES ($1, $2, $3, $4)`, repo.table)

	_, err := repo.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.ArticleID, entry.CreatedAt)
	if isConflict(err) {
		return fmt.Errorf("Create: %w", repository.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserListRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, repo.table)
	res, err := repo.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
