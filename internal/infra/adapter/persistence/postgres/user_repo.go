package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/repository"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) repository.UserStore {
	return &UserRepo{db: db}
}

const userColumns = `id, email, username, hashed_password, is_admin, created_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	var user entity.User
	if err := row.Scan(&user.ID, &user.Email, &user.Username,
		&user.HashedPassword, &user.IsAdmin, &user.CreatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *UserRepo) Get(ctx context.Context, id string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1`
	user, err := scanUser(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return user, nil
}

func (repo *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1`
	user, err := scanUser(repo.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByEmail: %w", err)
	}
	return user, nil
}

func (repo *UserRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1 OR username = $2
LIMIT 1`
	user, err := scanUser(repo.db.QueryRowContext(ctx, query, email, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByEmailOrUsername: %w", err)
	}
	return user, nil
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	const query = `
INSERT INTO users
       (id, email, username, hashed_password, is_admin, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := repo.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Username,
		user.HashedPassword, user.IsAdmin, user.CreatedAt,
	)
	if isConflict(err) {
		return fmt.Errorf("Create: %w", repository.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
