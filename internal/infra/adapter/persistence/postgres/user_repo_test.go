package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	pg "github.com/soban-iftikhar/BuzzNews/internal/infra/adapter/persistence/postgres"
	"github.com/soban-iftikhar/BuzzNews/internal/repository"
)

var userCols = []string{"id", "email", "username", "hashed_password", "is_admin", "created_at"}

func userRow(u *entity.User) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).AddRow(
		u.ID, u.Email, u.Username, u.HashedPassword, u.IsAdmin, u.CreatedAt,
	)
}

func TestUserRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	want := &entity.User{
		ID: "user-1", Email: "jane@example.com", Username: "jane",
		HashedPassword: "$2a$10$hash", IsAdmin: false, CreatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs("user-1").
		WillReturnRows(userRow(want))

	repo := pg.NewUserRepo(db)
	got, err := repo.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUserRepo_FindByEmail_Missing(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM users").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	repo := pg.NewUserRepo(db)
	got, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	if err != nil || got != nil {
		t.Fatalf("FindByEmail = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestUserRepo_FindByEmailOrUsername(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("FROM users").
		WithArgs("jane@example.com", "jane").
		WillReturnRows(userRow(&entity.User{
			ID: "user-1", Email: "jane@example.com", Username: "jane",
			HashedPassword: "h", CreatedAt: now,
		}))

	repo := pg.NewUserRepo(db)
	got, err := repo.FindByEmailOrUsername(context.Background(), "jane@example.com", "jane")
	if err != nil || got == nil {
		t.Fatalf("FindByEmailOrUsername = (%v, %v)", got, err)
	}
	if got.Username != "jane" {
		t.Errorf("username = %q", got.Username)
	}
}

func TestUserRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewUserRepo(db)
	user := &entity.User{Email: "jane@example.com", Username: "jane", HashedPassword: "h"}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if user.ID == "" {
		t.Error("Create did not assign an ID")
	}
}

func TestUserRepo_Create_Conflict(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(uniqueViolation())

	repo := pg.NewUserRepo(db)
	err := repo.Create(context.Background(), &entity.User{Email: "dup@example.com"})
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}
