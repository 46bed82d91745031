package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/repository"
	"github.com/soban-iftikhar/BuzzNews/internal/service/auth"
)

/* ───────── stub implementation ───────── */

type stubUsers struct {
	data   map[string]*entity.User
	nextID int
	err    error
}

func newStubUsers() *stubUsers {
	return &stubUsers{data: map[string]*entity.User{}, nextID: 1}
}

func (s *stubUsers) Get(_ context.Context, id string) (*entity.User, error) {
	return s.data[id], s.err
}

func (s *stubUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.data {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) FindByEmailOrUsername(_ context.Context, email, username string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.data {
		if u.Email == email || u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.data {
		if existing.Email == u.Email || existing.Username == u.Username {
			return repository.ErrConflict
		}
	}
	u.ID = fmt.Sprintf("user-%d", s.nextID)
	s.nextID++
	s.data[u.ID] = u
	return nil
}

func testService(users repository.UserStore) *auth.Service {
	return auth.NewService(users, []byte("test-secret-with-enough-entropy"))
}

var validInput = auth.SignupInput{
	Email:    "jane@example.com",
	Username: "jane",
	Password: "correct-horse",
}

/* ───────── tests ───────── */

func TestSignup(t *testing.T) {
	users := newStubUsers()
	svc := testService(users)

	user, token, err := svc.Signup(context.Background(), validInput)
	if err != nil {
		t.Fatalf("Signup err=%v", err)
	}
	if user.ID == "" {
		t.Error("user ID not assigned")
	}
	if user.HashedPassword == validInput.Password {
		t.Error("password stored in plaintext")
	}
	if user.IsAdmin {
		t.Error("fresh signups must not be admin")
	}
	if token == "" {
		t.Error("no token issued")
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, user.ID)
	}
	if claims.IsAdmin {
		t.Error("claims.IsAdmin = true, want false")
	}
}

func TestSignup_Validation(t *testing.T) {
	svc := testService(newStubUsers())

	tests := []struct {
		name   string
		mutate func(*auth.SignupInput)
	}{
		{name: "missing email", mutate: func(in *auth.SignupInput) { in.Email = "" }},
		{name: "malformed email", mutate: func(in *auth.SignupInput) { in.Email = "nope" }},
		{name: "missing username", mutate: func(in *auth.SignupInput) { in.Username = "" }},
		{name: "short password", mutate: func(in *auth.SignupInput) { in.Password = "short" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput
			tt.mutate(&in)
			if _, _, err := svc.Signup(context.Background(), in); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSignup_Duplicate(t *testing.T) {
	svc := testService(newStubUsers())

	if _, _, err := svc.Signup(context.Background(), validInput); err != nil {
		t.Fatalf("first Signup err=%v", err)
	}

	// same email, different username
	in := validInput
	in.Username = "janet"
	if _, _, err := svc.Signup(context.Background(), in); !errors.Is(err, auth.ErrUserExists) {
		t.Errorf("duplicate email: err = %v, want ErrUserExists", err)
	}

	// same username, different email
	in = validInput
	in.Email = "jane2@example.com"
	if _, _, err := svc.Signup(context.Background(), in); !errors.Is(err, auth.ErrUserExists) {
		t.Errorf("duplicate username: err = %v, want ErrUserExists", err)
	}
}

func TestLogin(t *testing.T) {
	users := newStubUsers()
	svc := testService(users)

	created, _, err := svc.Signup(context.Background(), validInput)
	if err != nil {
		t.Fatalf("Signup err=%v", err)
	}

	user, token, err := svc.Login(context.Background(), validInput.Email, validInput.Password)
	if err != nil {
		t.Fatalf("Login err=%v", err)
	}
	if user.ID != created.ID {
		t.Errorf("user.ID = %q, want %q", user.ID, created.ID)
	}
	if token == "" {
		t.Error("no token issued")
	}

	// email comparison is case-insensitive
	if _, _, err := svc.Login(context.Background(), "Jane@Example.com", validInput.Password); err != nil {
		t.Errorf("mixed-case email Login err=%v", err)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := testService(newStubUsers())

	if _, _, err := svc.Signup(context.Background(), validInput); err != nil {
		t.Fatalf("Signup err=%v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "who@example.com", password: validInput.Password},
		{name: "wrong password", email: validInput.Email, password: "wrong-password"},
		{name: "empty password", email: validInput.Email, password: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, auth.ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestParseToken_Invalid(t *testing.T) {
	svc := testService(newStubUsers())

	other := auth.NewService(newStubUsers(), []byte("a-completely-different-secret"))
	foreign, err := other.IssueToken(&entity.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("IssueToken err=%v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "wrong secret", token: foreign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ParseToken(tt.token); !errors.Is(err, auth.ErrInvalidToken) {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestParseToken_Expired(t *testing.T) {
	users := newStubUsers()
	svc := testService(users)
	svc.TokenTTL = time.Minute

	past := time.Now().Add(-2 * time.Hour)
	svc.Now = func() time.Time { return past }

	token, err := svc.IssueToken(&entity.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("IssueToken err=%v", err)
	}

	svc.Now = nil // back to the real clock
	if _, err := svc.ParseToken(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken for expired token", err)
	}
}

func TestIssueToken_AdminClaim(t *testing.T) {
	svc := testService(newStubUsers())

	token, err := svc.IssueToken(&entity.User{ID: "admin-1", IsAdmin: true})
	if err != nil {
		t.Fatalf("IssueToken err=%v", err)
	}
	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if !claims.IsAdmin {
		t.Error("claims.IsAdmin = false, want true")
	}
}
