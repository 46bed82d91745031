package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	hauth "github.com/soban-iftikhar/BuzzNews/internal/handler/http/auth"
	"github.com/soban-iftikhar/BuzzNews/internal/repository"
	authservice "github.com/soban-iftikhar/BuzzNews/internal/service/auth"
)

type stubUsers struct {
	data map[string]*entity.User
	next int
}

func newStubUsers() *stubUsers {
	return &stubUsers{data: map[string]*entity.User{}}
}

func (s *stubUsers) Get(_ context.Context, id string) (*entity.User, error) {
	return s.data[id], nil
}
func (s *stubUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.data {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (s *stubUsers) FindByEmailOrUsername(_ context.Context, email, username string) (*entity.User, error) {
	for _, u := range s.data {
		if u.Email == email || u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (s *stubUsers) Create(_ context.Context, user *entity.User) error {
	for _, u := range s.data {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrConflict
		}
	}
	s.next++
	user.ID = fmt.Sprintf("user-%d", s.next)
	s.data[user.ID] = user
	return nil
}

var testSecret = []byte("an-acceptably-long-signing-secret-0123")

func newService() *authservice.Service {
	return authservice.NewService(newStubUsers(), testSecret)
}

func TestSignupHandler(t *testing.T) {
	svc := newService()
	handler := hauth.SignupHandler{Svc: svc}

	body := `{"email":"jane@example.com","username":"jane","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body.String())
	}

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		User        struct {
			Email   string `json:"email"`
			IsAdmin bool   `json:"is_admin"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.TokenType != "bearer" {
		t.Errorf("token_type = %q", out.TokenType)
	}
	if out.User.Email != "jane@example.com" || out.User.IsAdmin {
		t.Errorf("user = %+v", out.User)
	}
	if _, err := svc.ParseToken(out.AccessToken); err != nil {
		t.Errorf("issued token does not parse: %v", err)
	}
}

func TestSignupHandler_Validation(t *testing.T) {
	handler := hauth.SignupHandler{Svc: newService()}

	tests := []struct {
		name string
		body string
	}{
		{name: "broken json", body: `{"email":`},
		{name: "missing email", body: `{"username":"jane","password":"correct-horse"}`},
		{name: "bad email", body: `{"email":"nope","username":"jane","password":"correct-horse"}`},
		{name: "short password", body: `{"email":"jane@example.com","username":"jane","password":"short"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("code = %d, want 400", rec.Code)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	svc := newService()
	if _, _, err := svc.Signup(context.Background(), authservice.SignupInput{
		Email: "jane@example.com", Username: "jane", Password: "correct-horse",
	}); err != nil {
		t.Fatal(err)
	}
	handler := hauth.LoginHandler{Svc: svc}

	body := `{"email":"jane@example.com","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	svc := newService()
	if _, _, err := svc.Signup(context.Background(), authservice.SignupInput{
		Email: "jane@example.com", Username: "jane", Password: "correct-horse",
	}); err != nil {
		t.Fatal(err)
	}
	handler := hauth.LoginHandler{Svc: svc}

	body := `{"email":"jane@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", rec.Code)
	}
}

func TestRequireUser(t *testing.T) {
	svc := newService()
	user, token, err := svc.Signup(context.Background(), authservice.SignupInput{
		Email: "jane@example.com", Username: "jane", Password: "correct-horse",
	})
	if err != nil {
		t.Fatal(err)
	}

	var gotUserID string
	protected := hauth.RequireUser(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = hauth.ClaimsFromContext(r.Context()).UserID
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if gotUserID != user.ID {
		t.Errorf("claims user = %q, want %q", gotUserID, user.ID)
	}

	// Missing and garbage tokens are both rejected.
	for _, header := range []string{"", "Bearer not-a-token", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: code = %d, want 401", header, rec.Code)
		}
	}
}

func TestRequireAdmin_RejectsNonAdmin(t *testing.T) {
	svc := newService()
	_, token, err := svc.Signup(context.Background(), authservice.SignupInput{
		Email: "jane@example.com", Username: "jane", Password: "correct-horse",
	})
	if err != nil {
		t.Fatal(err)
	}

	protected := hauth.RequireAdmin(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/articles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("code = %d, want 403", rec.Code)
	}
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	users := newStubUsers()
	svc := authservice.NewService(users, testSecret)

	admin := &entity.User{Email: "root@example.com", Username: "root", IsAdmin: true}
	if err := users.Create(context.Background(), admin); err != nil {
		t.Fatal(err)
	}
	token, err := svc.IssueToken(admin)
	if err != nil {
		t.Fatal(err)
	}

	protected := hauth.RequireAdmin(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/articles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
}
