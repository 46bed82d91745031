// Package auth handles user authentication business logic: signup, login and
// JWT issuance. This service is framework-agnostic and can be used with any
// HTTP framework or CLI.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/repository"
)

// Sentinel errors for authentication operations.
var (
	// ErrUserExists indicates that the email or username is already taken.
	ErrUserExists = errors.New("email or username already registered")

	// ErrInvalidCredentials indicates a failed login. The same error covers
	// unknown emails and wrong passwords so callers cannot probe for accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken indicates that a JWT failed validation.
	ErrInvalidToken = errors.New("invalid token")
)

// DefaultTokenTTL is how long issued tokens stay valid.
const DefaultTokenTTL = 24 * time.Hour

const minPasswordLength = 8

// SignupInput represents the input parameters for registering a user.
type SignupInput struct {
	Email    string
	Username string
	Password string
}

// Claims is the verified identity extracted from a token.
type Claims struct {
	UserID  string
	IsAdmin bool
}

// Service provides signup, login and token operations over the user store.
type Service struct {
	Users    repository.UserStore
	Secret   []byte
	TokenTTL time.Duration

	// Now is the clock for token timestamps. Nil means time.Now.
	Now func() time.Time
}

// NewService creates an authentication service with the default token TTL.
func NewService(users repository.UserStore, secret []byte) *Service {
	return &Service{Users: users, Secret: secret, TokenTTL: DefaultTokenTTL}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Signup registers a new user and returns the created user with a fresh
// token. Returns a ValidationError for malformed input and ErrUserExists when
// the email or username is taken.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.User, string, error) {
	if err := validateSignup(in); err != nil {
		return nil, "", err
	}

	existing, err := s.Users.FindByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, "", fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Email:          strings.ToLower(in.Email),
		Username:       in.Username,
		HashedPassword: string(hashed),
		CreatedAt:      s.now(),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		// Unique indexes close the race between the lookup and the insert.
		if errors.Is(err, repository.ErrConflict) {
			return nil, "", ErrUserExists
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// Returns ErrInvalidCredentials when the email is unknown or the password
// does not match.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.Users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken signs a new HS256 token for the user.
func (s *Service) IssueToken(user *entity.User) (string, error) {
	now := s.now()
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"admin": user.IsAdmin,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a signed token and extracts its claims.
// Returns ErrInvalidToken for anything that does not verify.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrInvalidToken
	}
	admin, _ := claims["admin"].(bool)

	return &Claims{UserID: sub, IsAdmin: admin}, nil
}

func validateSignup(in SignupInput) error {
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return &entity.ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	if in.Username == "" {
		return &entity.ValidationError{Field: "username", Message: "is required"}
	}
	if len(in.Password) < minPasswordLength {
		return &entity.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", minPasswordLength),
		}
	}
	return nil
}
