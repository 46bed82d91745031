package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/requestid"
	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/respond"
	authservice "github.com/soban-iftikhar/BuzzNews/internal/service/auth"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignupHandler registers a new user and returns a token response.
type SignupHandler struct{ Svc *authservice.Service }

func (h SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := validateRequest(req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	user, token, err := h.Svc.Signup(r.Context(), authservice.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, authservice.ErrUserExists) {
			code = http.StatusBadRequest
		}
		var vErr *entity.ValidationError
		if errors.As(err, &vErr) {
			code = http.StatusBadRequest
		}
		logger.Warn("signup failed",
			slog.String("reason", respond.SanitizeError(err)),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		respond.SafeError(w, code, err)
		return
	}

	logger.Info("signup successful",
		slog.String("user_id", user.ID),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	respond.JSON(w, http.StatusCreated, toTokenDTO(user, token))
}
