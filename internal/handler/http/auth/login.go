package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/requestid"
	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/respond"
	authservice "github.com/soban-iftikhar/BuzzNews/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler authenticates a user by email and password and issues a token.
type LoginHandler struct{ Svc *authservice.Service }

func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := validateRequest(req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	user, token, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			code = http.StatusUnauthorized
		}
		logger.Warn("authentication failed",
			slog.String("reason", "invalid_credentials"),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		respond.SafeError(w, code, err)
		return
	}

	logger.Info("authentication successful",
		slog.String("user_id", user.ID),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	respond.JSON(w, http.StatusOK, toTokenDTO(user, token))
}
