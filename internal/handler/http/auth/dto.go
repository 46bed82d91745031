// Package auth provides HTTP handlers for user signup and login, plus the
// middleware that guards protected endpoints with JWT bearer tokens.
package auth

import (
	"time"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
)

// UserDTO represents the JSON structure for user data transfer.
type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenDTO is the response for both signup and login.
type TokenDTO struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        UserDTO `json:"user"`
}

func toUserDTO(u *entity.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func toTokenDTO(u *entity.User, token string) TokenDTO {
	return TokenDTO{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserDTO(u),
	}
}
