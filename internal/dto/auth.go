package dto

import (
	"time"

	"github.com/noah-isme/lms-ai-api/internal/models"
)

// LoginRequest is the credential payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token issued on login.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        UserInfo  `json:"user"`
}

// UserInfo is the public projection of a user. Passwords never leave the server.
type UserInfo struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// NewUserInfo projects a user.
func NewUserInfo(u models.User) UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, Role: u.Role}
}

// NewUserInfoList projects every user in order.
func NewUserInfoList(users []models.User) []UserInfo {
	out := make([]UserInfo, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserInfo(u))
	}
	return out
}
