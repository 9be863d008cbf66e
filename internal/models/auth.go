package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims binds a token to a stored session.
type JWTClaims struct {
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	jwt.RegisteredClaims
}
