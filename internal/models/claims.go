package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the payload of a session token.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"id"`
	Email  string `json:"email"`
}
