package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the identity data bound into a minted token.
type AccessTokenPayload struct {
	UserID   int64
	UserName string
	JTI      string
}

// AccessTokenClaims is the typed JWT body presented back by clients.
type AccessTokenClaims struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	jwt.RegisteredClaims
}
