package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in an API access token
type TokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}
