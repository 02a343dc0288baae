package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims for the locally issued JWT tokens.
type Claims struct {
	UserID int64  `json:"uid"`
	Type   string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating the JWTs
// issued by the local authentication flow.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID int64) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token string and returns its claims.
	ValidateAccessToken(tokenString string) (*Claims, error)
}
