package service

import (
	domainservice "quill/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// TokenService is a mock implementation of service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) GenerateTokens(userID int64) (string, string, error) {
	args := m.Called(userID)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *TokenService) ValidateAccessToken(tokenString string) (*domainservice.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*domainservice.Claims)

	return claims, args.Error(1)
}
