package service

import (
	"context"

	domainservice "quill/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// IdentityProvider is a mock implementation of service.IdentityProvider.
type IdentityProvider struct {
	mock.Mock
}

func (m *IdentityProvider) SignUp(ctx context.Context, email, password string, attrs domainservice.SignUpAttributes) error {
	args := m.Called(ctx, email, password, attrs)

	return args.Error(0)
}

func (m *IdentityProvider) Confirm(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)

	return args.Error(0)
}

func (m *IdentityProvider) Authenticate(ctx context.Context, email, password string) (*domainservice.AuthTokens, error) {
	args := m.Called(ctx, email, password)
	tokens, _ := args.Get(0).(*domainservice.AuthTokens)

	return tokens, args.Error(1)
}

func (m *IdentityProvider) Profile(ctx context.Context, accessToken string) (*domainservice.IdentityProfile, error) {
	args := m.Called(ctx, accessToken)
	profile, _ := args.Get(0).(*domainservice.IdentityProfile)

	return profile, args.Error(1)
}
