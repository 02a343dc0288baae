package service

import (
	"context"
	"errors"
)

// Typed failures the identity provider adapter translates SDK errors into.
// The use case layer matches on these and never sees provider SDK types.
var (
	// ErrIdentityExists is returned by SignUp when the email is already registered.
	ErrIdentityExists = errors.New("identity already exists")

	// ErrCodeMismatch is returned by Confirm when the one-time passcode is wrong or expired.
	ErrCodeMismatch = errors.New("confirmation code mismatch")

	// ErrAlreadyConfirmed is returned by Confirm when the identity was verified earlier.
	// Repeat signins treat this as success.
	ErrAlreadyConfirmed = errors.New("identity already confirmed")

	// ErrNotAuthorized is returned by Authenticate on credential mismatch.
	ErrNotAuthorized = errors.New("not authorized")
)

// SignUpAttributes carries the profile attributes registered with a pending identity.
type SignUpAttributes struct {
	Email     string
	FirstName string
	LastName  string
}

// AuthTokens are the bearer tokens the provider issues on successful authentication.
type AuthTokens struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
}

// IdentityProfile is the provider's view of an authenticated identity.
type IdentityProfile struct {
	SubjectID string // The provider's stable subject identifier ("sub").
	Email     string
	FirstName string
	LastName  string
}

// IdentityProvider is a facade over the external managed identity service.
// It owns no local state; every call is a pass-through with typed failure translation.
type IdentityProvider interface {
	// SignUp registers a pending identity and triggers out-of-band OTP delivery.
	SignUp(ctx context.Context, email, password string, attrs SignUpAttributes) error

	// Confirm marks a pending identity verified using the delivered OTP.
	Confirm(ctx context.Context, email, code string) error

	// Authenticate validates credentials and returns the provider's tokens.
	Authenticate(ctx context.Context, email, password string) (*AuthTokens, error)

	// Profile returns the stored attributes for the identity behind an access token.
	Profile(ctx context.Context, accessToken string) (*IdentityProfile, error)
}
