// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"quill/internal/domain/entity"
)

// --- Input DTOs ---

// SignUpInput defines the data required to start the provider-backed signup flow.
type SignUpInput struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Age             int    `json:"age" validate:"gte=0"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// SignInInput defines the data required for the OTP-gated signin flow.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	OTP      string `json:"otp" validate:"required"`
}

// ProviderLoginInput defines the data for the credential-only provider login.
type ProviderLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// SignInOutput returns the signed-in user's local record.
type SignInOutput struct {
	User *entity.User
}

// ProviderLoginOutput returns the provider-issued tokens.
type ProviderLoginOutput struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
}

// AccountUsecase defines the provider-backed credential lifecycle:
// signup with out-of-band OTP delivery, OTP-confirmed signin that reconciles
// the external identity with the local store, and a stateless login.
type AccountUsecase interface {
	// SignUp registers a pending identity with the provider. No local record
	// is created.
	SignUp(ctx context.Context, input *SignUpInput) error

	// SignIn confirms the OTP, authenticates, fetches the provider profile,
	// and creates the local user record on first signin. Idempotent per email.
	SignIn(ctx context.Context, input *SignInInput) (*SignInOutput, error)

	// Login authenticates against the provider and returns its tokens.
	// It performs no reads or writes against the local store.
	Login(ctx context.Context, input *ProviderLoginInput) (*ProviderLoginOutput, error)
}
