package usecase

import (
	"context"

	"quill/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required for local registration.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LocalLoginInput defines the data for the local password login.
type LocalLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserInput carries the administrative name update. Nil fields are
// left untouched.
type UpdateUserInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user.
type RegisterOutput struct {
	User *entity.User
}

// LocalLoginOutput returns the authenticated user and locally issued tokens.
type LocalLoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the local credential flow and administrative CRUD
// over the credential store.
type UserUsecase interface {
	// Register hashes the password and inserts a user row. Duplicate emails
	// surface as a store-level integrity failure, never a pre-check.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies the password against the stored hash.
	Login(ctx context.Context, input *LocalLoginInput) (*LocalLoginOutput, error)

	// Get retrieves a single user by id.
	Get(ctx context.Context, id int64) (*entity.User, error)

	// List returns all user records.
	List(ctx context.Context) ([]*entity.User, error)

	// Update modifies the name fields of an existing user.
	Update(ctx context.Context, id int64, input *UpdateUserInput) error

	// Delete removes a user record.
	Delete(ctx context.Context, id int64) error
}
