package repository

import (
	"context"
	"errors"

	"quill/internal/domain/entity"
)

// ErrPostNotFound is a domain-specific error returned when a post is not found.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the standard operations for post persistence.
type PostRepository interface {
	// FindByID retrieves a single post by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Post, error)

	// FindAll retrieves every post.
	FindAll(ctx context.Context) ([]*entity.Post, error)

	// Create persists a new post. The store-assigned id and timestamp are
	// written back into the entity.
	Create(ctx context.Context, post *entity.Post) error

	// Delete removes the post with the given id. Returns ErrPostNotFound
	// when no such row exists.
	Delete(ctx context.Context, id int64) error
}
