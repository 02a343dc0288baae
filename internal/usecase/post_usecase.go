package usecase

import (
	"context"

	"quill/internal/domain/entity"
)

// CreatePostInput defines the data required to create a post.
type CreatePostInput struct {
	Content string `json:"content" validate:"required"`
	UserID  int64  `json:"user_id" validate:"required"`
}

// PostUsecase defines the content operations.
type PostUsecase interface {
	// Create persists a new post.
	Create(ctx context.Context, input *CreatePostInput) (*entity.Post, error)

	// List returns all posts.
	List(ctx context.Context) ([]*entity.Post, error)

	// Get retrieves a single post by id.
	Get(ctx context.Context, id int64) (*entity.Post, error)

	// Delete removes a post. The deleted post is returned.
	Delete(ctx context.Context, id int64) (*entity.Post, error)
}
