package repository

import (
	"context"

	"quill/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// PostRepository is a mock implementation of repository.PostRepository.
type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) FindByID(ctx context.Context, id int64) (*entity.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*entity.Post)

	return post, args.Error(1)
}

func (m *PostRepository) FindAll(ctx context.Context) ([]*entity.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]*entity.Post)

	return posts, args.Error(1)
}

func (m *PostRepository) Create(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)

	return args.Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
