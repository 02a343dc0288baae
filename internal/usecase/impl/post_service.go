package impl

import (
	"context"
	"log/slog"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// postService implements the PostUsecase interface.
type postService struct {
	txManager repository.TransactionManager
	postRepo  repository.PostRepository
	logger    *slog.Logger
}

// PostServiceParams holds dependencies for PostService, injected by Fx.
type PostServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	PostRepo  repository.PostRepository
	Logger    *slog.Logger
}

// NewPostService is the constructor for postService. It receives all dependencies as interfaces.
func NewPostService(params PostServiceParams) usecase.PostUsecase {
	return &postService{
		txManager: params.TxManager,
		postRepo:  params.PostRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create persists a new post after checking the author exists.
func (srv *postService) Create(ctx context.Context, input *usecase.CreatePostInput) (*entity.Post, error) {
	post := &entity.Post{
		Content: input.Content,
		UserID:  input.UserID,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.UserRepo().FindByID(ctx, input.UserID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("post author does not exist")
			}

			return errors.Wrap(err, "failed to find post author")
		}

		return repoFactory.PostRepo().Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Created post", slog.Int64("post_id", post.ID), slog.Int64("user_id", post.UserID))

	return post, nil
}

// List returns all posts.
func (srv *postService) List(ctx context.Context) ([]*entity.Post, error) {
	posts, err := srv.postRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return posts, nil
}

// Get retrieves a single post by id.
func (srv *postService) Get(ctx context.Context, id int64) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, domainerrors.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find post")
	}

	return post, nil
}

// Delete removes a post and returns the deleted record. The read and delete
// run in one transaction so the returned snapshot matches what was removed.
func (srv *postService) Delete(ctx context.Context, id int64) (*entity.Post, error) {
	var deleted *entity.Post
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()

		post, err := postRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return domainerrors.ErrPostNotFound
			}

			return errors.Wrap(err, "failed to find post")
		}

		if err := postRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return domainerrors.ErrPostNotFound
			}

			return err
		}

		deleted = post

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Deleted post", slog.Int64("post_id", id))

	return deleted, nil
}
