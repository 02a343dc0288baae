package handler

import (
	"log/slog"
	"net/http"
	"time"

	"quill/internal/delivery/http/response"
	"quill/internal/domain/entity"
	"quill/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// postView is the outward representation of a post.
type postView struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toPostView(post *entity.Post) *postView {
	if post == nil {
		return nil
	}

	return &postView{
		ID:        post.ID,
		Content:   post.Content,
		UserID:    post.UserID,
		CreatedAt: post.CreatedAt,
	}
}

// PostHandler holds dependencies for post-related handlers.
type PostHandler struct {
	uc     usecase.PostUsecase
	logger *slog.Logger
}

// NewPostHandler is the constructor for PostHandler, injected by Fx.
func NewPostHandler(uc usecase.PostUsecase, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles creating a new post.
func (h *PostHandler) Create(c echo.Context) error {
	var input *usecase.CreatePostInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	post, err := h.uc.Create(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostView(post), "Post created successfully")
}

// List handles listing all posts.
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, toPostView(post))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// Get handles fetching a single post by id.
func (h *PostHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	post, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostView(post), "")
}

// Delete handles removing a post. The deleted record is returned.
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	post, err := h.uc.Delete(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostView(post), "Post deleted successfully")
}
