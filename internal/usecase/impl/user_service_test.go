package impl

import (
	"context"
	"testing"

	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	mocksrepo "quill/internal/mocks/repository"
	mocksservice "quill/internal/mocks/service"
	"quill/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	userRepo     *mocksrepo.UserRepository
	hasher       *mocksservice.PasswordHasher
	tokenService *mocksservice.TokenService
	svc          usecase.UserUsecase
}

func newUserFixture() *userFixture {
	userRepo := new(mocksrepo.UserRepository)
	hasher := new(mocksservice.PasswordHasher)
	tokenService := new(mocksservice.TokenService)

	svc := NewUserService(UserServiceParams{
		TxManager: &mocksrepo.TransactionManager{
			Factory: &mocksrepo.RepositoryFactory{Users: userRepo},
		},
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newTestLogger(),
	})

	return &userFixture{
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		svc:          svc,
	}
}

func TestUserService_Register(t *testing.T) {
	t.Run("stores the hash, never the plaintext", func(t *testing.T) {
		f := newUserFixture()
		f.hasher.On("Hash", "secret").Return("hashed-secret", nil)
		f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*entity.User)
				user.ID = 1
			}).
			Return(nil)

		out, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Password: "secret",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), out.User.ID)
		assert.Equal(t, "Jane", out.User.FirstName)
		assert.Equal(t, "Doe", out.User.LastName)
		assert.Equal(t, "hashed-secret", out.User.PasswordHash)
		assert.NotEqual(t, "secret", out.User.PasswordHash)
	})

	t.Run("duplicate email surfaces the store's integrity failure", func(t *testing.T) {
		f := newUserFixture()
		f.hasher.On("Hash", "secret").Return("hashed-secret", nil)
		f.userRepo.On("Create", mock.Anything, mock.Anything).
			Return(domainerrors.ErrEmailAlreadyRegistered)

		_, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
			Name:     "Jane",
			Email:    "jane@example.com",
			Password: "secret",
		})

		assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
	})

	t.Run("hash failure aborts before the store is touched", func(t *testing.T) {
		f := newUserFixture()
		f.hasher.On("Hash", "secret").Return("", assert.AnError)

		_, err := f.svc.Register(context.Background(), &usecase.RegisterInput{
			Name:     "Jane",
			Email:    "jane@example.com",
			Password: "secret",
		})

		assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
		f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_Login(t *testing.T) {
	stored := &entity.User{ID: 3, Email: "jane@example.com", PasswordHash: "hashed-secret"}

	t.Run("issues tokens on a correct password", func(t *testing.T) {
		f := newUserFixture()
		f.userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(stored, nil)
		f.hasher.On("Check", "secret", "hashed-secret").Return(true)
		f.tokenService.On("GenerateTokens", int64(3)).Return("access", "refresh", nil)

		out, err := f.svc.Login(context.Background(), &usecase.LocalLoginInput{
			Email:    "jane@example.com",
			Password: "secret",
		})

		require.NoError(t, err)
		assert.Same(t, stored, out.User)
		assert.Equal(t, "access", out.AccessToken)
		assert.Equal(t, "refresh", out.RefreshToken)
	})

	t.Run("unknown email and wrong password fail the same way", func(t *testing.T) {
		f := newUserFixture()
		f.userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
			Return(nil, repository.ErrUserNotFound)
		f.userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(stored, nil)
		f.hasher.On("Check", "wrong", "hashed-secret").Return(false)

		_, unknownErr := f.svc.Login(context.Background(), &usecase.LocalLoginInput{
			Email:    "ghost@example.com",
			Password: "secret",
		})
		_, mismatchErr := f.svc.Login(context.Background(), &usecase.LocalLoginInput{
			Email:    "jane@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
		assert.ErrorIs(t, mismatchErr, domainerrors.ErrInvalidCredentials)
		f.tokenService.AssertNotCalled(t, "GenerateTokens", mock.Anything)
	})
}

func TestUserService_Get(t *testing.T) {
	t.Run("returns the user", func(t *testing.T) {
		f := newUserFixture()
		stored := &entity.User{ID: 5}
		f.userRepo.On("FindByID", mock.Anything, int64(5)).Return(stored, nil)

		user, err := f.svc.Get(context.Background(), 5)

		require.NoError(t, err)
		assert.Same(t, stored, user)
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		f := newUserFixture()
		f.userRepo.On("FindByID", mock.Anything, int64(99)).
			Return(nil, repository.ErrUserNotFound)

		_, err := f.svc.Get(context.Background(), 99)

		assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	})
}

func TestUserService_Update(t *testing.T) {
	t.Run("applies only the provided fields", func(t *testing.T) {
		f := newUserFixture()
		stored := &entity.User{ID: 5, FirstName: "Jane", LastName: "Doe"}
		f.userRepo.On("FindByID", mock.Anything, int64(5)).Return(stored, nil)
		f.userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.FirstName == "Janet" && u.LastName == "Doe"
		})).Return(nil)

		firstName := "Janet"
		err := f.svc.Update(context.Background(), 5, &usecase.UpdateUserInput{FirstName: &firstName})

		require.NoError(t, err)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		f := newUserFixture()
		f.userRepo.On("FindByID", mock.Anything, int64(99)).
			Return(nil, repository.ErrUserNotFound)

		err := f.svc.Update(context.Background(), 99, &usecase.UpdateUserInput{})

		assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("deletes the user", func(t *testing.T) {
		f := newUserFixture()
		f.userRepo.On("Delete", mock.Anything, int64(5)).Return(nil)

		require.NoError(t, f.svc.Delete(context.Background(), 5))
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		f := newUserFixture()
		f.userRepo.On("Delete", mock.Anything, int64(99)).Return(repository.ErrUserNotFound)

		assert.ErrorIs(t, f.svc.Delete(context.Background(), 99), domainerrors.ErrUserNotFound)
	})
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		firstName string
		lastName  string
	}{
		{name: "two parts", input: "Jane Doe", firstName: "Jane", lastName: "Doe"},
		{name: "single word", input: "Jane", firstName: "Jane", lastName: ""},
		{name: "three parts keep remainder together", input: "Jane van Doe", firstName: "Jane", lastName: "van Doe"},
		{name: "surrounding whitespace", input: "  Jane Doe  ", firstName: "Jane", lastName: "Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := splitName(tt.input)
			assert.Equal(t, tt.firstName, first)
			assert.Equal(t, tt.lastName, last)
		})
	}
}
