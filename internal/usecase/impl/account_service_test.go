package impl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"
	mocksrepo "quill/internal/mocks/repository"
	mocksservice "quill/internal/mocks/service"
	"quill/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type accountFixture struct {
	userRepo *mocksrepo.UserRepository
	hasher   *mocksservice.PasswordHasher
	identity *mocksservice.IdentityProvider
	svc      usecase.AccountUsecase
}

func newAccountFixture() *accountFixture {
	userRepo := new(mocksrepo.UserRepository)
	hasher := new(mocksservice.PasswordHasher)
	identity := new(mocksservice.IdentityProvider)

	svc := NewAccountService(AccountServiceParams{
		TxManager: &mocksrepo.TransactionManager{
			Factory: &mocksrepo.RepositoryFactory{Users: userRepo},
		},
		UserRepo: userRepo,
		Hasher:   hasher,
		Identity: identity,
		Logger:   newTestLogger(),
	})

	return &accountFixture{
		userRepo: userRepo,
		hasher:   hasher,
		identity: identity,
		svc:      svc,
	}
}

func TestAccountService_SignUp(t *testing.T) {
	t.Run("registers identity with profile attributes", func(t *testing.T) {
		f := newAccountFixture()
		f.identity.On("SignUp", mock.Anything, "jane@example.com", "pw1", service.SignUpAttributes{
			Email:     "jane@example.com",
			FirstName: "Jane",
			LastName:  "Doe",
		}).Return(nil)

		err := f.svc.SignUp(context.Background(), &usecase.SignUpInput{
			FirstName:       "Jane",
			LastName:        "Doe",
			Age:             30,
			Email:           "jane@example.com",
			Password:        "pw1",
			ConfirmPassword: "pw1",
		})

		require.NoError(t, err)
		f.identity.AssertExpectations(t)
	})

	t.Run("rejects mismatched passwords before calling the provider", func(t *testing.T) {
		f := newAccountFixture()

		err := f.svc.SignUp(context.Background(), &usecase.SignUpInput{
			Email:           "jane@example.com",
			Password:        "pw1",
			ConfirmPassword: "pw2",
		})

		assert.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)
		f.identity.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("maps an existing identity to a duplicate user error", func(t *testing.T) {
		f := newAccountFixture()
		f.identity.On("SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(service.ErrIdentityExists)

		err := f.svc.SignUp(context.Background(), &usecase.SignUpInput{
			Email:           "jane@example.com",
			Password:        "pw1",
			ConfirmPassword: "pw1",
		})

		assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	})

	t.Run("maps unexpected provider failures to a gateway error", func(t *testing.T) {
		f := newAccountFixture()
		f.identity.On("SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)

		err := f.svc.SignUp(context.Background(), &usecase.SignUpInput{
			Email:           "jane@example.com",
			Password:        "pw1",
			ConfirmPassword: "pw1",
		})

		assert.ErrorIs(t, err, domainerrors.ErrIdentityProviderFailed)
	})
}

func TestAccountService_SignIn(t *testing.T) {
	tokens := &service.AuthTokens{AccessToken: "at", IDToken: "it", RefreshToken: "rt"}
	profile := &service.IdentityProfile{
		SubjectID: "sub-123",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	}

	t.Run("creates the local user on first signin", func(t *testing.T) {
		f := newAccountFixture()
		f.identity.On("Confirm", mock.Anything, "jane@example.com", "123456").Return(nil)
		f.identity.On("Authenticate", mock.Anything, "jane@example.com", "pw1").Return(tokens, nil)
		f.identity.On("Profile", mock.Anything, "at").Return(profile, nil)
		f.userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, repository.ErrUserNotFound)
		f.hasher.On("Hash", "pw1").Return("hashed-pw", nil)
		f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*entity.User)
				user.ID = 7
			}).
			Return(nil)

		out, err := f.svc.SignIn(context.Background(), &usecase.SignInInput{
			Email:    "jane@example.com",
			Password: "pw1",
			OTP:      "123456",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), out.User.ID)
		assert.Equal(t, "sub-123", out.User.ExternalID)
		assert.Equal(t, "hashed-pw", out.User.PasswordHash)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("repeat signin with confirmed identity reuses the existing row", func(t *testing.T) {
		f := newAccountFixture()
		existing := &entity.User{ID: 7, Email: "jane@example.com", ExternalID: "sub-123"}
		f.identity.On("Confirm", mock.Anything, "jane@example.com", "123456").
			Return(service.ErrAlreadyConfirmed)
		f.identity.On("Authenticate", mock.Anything, "jane@example.com", "pw1").Return(tokens, nil)
		f.identity.On("Profile", mock.Anything, "at").Return(profile, nil)
		f.userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(existing, nil)

		out, err := f.svc.SignIn(context.Background(), &usecase.SignInInput{
			Email:    "jane@example.com",
			Password: "pw1",
			OTP:      "123456",
		})

		require.NoError(t, err)
		assert.Same(t, existing, out.User)
		f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		f := newAccountFixture()
		f.identity.On("Confirm", mock.Anything, "jane@example.com", "000000").
			Return(service.ErrCodeMismatch)

		_, err := f.svc.SignIn(context.Background(), &usecase.SignInInput{
			Email:    "jane@example.com",
			Password: "pw1",
			OTP:      "000000",
		})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidOTP)
		f.identity.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad credentials after confirmation are unauthorized", func(t *testing.T) {
		f := newAccountFixture()
		f.identity.On("Confirm", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.identity.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, service.ErrNotAuthorized)

		_, err := f.svc.SignIn(context.Background(), &usecase.SignInInput{
			Email:    "jane@example.com",
			Password: "wrong",
			OTP:      "123456",
		})

		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	})

	t.Run("losing a concurrent insert race falls back to the winner's row", func(t *testing.T) {
		// The duplicate-key failure leaves the transaction aborted: any
		// further statement on it errors. The tx-bound repo simulates that,
		// so the recovery read must go through the plain repo.
		txRepo := new(mocksrepo.UserRepository)
		directRepo := new(mocksrepo.UserRepository)
		hasher := new(mocksservice.PasswordHasher)
		identity := new(mocksservice.IdentityProvider)
		svc := NewAccountService(AccountServiceParams{
			TxManager: &mocksrepo.TransactionManager{
				Factory: &mocksrepo.RepositoryFactory{Users: txRepo},
			},
			UserRepo: directRepo,
			Hasher:   hasher,
			Identity: identity,
			Logger:   newTestLogger(),
		})

		winner := &entity.User{ID: 9, Email: "jane@example.com"}
		identity.On("Confirm", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		identity.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).Return(tokens, nil)
		identity.On("Profile", mock.Anything, "at").Return(profile, nil)
		hasher.On("Hash", "pw1").Return("hashed-pw", nil)
		directRepo.On("FindByEmail", mock.Anything, "jane@example.com").
			Return(nil, repository.ErrUserNotFound).Once()
		txRepo.On("Create", mock.Anything, mock.Anything).
			Return(domainerrors.ErrEmailAlreadyRegistered)
		txRepo.On("FindByEmail", mock.Anything, mock.Anything).
			Return(nil, errors.New("current transaction is aborted")).Maybe()
		directRepo.On("FindByEmail", mock.Anything, "jane@example.com").
			Return(winner, nil).Once()

		out, err := svc.SignIn(context.Background(), &usecase.SignInInput{
			Email:    "jane@example.com",
			Password: "pw1",
			OTP:      "123456",
		})

		require.NoError(t, err)
		assert.Same(t, winner, out.User)
		txRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}

func TestAccountService_Login(t *testing.T) {
	t.Run("returns provider tokens without touching the store", func(t *testing.T) {
		f := newAccountFixture()
		f.identity.On("Authenticate", mock.Anything, "jane@example.com", "pw1").
			Return(&service.AuthTokens{AccessToken: "at", IDToken: "it", RefreshToken: "rt"}, nil)

		out, err := f.svc.Login(context.Background(), &usecase.ProviderLoginInput{
			Email:    "jane@example.com",
			Password: "pw1",
		})

		require.NoError(t, err)
		assert.Equal(t, "at", out.AccessToken)
		assert.Equal(t, "it", out.IDToken)
		assert.Equal(t, "rt", out.RefreshToken)
		f.userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("rejected credentials are unauthorized", func(t *testing.T) {
		f := newAccountFixture()
		f.identity.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, service.ErrNotAuthorized)

		_, err := f.svc.Login(context.Background(), &usecase.ProviderLoginInput{
			Email:    "jane@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	})
}
