// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"
	"quill/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface on top of an
// external identity provider.
type accountService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	identity  service.IdentityProvider
	logger    *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Identity  service.IdentityProvider `optional:"true"`
	Logger    *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		identity:  params.Identity,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp registers a pending identity with the provider. The provider delivers
// the confirmation code out of band; no local record is created here.
func (srv *accountService) SignUp(ctx context.Context, input *usecase.SignUpInput) error {
	if input.Password != input.ConfirmPassword {
		return domainerrors.ErrPasswordMismatch
	}

	srv.log(ctx).Info("Starting provider signup", slog.String("email", input.Email))

	err := srv.identity.SignUp(ctx, input.Email, input.Password, service.SignUpAttributes{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		if errors.Is(err, service.ErrIdentityExists) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("signup rejected by provider")
		}

		srv.log(ctx).Error("Provider signup failed", slog.Any("error", err))

		return domainerrors.ErrIdentityProviderFailed.WrapMessage("signup request failed")
	}

	return nil
}

// SignIn confirms the one-time passcode, authenticates against the provider,
// and reconciles the provider profile with the local store. Repeat signins for
// an already confirmed identity succeed without creating a second record.
func (srv *accountService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.SignInOutput, error) {
	logger := srv.log(ctx)
	logger.Info("Starting provider signin", slog.String("email", input.Email))

	if err := srv.identity.Confirm(ctx, input.Email, input.OTP); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyConfirmed):
			// Identity was confirmed on an earlier signin. Proceed to authenticate.
		case errors.Is(err, service.ErrCodeMismatch):
			return nil, domainerrors.ErrInvalidOTP.WrapMessage("confirmation rejected")
		default:
			logger.Error("Provider confirmation failed", slog.Any("error", err))

			return nil, domainerrors.ErrIdentityProviderFailed.WrapMessage("confirmation request failed")
		}
	}

	tokens, err := srv.identity.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			return nil, domainerrors.ErrUnauthorized.WrapMessage("provider rejected credentials")
		}

		logger.Error("Provider authentication failed", slog.Any("error", err))

		return nil, domainerrors.ErrIdentityProviderFailed.WrapMessage("authentication request failed")
	}

	profile, err := srv.identity.Profile(ctx, tokens.AccessToken)
	if err != nil {
		logger.Error("Provider profile lookup failed", slog.Any("error", err))

		return nil, domainerrors.ErrIdentityProviderFailed.WrapMessage("profile request failed")
	}

	user, err := srv.reconcileLocalUser(ctx, profile, input.Password)
	if err != nil {
		return nil, err
	}

	return &usecase.SignInOutput{User: user}, nil
}

// reconcileLocalUser ensures a local record exists for the provider identity.
// The common repeat-signin case is a plain read; only first signins open a
// transaction. The insert races with concurrent signins for the same email,
// so a duplicate key on create is resolved by re-reading the winner's row.
func (srv *accountService) reconcileLocalUser(ctx context.Context, profile *service.IdentityProfile, password string) (*entity.User, error) {
	existing, err := srv.userRepo.FindByEmail(ctx, profile.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to look up user by email")
	}

	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash signin password")
	}

	user := &entity.User{
		ExternalID:   profile.SubjectID,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		Email:        profile.Email,
		PasswordHash: hash,
	}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrEmailAlreadyRegistered) {
			// Lost the race to a concurrent signin. The failed insert has
			// aborted and rolled back the transaction, so the winner's row
			// must be read on a fresh connection, never on the dead tx.
			winner, findErr := srv.userRepo.FindByEmail(ctx, profile.Email)
			if findErr != nil {
				return nil, errors.Wrap(findErr, "failed to load user after duplicate insert")
			}

			return winner, nil
		}

		return nil, err
	}

	srv.log(ctx).Info("Created local user for provider identity",
		slog.Int64("user_id", user.ID),
		slog.String("subject_id", profile.SubjectID))

	return user, nil
}

// Login authenticates against the provider and returns its tokens. The local
// store is never touched.
func (srv *accountService) Login(ctx context.Context, input *usecase.ProviderLoginInput) (*usecase.ProviderLoginOutput, error) {
	srv.log(ctx).Info("Provider login", slog.String("email", input.Email))

	tokens, err := srv.identity.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			return nil, domainerrors.ErrUnauthorized.WrapMessage("provider rejected credentials")
		}

		srv.log(ctx).Error("Provider authentication failed", slog.Any("error", err))

		return nil, domainerrors.ErrIdentityProviderFailed.WrapMessage("authentication request failed")
	}

	return &usecase.ProviderLoginOutput{
		AccessToken:  tokens.AccessToken,
		IDToken:      tokens.IDToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}
