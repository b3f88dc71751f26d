// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "bathroom/internal/delivery/context"
	"bathroom/internal/domain/entity"
	domainerrors "bathroom/internal/domain/errors"
	"bathroom/internal/domain/repository"
	"bathroom/internal/domain/service"
	"bathroom/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Verified against when the email is unknown, so both rejections cost one hash check.
const timingDummyPassword = "bathroom-timing-equalizer"

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	validator service.UserValidator
	logger    *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Validator service.UserValidator
	Logger    *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		validator: params.Validator,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the submission, hashes the password and persists the user.
// The existence pre-check only spares a hash; the store's unique index decides races.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if input == nil {
		input = &usecase.RegisterInput{}
	}

	candidate := entity.Registration{
		Email:        input.Email,
		Password:     input.Password,
		Name:         input.Name,
		Role:         input.Role,
		HomeLocation: input.HomeLocation,
	}.Normalize()

	srv.log(ctx).Debug("Starting registration", slog.String("email", candidate.Email), slog.String("role", candidate.Role.String()))

	if err := srv.validator.ValidateRegistration(candidate); err != nil {
		srv.log(ctx).Info("Registration rejected", slog.String("email", candidate.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "registration rejected")
	}

	exists, err := srv.userRepo.ExistsByEmail(ctx, candidate.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existing email")
	}
	if exists {
		srv.log(ctx).Info("Registration rejected", slog.String("email", candidate.Email), slog.Any("error", domainerrors.ErrUserAlreadyExists))

		return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "registration failed")
	}

	hash, err := srv.hasher.Hash(candidate.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.String("email", candidate.Email), slog.Any("error", err))

		return nil, hashFailure(err)
	}

	user := &entity.User{
		Email:        candidate.Email,
		PasswordHash: hash,
		Name:         candidate.Name,
		Role:         candidate.Role,
		HomeLocation: candidate.HomeLocation.Location(),
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		srv.log(ctx).Warn("Failed to create user", slog.String("email", candidate.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", user.ID))

	return &usecase.RegisterOutput{User: user.Sanitize()}, nil
}

// Authenticate runs one attempt through lookup and verification.
func (srv *authService) Authenticate(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input == nil {
		input = &usecase.LoginInput{}
	}

	email := entity.NormalizeEmail(input.Email)
	logger := srv.log(ctx).With(slog.String("email", email))

	state := usecase.AuthStateIdle
	transition := func(next usecase.AuthState) {
		logger.Debug("Authentication state changed", slog.String("from", state.String()), slog.String("to", next.String()))
		state = next
	}
	reject := func(err error) error {
		transition(usecase.AuthStateRejected)
		logger.Warn("Login failed", slog.Any("error", err))

		return err
	}

	transition(usecase.AuthStateLookupPending)
	user, err := srv.userRepo.FindByEmail(ctx, email, true)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.burnVerification(input.Password)

		return nil, reject(errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed"))
	}
	if err != nil {
		return nil, reject(errors.Wrap(err, "failed to look up user"))
	}

	transition(usecase.AuthStateVerifyPending)
	ok, err := srv.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, reject(hashFailure(err))
	}
	if !ok {
		return nil, reject(errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed"))
	}

	transition(usecase.AuthStateAuthenticated)
	logger.Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{User: user.Sanitize()}, nil
}

// GetUser loads a user without its credential.
func (srv *authService) GetUser(ctx context.Context, id uuid.UUID) (*entity.PublicUser, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrUserNotFound, "get user")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user.Sanitize(), nil
}

// burnVerification spends one Verify on a throwaway hash, built on first use.
func (srv *authService) burnVerification(password string) {
	srv.dummyOnce.Do(func() {
		hash, err := srv.hasher.Hash(timingDummyPassword)
		if err != nil {
			srv.logger.Warn("Failed to build timing hash", slog.Any("error", err))

			return
		}
		srv.dummyHash = hash
	})
	if srv.dummyHash == "" {
		return
	}

	_, _ = srv.hasher.Verify(password, srv.dummyHash)
}

// hashFailure keeps hasher errors under ErrPasswordHashFailed.
func hashFailure(err error) error {
	if errors.Is(err, domainerrors.ErrPasswordHashFailed) {
		return errors.Wrap(err, "password hashing failed")
	}

	return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
}
