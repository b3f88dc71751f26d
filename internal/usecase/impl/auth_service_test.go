package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bathroom/internal/domain/entity"
	domainerrors "bathroom/internal/domain/errors"
	"bathroom/internal/domain/repository"
	mockRepo "bathroom/internal/mocks/repository"
	mockSvc "bathroom/internal/mocks/service"
	"bathroom/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service   usecase.AuthUsecase
	userRepo  *mockRepo.MockUserRepository
	hasher    *mockSvc.MockPasswordHasher
	validator *mockSvc.MockUserValidator
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	validator := mockSvc.NewMockUserValidator(t)

	service := NewAuthService(AuthServiceParams{
		UserRepo:  userRepo,
		Hasher:    hasher,
		Validator: validator,
		Logger:    newDiscardLogger(),
	})

	return authServiceFixtures{
		service:   service,
		userRepo:  userRepo,
		hasher:    hasher,
		validator: validator,
	}
}

func registerInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Email:    "  Test@Example.com ",
		Password: "password123",
		Name:     " Test User ",
		HomeLocation: entity.NewLocationInput(40.7128, -74.0060, "New York, NY, USA"),
	}
}

func storedUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		Name:         "Test User",
		Role:         entity.RoleUser,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.validator.EXPECT().
		ValidateRegistration(mock.MatchedBy(func(r entity.Registration) bool {
			return r.Email == "test@example.com" && r.Name == "Test User" && r.Role == entity.RoleUser
		})).
		Return(nil)
	fx.userRepo.EXPECT().ExistsByEmail(ctx, "test@example.com").Return(false, nil)
	fx.hasher.EXPECT().Hash("password123").Return("hashed_password", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "test@example.com" &&
				u.PasswordHash == "hashed_password" &&
				u.Role == entity.RoleUser &&
				u.HomeLocation != nil && u.HomeLocation.Address == "New York, NY, USA"
		})).
		RunAndReturn(func(_ context.Context, u *entity.User) error {
			u.ID = userID

			return nil
		})

	output, err := fx.service.Register(ctx, registerInput())
	require.NoError(t, err)
	require.NotNil(t, output.User)
	assert.Equal(t, userID, output.User.ID)
	assert.Equal(t, "test@example.com", output.User.Email)
	assert.Equal(t, "Test User", output.User.Name)
}

func TestAuthService_Register_ValidationFailed(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	violation := domainerrors.NewValidationError(map[string]string{"password": "Password must be at least 8 characters long"})
	fx.validator.EXPECT().ValidateRegistration(mock.Anything).Return(violation)

	input := registerInput()
	input.Password = "short12"

	output, err := fx.service.Register(ctx, input)
	assert.Nil(t, output)
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.True(t, validationErr.Has("password"))
	assert.NotContains(t, err.Error(), "short12")
}

func TestAuthService_Register_EmailTakenBeforeHash(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.validator.EXPECT().ValidateRegistration(mock.Anything).Return(nil)
	fx.userRepo.EXPECT().ExistsByEmail(ctx, "test@example.com").Return(true, nil)

	_, err := fx.service.Register(ctx, registerInput())
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAuthService_Register_StoreConflict(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.validator.EXPECT().ValidateRegistration(mock.Anything).Return(nil)
	fx.userRepo.EXPECT().ExistsByEmail(ctx, "test@example.com").Return(false, nil)
	fx.hasher.EXPECT().Hash("password123").Return("hashed_password", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists"))

	_, err := fx.service.Register(ctx, registerInput())
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAuthService_Register_HashFailed(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.validator.EXPECT().ValidateRegistration(mock.Anything).Return(nil)
	fx.userRepo.EXPECT().ExistsByEmail(ctx, "test@example.com").Return(false, nil)
	fx.hasher.EXPECT().Hash("password123").Return("", errors.New("entropy source exhausted"))

	_, err := fx.service.Register(ctx, registerInput())
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_ExistsCheckFailed(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	dbErr := domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "failed to check email")
	fx.validator.EXPECT().ValidateRegistration(mock.Anything).Return(nil)
	fx.userRepo.EXPECT().ExistsByEmail(ctx, "test@example.com").Return(false, dbErr)

	_, err := fx.service.Register(ctx, registerInput())
	assert.ErrorIs(t, err, dbErr)
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := storedUser()

	fx.userRepo.EXPECT().FindByEmail(ctx, "test@example.com", true).Return(user, nil)
	fx.hasher.EXPECT().Verify("password123", "hashed_password").Return(true, nil)

	output, err := fx.service.Authenticate(ctx, &usecase.LoginInput{Email: " TEST@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, output.User.ID)
	assert.Equal(t, user.Email, output.User.Email)
}

func TestAuthService_Authenticate_FailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()

	wrongPassword := createTestAuthService(t)
	wrongPassword.userRepo.EXPECT().FindByEmail(ctx, "test@example.com", true).Return(storedUser(), nil)
	wrongPassword.hasher.EXPECT().Verify("wrongpassword", "hashed_password").Return(false, nil)

	_, wrongErr := wrongPassword.service.Authenticate(ctx, &usecase.LoginInput{Email: "test@example.com", Password: "wrongpassword"})

	unknownEmail := createTestAuthService(t)
	unknownEmail.userRepo.EXPECT().FindByEmail(ctx, "nobody@example.com", true).Return(nil, repository.ErrUserNotFound)
	unknownEmail.hasher.EXPECT().Hash(timingDummyPassword).Return("dummy_hash", nil).Once()
	unknownEmail.hasher.EXPECT().Verify("wrongpassword", "dummy_hash").Return(false, nil)

	_, unknownErr := unknownEmail.service.Authenticate(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "wrongpassword"})

	require.Error(t, wrongErr)
	require.Error(t, unknownErr)
	assert.True(t, errors.Is(wrongErr, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(unknownErr, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, wrongErr.Error(), unknownErr.Error())
}

func TestAuthService_Authenticate_TimingHashBuiltOnce(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, mock.Anything, true).Return(nil, repository.ErrUserNotFound).Times(3)
	fx.hasher.EXPECT().Hash(timingDummyPassword).Return("dummy_hash", nil).Once()
	fx.hasher.EXPECT().Verify(mock.Anything, "dummy_hash").Return(false, nil).Times(3)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := fx.service.Authenticate(ctx, &usecase.LoginInput{Email: email, Password: "password123"})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	}
}

func TestAuthService_Authenticate_MalformedStoredHash(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "test@example.com", true).Return(storedUser(), nil)
	fx.hasher.EXPECT().Verify("password123", "hashed_password").
		Return(false, domainerrors.ErrPasswordHashFailed.WrapMessage("malformed bcrypt hash"))

	_, err := fx.service.Authenticate(ctx, &usecase.LoginInput{Email: "test@example.com", Password: "password123"})
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Authenticate_LookupFailed(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	dbErr := domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "failed to find user")
	fx.userRepo.EXPECT().FindByEmail(ctx, "test@example.com", true).Return(nil, dbErr)

	_, err := fx.service.Authenticate(ctx, &usecase.LoginInput{Email: "test@example.com", Password: "password123"})
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_GetUser(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := storedUser()
	user.PasswordHash = ""

	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	missing := uuid.New()
	fx.userRepo.EXPECT().FindByID(ctx, missing).Return(nil, repository.ErrUserNotFound)

	found, err := fx.service.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = fx.service.GetUser(ctx, missing)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
