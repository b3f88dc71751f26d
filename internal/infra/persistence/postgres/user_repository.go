// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"bathroom/internal/domain/entity"
	domainerrors "bathroom/internal/domain/errors"
	"bathroom/internal/domain/repository"
	"bathroom/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const passwordHashColumn = "password_hash"

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user. Uniqueness is decided by the email index, so two
// concurrent creates for the same address cannot both succeed.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := repository.CheckStorable(user); err != nil {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domainerrors.ErrUserCreationFailed.WrapMessage("failed to generate user id")
	}
	now := time.Now().UTC()

	userM := fromUserDomain(user)
	userM.ID = id
	userM.CreatedAt = now
	userM.UpdatedAt = now

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return createError(err)
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// createError maps a failed insert onto the repository contract.
func createError(err error) error {
	switch {
	case isUniqueConstraintViolation(err):
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
	case isNotNullConstraintViolation(err):
		field := constraintField(err)

		return domainerrors.NewValidationError(map[string]string{field: "Value is required"})
	case isCheckConstraintViolation(err):
		field := constraintField(err)

		return domainerrors.NewValidationError(map[string]string{field: "Value violates table constraints"})
	}

	return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string, includeSecret bool) (*entity.User, error) {
	query := repo.db.WithContext(ctx)
	if !includeSecret {
		query = query.Omit(passwordHashColumn)
	}

	var userM model.UserModel
	err := query.Where("email = ?", entity.NormalizeEmail(email)).First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Omit(passwordHashColumn).
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ?", entity.NormalizeEmail(email)).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check email")
	}

	return count > 0, nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	user := &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Name:         data.Name,
		Role:         entity.Role(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
	if data.HomeLat != nil && data.HomeLng != nil {
		loc := &entity.Location{Lat: *data.HomeLat, Lng: *data.HomeLng}
		if data.HomeAddress != nil {
			loc.Address = *data.HomeAddress
		}
		user.HomeLocation = loc
	}

	return user
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	userM := &model.UserModel{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Name:         data.Name,
		Role:         data.Role.String(),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
	if loc := data.HomeLocation; loc != nil {
		lat, lng, address := loc.Lat, loc.Lng, loc.Address
		userM.HomeLat = &lat
		userM.HomeLng = &lng
		userM.HomeAddress = &address
	}

	return userM
}
