// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"bathroom/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// Implementations key users by entity.NormalizeEmail and enforce its
// uniqueness themselves, so concurrent creates cannot both succeed.
type UserRepository interface {
	// Create persists a new user whose PasswordHash is already set. It fills in
	// ID, CreatedAt and UpdatedAt on success. A colliding email fails with
	// domainerrors.ErrUserAlreadyExists; a record breaking schema constraints
	// fails with a *domainerrors.ValidationError. Create never hashes.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a single user by email. The password hash is only
	// loaded when includeSecret is true.
	FindByEmail(ctx context.Context, email string, includeSecret bool) (*entity.User, error)

	// FindByID retrieves a single user by ID, without the password hash.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// ExistsByEmail reports whether a user with this email is stored.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
