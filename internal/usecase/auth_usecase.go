// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"bathroom/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email        string                `json:"email"`
	Password     string                `json:"password"`
	Name         string                `json:"name"`
	Role         entity.Role           `json:"role"`
	HomeLocation *entity.LocationInput `json:"homeLocation"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created, sanitized user.
type RegisterOutput struct {
	User *entity.PublicUser `json:"user"`
}

// LoginOutput returns the authenticated, sanitized user.
type LoginOutput struct {
	User *entity.PublicUser `json:"user"`
}

// AuthState is a step of a single authentication attempt.
type AuthState int

const (
	AuthStateIdle AuthState = iota
	AuthStateLookupPending
	AuthStateVerifyPending
	AuthStateAuthenticated
	AuthStateRejected
)

func (s AuthState) String() string {
	switch s {
	case AuthStateIdle:
		return "idle"
	case AuthStateLookupPending:
		return "lookup_pending"
	case AuthStateVerifyPending:
		return "verify_pending"
	case AuthStateAuthenticated:
		return "authenticated"
	case AuthStateRejected:
		return "rejected"
	}

	return "unknown"
}

// Terminal reports whether no further transition follows.
func (s AuthState) Terminal() bool {
	return s == AuthStateAuthenticated || s == AuthStateRejected
}

// AuthUsecase defines the account operations offered to the delivery layer.
type AuthUsecase interface {
	// Register validates, hashes and stores a new account. Failures are a
	// *domainerrors.ValidationError, ErrUserAlreadyExists or ErrPasswordHashFailed.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Authenticate checks an email and password. An unknown email and a wrong
	// password both fail with ErrInvalidCredentials and the same message.
	Authenticate(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GetUser returns the sanitized user with this ID, or ErrUserNotFound.
	GetUser(ctx context.Context, id uuid.UUID) (*entity.PublicUser, error)
}
