package repository

import (
	"testing"

	"bathroom/internal/domain/entity"
	domainerrors "bathroom/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storableUser() *entity.User {
	return &entity.User{
		Email:        "test@example.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Test User",
		Role:         entity.RoleUser,
	}
}

func TestCheckStorable_Valid(t *testing.T) {
	user := storableUser()
	user.HomeLocation = &entity.Location{Lat: 40.7128, Lng: -74.0060, Address: "New York, NY, USA"}

	assert.NoError(t, CheckStorable(user))
}

func TestCheckStorable_CollectsViolations(t *testing.T) {
	user := &entity.User{
		Email:        "Mixed@Example.com",
		Role:         entity.Role("merchant"),
		HomeLocation: &entity.Location{Lat: 200, Lng: 0},
	}

	err := CheckStorable(user)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	for _, field := range []string{"email", "password", "name", "role", "homeLocation", "homeLocation.address"} {
		assert.True(t, validationErr.Has(field), "expected violation for %s", field)
	}
}
