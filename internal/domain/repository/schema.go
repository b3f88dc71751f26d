package repository

import (
	"strings"

	"bathroom/internal/domain/entity"
	domainerrors "bathroom/internal/domain/errors"
)

// CheckStorable enforces the schema constraints every store applies before
// writing a user. It is the last line behind the registration validator and
// guarantees that no store ever persists plaintext-shaped or out-of-range data.
func CheckStorable(user *entity.User) error {
	fields := map[string]string{}

	if user.Email == "" {
		fields["email"] = "Email is required"
	} else if user.Email != entity.NormalizeEmail(user.Email) {
		fields["email"] = "Email must be normalized"
	}
	if user.PasswordHash == "" {
		fields["password"] = "Password hash is required"
	}
	if strings.TrimSpace(user.Name) == "" {
		fields["name"] = "Name is required"
	}
	if !user.Role.IsValid() {
		fields["role"] = "Role must be one of: user, admin"
	}
	if loc := user.HomeLocation; loc != nil {
		if !loc.InBounds() {
			fields["homeLocation"] = "Coordinates are out of range"
		}
		if strings.TrimSpace(loc.Address) == "" {
			fields["homeLocation.address"] = "Address is required"
		}
	}

	if len(fields) > 0 {
		return domainerrors.NewValidationError(fields)
	}

	return nil
}
