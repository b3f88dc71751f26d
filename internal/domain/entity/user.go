// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account of the bathroom directory together with its credential.
type User struct {
	ID           uuid.UUID // Assigned by the store at creation, never changes afterwards.
	Email        string    // Normalized (trimmed, lowercased) login identifier, unique across users.
	PasswordHash string    // One-way hash of the password. Empty unless explicitly loaded for verification.
	Name         string    // Display name.
	Role         Role      // RoleUser unless promoted.
	HomeLocation *Location // Optional home location used for nearby lookups.
	CreatedAt    time.Time // Set by the store on creation.
	UpdatedAt    time.Time // Set by the store on every mutation.
}

// PublicUser is the sanitized view of a User. It has no credential field.
type PublicUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	HomeLocation *Location `json:"homeLocation,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Sanitize returns a copy of the user without its password hash.
func (u *User) Sanitize() *PublicUser {
	if u == nil {
		return nil
	}

	return &PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		HomeLocation: u.HomeLocation.Clone(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Registration is a plaintext sign-up submission, before validation and hashing.
type Registration struct {
	Email        string
	Password     string
	Name         string
	Role         Role
	HomeLocation *LocationInput
}

// Normalize returns the submission with email lowercased, text fields trimmed
// and the role defaulted. The password is left untouched.
func (r Registration) Normalize() Registration {
	normalized := Registration{
		Email:    NormalizeEmail(r.Email),
		Password: r.Password,
		Name:     strings.TrimSpace(r.Name),
		Role:     r.Role,
	}
	if normalized.Role == "" {
		normalized.Role = RoleUser
	}
	if r.HomeLocation != nil {
		loc := r.HomeLocation.Clone()
		loc.Address = strings.TrimSpace(loc.Address)
		normalized.HomeLocation = loc
	}

	return normalized
}

// NormalizeEmail is the canonical form used for uniqueness and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
