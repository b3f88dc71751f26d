package service

import "bathroom/internal/domain/entity"

// UserValidator checks a registration submission before anything is hashed or stored.
type UserValidator interface {
	// ValidateRegistration normalizes the candidate and checks every field rule.
	// It returns nil or a *domainerrors.ValidationError listing all violations.
	ValidateRegistration(candidate entity.Registration) error
}
