package auth

import (
	"github.com/matthewhartstonge/argon2"

	"bathroom/config"
	domainerrors "bathroom/internal/domain/errors"
	"bathroom/internal/domain/service"
	"bathroom/internal/errors"
)

// argon2Hasher implements PasswordHasher with argon2id in the PHC encoded format.
type argon2Hasher struct {
	cfg argon2.Config
}

// NewArgon2Hasher creates an argon2id hasher. Zero fields in settings keep
// the library defaults.
func NewArgon2Hasher(settings *config.Argon2Config) service.PasswordHasher {
	cfg := argon2.DefaultConfig()
	if settings != nil {
		if settings.TimeCost > 0 {
			cfg.TimeCost = settings.TimeCost
		}
		if settings.MemoryCost > 0 {
			cfg.MemoryCost = settings.MemoryCost
		}
		if settings.Parallelism > 0 {
			cfg.Parallelism = settings.Parallelism
		}
	}

	return &argon2Hasher{cfg: cfg}
}

// Hash derives an encoded argon2id hash with a fresh random salt.
func (h *argon2Hasher) Hash(password string) (string, error) {
	encoded, err := h.cfg.HashEncoded([]byte(password))
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(encoded), nil
}

// Verify checks a candidate against an encoded argon2id hash.
func (h *argon2Hasher) Verify(candidate, hash string) (bool, error) {
	ok, err := argon2.VerifyEncoded([]byte(candidate), []byte(hash))
	if err != nil {
		return false, errors.Wrap(domainerrors.ErrPasswordHashFailed, "malformed argon2 hash")
	}

	return ok, nil
}
