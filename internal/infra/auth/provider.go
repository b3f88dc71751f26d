package auth

import (
	"strings"

	"bathroom/config"
	"bathroom/internal/domain/service"
	"bathroom/internal/errors"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// NewPasswordHasher selects the hashing algorithm from configuration.
// An empty algorithm means bcrypt; a zero bcrypt cost means the default cost.
func NewPasswordHasher(cfg *config.Config) (service.PasswordHasher, error) {
	authCfg := cfg.Auth
	if authCfg == nil {
		authCfg = &config.AuthConfig{}
	}

	switch algorithm := strings.ToLower(strings.TrimSpace(authCfg.HashAlgorithm)); algorithm {
	case "", AlgorithmBcrypt:
		if authCfg.BcryptCost == 0 {
			return NewBcryptHasher(), nil
		}

		return NewBcryptHasherWithCost(authCfg.BcryptCost)
	case AlgorithmArgon2id, "argon2":
		return NewArgon2Hasher(authCfg.Argon2), nil
	default:
		return nil, errors.Errorf("unsupported hash algorithm: %s", algorithm)
	}
}
