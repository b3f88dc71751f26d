package auth

import (
	"testing"

	"bathroom/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	hasher, err := NewPasswordHasher(&config.Config{})
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, hasher.(*bcryptHasher).cost)

	hasher, err = NewPasswordHasher(&config.Config{Auth: &config.AuthConfig{HashAlgorithm: "BCRYPT", BcryptCost: 5}})
	require.NoError(t, err)
	assert.Equal(t, 5, hasher.(*bcryptHasher).cost)

	hasher, err = NewPasswordHasher(&config.Config{Auth: &config.AuthConfig{HashAlgorithm: AlgorithmArgon2id}})
	require.NoError(t, err)
	assert.IsType(t, &argon2Hasher{}, hasher)

	_, err = NewPasswordHasher(&config.Config{Auth: &config.AuthConfig{HashAlgorithm: "md5"}})
	assert.ErrorContains(t, err, "unsupported hash algorithm")

	_, err = NewPasswordHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 64}})
	assert.Error(t, err)
}
