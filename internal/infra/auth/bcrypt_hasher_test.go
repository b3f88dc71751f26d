package auth

import (
	"strings"
	"testing"
	"testing/quick"

	domainerrors "bathroom/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newFastBcryptHasher(t *testing.T) *bcryptHasher {
	t.Helper()

	hasher, err := NewBcryptHasherWithCost(bcrypt.MinCost)
	require.NoError(t, err)

	return hasher.(*bcryptHasher)
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher()

	password := "password123"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	ok, err := hasher.Verify(password, hash)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasher_SaltDiffersPerCall(t *testing.T) {
	hasher := newFastBcryptHasher(t)

	first, err := hasher.Hash("password123")
	require.NoError(t, err)
	second, err := hasher.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_Verify(t *testing.T) {
	hasher := newFastBcryptHasher(t)
	password := "correctPassword123"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	ok, err := hasher.Verify(password, hash)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrongpassword", hash)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = hasher.Verify("", hash)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_VerifyMalformedHash(t *testing.T) {
	hasher := newFastBcryptHasher(t)

	for _, hash := range []string{"", "invalid_hash", "$2a$99$" + strings.Repeat("a", 53)} {
		ok, err := hasher.Verify("password123", hash)
		assert.False(t, ok)
		assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed), "hash %q", hash)
	}
}

func TestBcryptHasher_HashTooLong(t *testing.T) {
	hasher := newFastBcryptHasher(t)

	_, err := hasher.Hash(strings.Repeat("a", bcryptMaxPasswordBytes+1))
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6
	hasher, err := NewBcryptHasherWithCost(customCost)
	require.NoError(t, err)

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_VerifyRejectsCandidateBeyondLimit(t *testing.T) {
	hasher := newFastBcryptHasher(t)
	password := strings.Repeat("a", bcryptMaxPasswordBytes)

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	ok, err := hasher.Verify(password, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	// bcrypt alone would accept this, as it stops reading at the limit.
	ok, err = hasher.Verify(password+"EXTRA-garbage", hash)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = hasher.Verify(password+"EXTRA-garbage", "not-a-bcrypt-hash")
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestBcryptHasher_InvalidCost(t *testing.T) {
	_, err := NewBcryptHasherWithCost(bcrypt.MinCost - 1)
	assert.Error(t, err)

	_, err = NewBcryptHasherWithCost(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}

func clampPassword(s string) string {
	if len(s) > bcryptMaxPasswordBytes {
		return s[:bcryptMaxPasswordBytes]
	}

	return s
}

func TestBcryptHasher_RoundTripProperty(t *testing.T) {
	hasher := newFastBcryptHasher(t)

	roundTrip := func(raw string) bool {
		password := clampPassword(raw)
		hash, err := hasher.Hash(password)
		if err != nil {
			return false
		}
		ok, err := hasher.Verify(password, hash)

		return err == nil && ok && hash != password
	}
	require.NoError(t, quick.Check(roundTrip, &quick.Config{MaxCount: 25}))

	// Only the hashed side is clamped; the candidate may be any length.
	mismatch := func(a, rawB string) bool {
		b := clampPassword(rawB)
		if a == b {
			return true
		}
		hash, err := hasher.Hash(b)
		if err != nil {
			return false
		}
		ok, err := hasher.Verify(a, hash)

		return err == nil && !ok
	}
	require.NoError(t, quick.Check(mismatch, &quick.Config{MaxCount: 25}))
}
