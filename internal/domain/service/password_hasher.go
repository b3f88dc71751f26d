// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (bcrypt or argon2id), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Every call uses a
	// fresh salt. It fails only with domainerrors.ErrPasswordHashFailed.
	Hash(password string) (string, error)

	// Verify compares a plaintext candidate with a stored hash in constant time.
	// A mismatch is (false, nil); an error means the stored hash is malformed.
	Verify(candidate, hash string) (bool, error)
}
