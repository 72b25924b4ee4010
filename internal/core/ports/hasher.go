package ports

// PasswordHasher produces and verifies one-way, salted password hashes. The
// hash string is self-describing (salt and cost embedded), so Verify needs no
// extra parameters.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A malformed or foreign
	// hash simply fails to verify; no error is returned for a mismatch.
	Verify(plaintext, hash string) bool
}
