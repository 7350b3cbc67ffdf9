// Package password provides one-way salted password hashing behind a small
// interface so the orchestrator stays algorithm-agnostic.
package password

// Hasher hashes and verifies passwords. Implementations must use a slow,
// adaptive algorithm and a constant-time comparison in Verify.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext string, digest string) bool
}
