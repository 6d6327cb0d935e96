package password

import (
	"crypto/sha512"
	"encoding/hex"
)

// Fingerprint returns the SHA-512 hex digest of value. It is a fast,
// deterministic one-way transform used to store verification artifacts
// (such as one-time codes) without retaining the plaintext. It is NOT
// password-grade: anything long-lived or low-entropy that needs offline
// brute-force resistance belongs in Hasher.Hash instead.
func Fingerprint(value string) string {
	sum := sha512.Sum512([]byte(value))
	return hex.EncodeToString(sum[:])
}
