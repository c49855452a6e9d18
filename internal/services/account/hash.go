package account

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the hex-encoded SHA-256 digest of a plaintext
// password. Hashing happens at the caller boundary — stores and services
// below this line only ever see digests, and verification is exact digest
// equality.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
