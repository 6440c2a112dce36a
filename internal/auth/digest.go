package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// DigestToken returns the sha256 hex digest of a refresh token. The raw token
// is never stored server-side, only this digest. bcrypt is unsuitable here:
// it truncates input at 72 bytes and a signed JWT is far longer.
func DigestToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// DigestEqual compares two digests in constant time.
func DigestEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
