package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// bcrypt hash prefixes. Anything else in a password column is legacy
// plaintext awaiting the lazy rehash on next successful login.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// IsHashed reports whether a stored credential is a bcrypt hash.
func IsHashed(stored string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(stored, p) {
			return true
		}
	}
	return false
}

// NewOpaqueToken generates the random string used for verification tokens,
// tracking tokens, and checkout session IDs.
func NewOpaqueToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: nanosecond clock, still unique enough per process
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
