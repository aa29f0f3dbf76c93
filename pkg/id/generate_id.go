package id

import (
	"crypto/rand"
	"encoding/hex"
)

// New32 returns a 32-char lowercase hex identifier (no separators/prefixes).
// Every resource kind uses this as its public ID.
func New32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
