// Package checksum addresses content by its SHA-256 digest. The bookmarks
// watcher compares digests to skip no-op saves; the icon cache uses them as
// keys.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Size is the length of a digest returned by Sum.
const Size = sha256.Size * 2

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Valid reports whether s has the shape of a digest returned by Sum.
func Valid(s string) bool {
	if len(s) != Size {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
