package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// URLKey returns the identity used when comparing result URLs: the address with
// surrounding whitespace removed. No other normalization is applied.
func URLKey(rawURL string) string {
	return strings.TrimSpace(rawURL)
}

// HashURL returns a stable hex digest of the URL key.
func HashURL(rawURL string) string {
	key := URLKey(rawURL)
	if key == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// ShortHash is the first 8 characters of HashURL, for log lines and file names.
func ShortHash(rawURL string) string {
	full := HashURL(rawURL)
	if len(full) >= 8 {
		return full[:8]
	}
	return full
}
