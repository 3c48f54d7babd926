package catalog

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns the hex BLAKE2b-256 digest of a manifest body.
func Fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
